package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"reservation-backend/application/ports"
	"reservation-backend/domain/messaging"
	appErrors "reservation-backend/pkg/errors"
	"reservation-backend/pkg/utils"
)

// ChannelTokenRepository implements ports.ChannelTokenRepository on the
// channel-credential table.
type ChannelTokenRepository struct {
	table  *Table
	logger *zap.Logger
}

// NewChannelTokenRepository creates a repository bound to tableName
func NewChannelTokenRepository(client API, tableName string, logger *zap.Logger) ports.ChannelTokenRepository {
	return &ChannelTokenRepository{
		table:  NewTable(client, tableName, logger),
		logger: logger,
	}
}

func channelKey(channelID string) Item {
	return Item{
		"channelId": &types.AttributeValueMemberS{Value: channelID},
	}
}

// Get returns nil without error when the channel is unknown
func (r *ChannelTokenRepository) Get(ctx context.Context, channelID string) (*messaging.ChannelToken, error) {
	item, err := r.table.Get(ctx, channelKey(channelID))
	if err != nil {
		return nil, err
	}
	if len(item) == 0 {
		return nil, nil
	}

	var token messaging.ChannelToken
	if err := attributevalue.UnmarshalMap(item, &token); err != nil {
		return nil, appErrors.NewInternalError("failed to unmarshal channel token", err)
	}
	return &token, nil
}

// Update persists a freshly issued token together with its expiry
func (r *ChannelTokenRepository) Update(ctx context.Context, channelID, accessToken string, limitDate time.Time) error {
	expr := "SET channelAccessToken = :channelAccessToken, " +
		"limitDate = :limitDate, " +
		"updatedTime = :updatedTime"
	values := Item{
		":channelAccessToken": &types.AttributeValueMemberS{Value: accessToken},
		":limitDate":          &types.AttributeValueMemberS{Value: utils.FormatLimitDate(limitDate)},
		":updatedTime":        &types.AttributeValueMemberS{Value: utils.Timestamp(utils.NowJST())},
	}

	_, err := r.table.Update(ctx, channelKey(channelID), expr, values, types.ReturnValueUpdatedNew)
	return err
}

// Scan enumerates every credential record
func (r *ChannelTokenRepository) Scan(ctx context.Context) ([]messaging.ChannelToken, error) {
	items, err := r.table.Scan(ctx, "", nil)
	if err != nil {
		return nil, err
	}

	tokens := make([]messaging.ChannelToken, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &tokens); err != nil {
		return nil, appErrors.NewInternalError("failed to unmarshal channel tokens", err)
	}
	return tokens, nil
}
