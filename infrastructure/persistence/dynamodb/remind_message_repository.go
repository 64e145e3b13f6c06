package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"reservation-backend/application/ports"
	"reservation-backend/domain/messaging"
	appErrors "reservation-backend/pkg/errors"
)

// remindDateIndex is the GSI keyed by remindDate
const remindDateIndex = "remindDate-index"

// RemindMessageRepository implements ports.RemindMessageRepository on the
// reminder-message table.
type RemindMessageRepository struct {
	table  *Table
	logger *zap.Logger
}

// NewRemindMessageRepository creates a repository bound to tableName
func NewRemindMessageRepository(client API, tableName string, logger *zap.Logger) ports.RemindMessageRepository {
	return &RemindMessageRepository{
		table:  NewTable(client, tableName, logger),
		logger: logger,
	}
}

// Put registers a reminder message
func (r *RemindMessageRepository) Put(ctx context.Context, msg messaging.RemindMessage) error {
	item, err := attributevalue.MarshalMap(msg)
	if err != nil {
		return appErrors.NewInternalError("failed to marshal remind message", err)
	}
	return r.table.Put(ctx, item)
}

// QueryByRemindDate lists the reminders scheduled for one date. An empty
// date short-circuits to an empty list.
func (r *RemindMessageRepository) QueryByRemindDate(ctx context.Context, date string) ([]messaging.RemindMessage, error) {
	if date == "" {
		return []messaging.RemindMessage{}, nil
	}

	values := Item{
		":remindDate": &types.AttributeValueMemberS{Value: date},
	}
	items, err := r.table.QueryIndex(ctx, remindDateIndex, "remindDate = :remindDate", values)
	if err != nil {
		return nil, err
	}

	msgs := make([]messaging.RemindMessage, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &msgs); err != nil {
		return nil, appErrors.NewInternalError("failed to unmarshal remind messages", err)
	}
	return msgs, nil
}
