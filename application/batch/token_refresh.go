// Package batch implements the scheduled jobs: channel-token refresh and
// reminder dispatch.
package batch

import (
	"context"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"go.uber.org/zap"

	"reservation-backend/application/ports"
	"reservation-backend/domain/messaging"
	"reservation-backend/pkg/utils"
)

// tokenValidityDays is how far ahead a freshly issued token expires
const tokenValidityDays = 20

// TokenRefreshService reissues expired or never-issued channel tokens
type TokenRefreshService struct {
	tokenRepo  ports.ChannelTokenRepository
	pushClient ports.PushClient
	metrics    ports.MetricsPublisher
	logger     *zap.Logger
	now        func() time.Time
}

// NewTokenRefreshService creates the token refresh job
func NewTokenRefreshService(
	tokenRepo ports.ChannelTokenRepository,
	pushClient ports.PushClient,
	metrics ports.MetricsPublisher,
	logger *zap.Logger,
) *TokenRefreshService {
	return &TokenRefreshService{
		tokenRepo:  tokenRepo,
		pushClient: pushClient,
		metrics:    metrics,
		logger:     logger,
		now:        utils.NowJST,
	}
}

// Run enumerates every credential record and refreshes the stale ones.
// A failure on one record is logged and the loop moves on.
func (s *TokenRefreshService) Run(ctx context.Context) error {
	ctx, seg := xray.BeginSubsegment(ctx, "TokenRefreshService.Run")
	defer seg.Close(nil)

	tokens, err := s.tokenRepo.Scan(ctx)
	if err != nil {
		seg.AddError(err)
		return err
	}

	now := s.now()
	processed, failed := 0, 0
	for _, token := range tokens {
		if err := s.refreshOne(ctx, token, now); err != nil {
			s.logger.Error("Failed to refresh channel token",
				zap.String("channelId", token.ChannelID),
				zap.Error(err),
			)
			failed++
			continue
		}
		processed++
	}

	s.logger.Info("Token refresh batch finished",
		zap.Int("processed", processed),
		zap.Int("failed", failed),
	)
	if s.metrics != nil {
		if err := s.metrics.RecordBatchResult(ctx, "token-refresh", processed, failed); err != nil {
			s.logger.Warn("Failed to record batch metrics", zap.Error(err))
		}
	}
	return nil
}

func (s *TokenRefreshService) refreshOne(ctx context.Context, token messaging.ChannelToken, now time.Time) error {
	needs, err := token.NeedsRefresh(now)
	if err != nil {
		return err
	}
	if !needs {
		s.logger.Debug("Token still valid",
			zap.String("channelId", token.ChannelID),
			zap.String("limitDate", token.LimitDate),
		)
		return nil
	}

	accessToken, err := s.pushClient.IssueToken(ctx, token.ChannelID, token.ChannelSecret)
	if err != nil {
		return err
	}

	limit := now.AddDate(0, 0, tokenValidityDays)
	if err := s.tokenRepo.Update(ctx, token.ChannelID, accessToken, limit); err != nil {
		return err
	}

	s.logger.Info("Channel token updated", zap.String("channelId", token.ChannelID))
	return nil
}
