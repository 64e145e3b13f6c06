package batch

import (
	"context"

	"github.com/aws/aws-xray-sdk-go/xray"
	"go.uber.org/zap"

	"reservation-backend/application/ports"
	"reservation-backend/domain/messaging"
	appErrors "reservation-backend/pkg/errors"
	"reservation-backend/pkg/utils"
)

// RemindDispatchService pushes the reminder messages scheduled for today
type RemindDispatchService struct {
	remindRepo ports.RemindMessageRepository
	tokenRepo  ports.ChannelTokenRepository
	pushClient ports.PushClient
	metrics    ports.MetricsPublisher
	logger     *zap.Logger
	today      func() string
}

// NewRemindDispatchService creates the reminder dispatch job
func NewRemindDispatchService(
	remindRepo ports.RemindMessageRepository,
	tokenRepo ports.ChannelTokenRepository,
	pushClient ports.PushClient,
	metrics ports.MetricsPublisher,
	logger *zap.Logger,
) *RemindDispatchService {
	return &RemindDispatchService{
		remindRepo: remindRepo,
		tokenRepo:  tokenRepo,
		pushClient: pushClient,
		metrics:    metrics,
		logger:     logger,
		today:      utils.Today,
	}
}

// Run queries today's reminders and pushes one message per record. A
// failure for one record is logged with its id and the loop moves on; an
// empty result set is a no-op.
func (s *RemindDispatchService) Run(ctx context.Context) error {
	ctx, seg := xray.BeginSubsegment(ctx, "RemindDispatchService.Run")
	defer seg.Close(nil)

	today := s.today()
	msgs, err := s.remindRepo.QueryByRemindDate(ctx, today)
	if err != nil {
		seg.AddError(err)
		return err
	}
	if len(msgs) == 0 {
		s.logger.Info("No reminders scheduled", zap.String("date", today))
		return nil
	}

	processed, failed := 0, 0
	for _, msg := range msgs {
		if err := s.dispatchOne(ctx, msg); err != nil {
			s.logger.Error("Failed to send reminder",
				zap.String("messageId", msg.ID),
				zap.Error(err),
			)
			failed++
			continue
		}
		processed++
	}

	s.logger.Info("Reminder dispatch batch finished",
		zap.String("date", today),
		zap.Int("processed", processed),
		zap.Int("failed", failed),
	)
	if s.metrics != nil {
		if err := s.metrics.RecordBatchResult(ctx, "remind-dispatch", processed, failed); err != nil {
			s.logger.Warn("Failed to record batch metrics", zap.Error(err))
		}
	}
	return nil
}

func (s *RemindDispatchService) dispatchOne(ctx context.Context, msg messaging.RemindMessage) error {
	channel, err := s.tokenRepo.Get(ctx, msg.MessageInfo.ChannelID)
	if err != nil {
		return err
	}
	if channel == nil {
		return appErrors.NewNotFoundError("channel " + msg.MessageInfo.ChannelID)
	}
	return s.pushClient.PushMessage(ctx, channel.AccessToken, msg.MessageInfo.UserID, msg.MessageInfo.MessageBody)
}
