package di

import (
	"context"

	"go.uber.org/zap"

	"reservation-backend/application/batch"
	"reservation-backend/application/ports"
	"reservation-backend/application/services"
	"reservation-backend/infrastructure/config"
)

// Container holds all application dependencies
type Container struct {
	Config             *config.Config
	Logger             *zap.Logger
	ReservationRepo    ports.ReservationRepository
	ChannelTokenRepo   ports.ChannelTokenRepository
	RemindMessageRepo  ports.RemindMessageRepository
	EventPublisher     ports.EventPublisher
	PushClient         ports.PushClient
	Metrics            ports.MetricsPublisher
	ReservationService *services.ReservationService
	TokenRefresh       *batch.TokenRefreshService
	RemindDispatch     *batch.RemindDispatchService
}

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}

	awsCfg, err := ProvideAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	dynamoClient := ProvideDynamoDBClient(awsCfg)
	eventBridgeClient := ProvideEventBridgeClient(awsCfg)
	cloudWatchClient := ProvideCloudWatchClient(awsCfg)

	reservationRepo := ProvideReservationRepository(dynamoClient, cfg, logger)
	channelTokenRepo := ProvideChannelTokenRepository(dynamoClient, cfg, logger)
	remindMessageRepo := ProvideRemindMessageRepository(dynamoClient, cfg, logger)

	eventPublisher := ProvideEventPublisher(eventBridgeClient, cfg, logger)
	pushClient := ProvidePushClient(cfg, logger)
	metrics := ProvideMetrics(cloudWatchClient, cfg, logger)

	return &Container{
		Config:             cfg,
		Logger:             logger,
		ReservationRepo:    reservationRepo,
		ChannelTokenRepo:   channelTokenRepo,
		RemindMessageRepo:  remindMessageRepo,
		EventPublisher:     eventPublisher,
		PushClient:         pushClient,
		Metrics:            metrics,
		ReservationService: ProvideReservationService(reservationRepo, remindMessageRepo, eventPublisher, logger),
		TokenRefresh:       ProvideTokenRefreshService(channelTokenRepo, pushClient, metrics, logger),
		RemindDispatch:     ProvideRemindDispatchService(remindMessageRepo, channelTokenRepo, pushClient, metrics, logger),
	}, nil
}
