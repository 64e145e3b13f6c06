package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"reservation-backend/application/batch"
	"reservation-backend/application/ports"
	"reservation-backend/application/services"
	"reservation-backend/infrastructure/config"
	"reservation-backend/infrastructure/messaging/eventbridge"
	"reservation-backend/infrastructure/messaging/line"
	"reservation-backend/infrastructure/persistence/dynamodb"
	"reservation-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideReservationRepository creates the shop-reservation repository
func ProvideReservationRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ReservationRepository {
	return dynamodb.NewReservationRepository(client, cfg.ShopReservationTable, logger)
}

// ProvideChannelTokenRepository creates the channel-credential repository
func ProvideChannelTokenRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ChannelTokenRepository {
	return dynamodb.NewChannelTokenRepository(client, cfg.ChannelTokenTable, logger)
}

// ProvideRemindMessageRepository creates the reminder-message repository
func ProvideRemindMessageRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.RemindMessageRepository {
	return dynamodb.NewRemindMessageRepository(client, cfg.RemindMessageTable, logger)
}

// ProvideEventPublisher creates an event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvidePushClient creates the messaging provider client
func ProvidePushClient(cfg *config.Config, logger *zap.Logger) ports.PushClient {
	return line.NewClient(line.Config{
		TokenEndpoint: cfg.TokenEndpoint,
		PushEndpoint:  cfg.PushEndpoint,
	}, logger)
}

// ProvideMetrics creates a metrics publisher
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) ports.MetricsPublisher {
	namespace := fmt.Sprintf("%s/%s", cfg.MetricsNamespace, cfg.Environment)
	return observability.NewMetrics(client, namespace, logger)
}

// ProvideReservationService creates the booking service
func ProvideReservationService(
	reservationRepo ports.ReservationRepository,
	remindRepo ports.RemindMessageRepository,
	events ports.EventPublisher,
	logger *zap.Logger,
) *services.ReservationService {
	return services.NewReservationService(reservationRepo, remindRepo, events, logger)
}

// ProvideTokenRefreshService creates the token refresh job
func ProvideTokenRefreshService(
	tokenRepo ports.ChannelTokenRepository,
	pushClient ports.PushClient,
	metrics ports.MetricsPublisher,
	logger *zap.Logger,
) *batch.TokenRefreshService {
	return batch.NewTokenRefreshService(tokenRepo, pushClient, metrics, logger)
}

// ProvideRemindDispatchService creates the reminder dispatch job
func ProvideRemindDispatchService(
	remindRepo ports.RemindMessageRepository,
	tokenRepo ports.ChannelTokenRepository,
	pushClient ports.PushClient,
	metrics ports.MetricsPublisher,
	logger *zap.Logger,
) *batch.RemindDispatchService {
	return batch.NewRemindDispatchService(remindRepo, tokenRepo, pushClient, metrics, logger)
}
