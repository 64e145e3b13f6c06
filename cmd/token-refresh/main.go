// Package main implements the scheduled Lambda that reissues channel
// access tokens before they expire.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"reservation-backend/application/batch"
	"reservation-backend/infrastructure/config"
	"reservation-backend/infrastructure/di"
)

var (
	service *batch.TokenRefreshService
	logger  *zap.Logger
)

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	service = container.TokenRefresh
	logger = container.Logger
}

// BatchResponse reports the outcome of one scheduled run
type BatchResponse struct {
	Status string `json:"status"`
}

// Handler runs the token refresh job on each scheduled event
func Handler(ctx context.Context, event events.CloudWatchEvent) (BatchResponse, error) {
	logger.Info("Token refresh started",
		zap.String("eventId", event.ID),
		zap.String("source", event.Source),
	)

	if err := service.Run(ctx); err != nil {
		logger.Error("Token refresh failed", zap.Error(err))
		return BatchResponse{Status: "error"}, err
	}

	logger.Info("Token refresh finished")
	return BatchResponse{Status: "ok"}, nil
}

func main() {
	lambda.Start(Handler)
}
