// Package main implements the scheduled Lambda that pushes the day's
// reminder messages.
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
	service *batch.RemindDispatchService
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

	service = container.RemindDispatch
	logger = container.Logger
}

// BatchResponse reports the outcome of one scheduled run
type BatchResponse struct {
	Status string `json:"status"`
}

// Handler runs the reminder dispatch job on each scheduled event
func Handler(ctx context.Context, event events.CloudWatchEvent) (BatchResponse, error) {
	logger.Info("Reminder dispatch started",
		zap.String("eventId", event.ID),
		zap.String("source", event.Source),
	)

	if err := service.Run(ctx); err != nil {
		logger.Error("Reminder dispatch failed", zap.Error(err))
		return BatchResponse{Status: "error"}, err
	}

	logger.Info("Reminder dispatch finished")
	return BatchResponse{Status: "ok"}, nil
}

func main() {
	lambda.Start(Handler)
}
