// Package observability reports operational metrics to CloudWatch.
package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"

	"reservation-backend/application/ports"
)

// CloudWatchAPI is the subset of the CloudWatch client the metrics use
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics publishes batch outcomes under one namespace
type Metrics struct {
	client    CloudWatchAPI
	namespace string
	logger    *zap.Logger
}

// NewMetrics creates a CloudWatch metrics publisher
func NewMetrics(client CloudWatchAPI, namespace string, logger *zap.Logger) ports.MetricsPublisher {
	return &Metrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// RecordBatchResult reports processed/failed counts for one batch run
func (m *Metrics) RecordBatchResult(ctx context.Context, job string, processed, failed int) error {
	now := time.Now()
	dimensions := []types.Dimension{
		{Name: aws.String("Job"), Value: aws.String(job)},
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String("RecordsProcessed"),
				Dimensions: dimensions,
				Timestamp:  aws.Time(now),
				Unit:       types.StandardUnitCount,
				Value:      aws.Float64(float64(processed)),
			},
			{
				MetricName: aws.String("RecordsFailed"),
				Dimensions: dimensions,
				Timestamp:  aws.Time(now),
				Unit:       types.StandardUnitCount,
				Value:      aws.Float64(float64(failed)),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to put metric data: %w", err)
	}

	m.logger.Debug("Recorded batch metrics",
		zap.String("job", job),
		zap.Int("processed", processed),
		zap.Int("failed", failed),
	)
	return nil
}
