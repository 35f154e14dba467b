package database

import (
	"context"
	"time"

	coreport "github.com/claimsy/karma/internal/domain/port/core"
)

// slowOperationThreshold marks database operations worth a warning
const slowOperationThreshold = 100 * time.Millisecond

// QueryMetrics holds metrics about a database operation
type QueryMetrics struct {
	Operation    string
	Duration     time.Duration
	RowsAffected int64
	Failed       bool
	ErrorMessage string
}

// MetricsCollector collects database operation metrics
type MetricsCollector struct {
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(logger coreport.Logger, timeProvider coreport.TimeProvider) *MetricsCollector {
	return &MetricsCollector{
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MeasureQuery times fn and warns when it runs slower than the threshold
func (c *MetricsCollector) MeasureQuery(ctx context.Context, operation string, fn func() (int64, error)) (*QueryMetrics, error) {
	start := c.timeProvider.Now()

	rowsAffected, err := fn()

	metrics := &QueryMetrics{
		Operation:    operation,
		Duration:     c.timeProvider.Since(start).Std(),
		RowsAffected: rowsAffected,
		Failed:       err != nil,
	}
	if err != nil {
		metrics.ErrorMessage = err.Error()
	}

	if metrics.Duration > slowOperationThreshold {
		fields := map[string]any{
			"operation":     operation,
			"duration_ms":   metrics.Duration.Milliseconds(),
			"rows_affected": rowsAffected,
			"failed":        metrics.Failed,
			"error_message": metrics.ErrorMessage,
		}
		if requestID := coreport.RequestID(ctx); requestID != "" {
			fields["request_id"] = requestID
		}
		c.logger.Warn("Slow database operation detected", fields)
	}

	return metrics, err
}
