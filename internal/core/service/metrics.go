package service

import (
	"context"

	"taskmanager/internal/core/port"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

type nopMetrics struct{}

func (nopMetrics) RecordTaskOperation(context.Context, string, string) {}
func (nopMetrics) RecordAuthOperation(context.Context, string, string) {}
func (nopMetrics) RecordCacheHit(context.Context, string)              {}
func (nopMetrics) RecordCacheMiss(context.Context, string)             {}

func metricsOrNop(metrics port.Metrics) port.Metrics {
	if metrics == nil {
		return nopMetrics{}
	}

	return metrics
}
