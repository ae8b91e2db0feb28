package noop

import (
	"context"

	"go.uber.org/zap"

	"volunteerhub/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a Notifier that only logs batch summaries.
func NewNoopNotifier() port.Notifier {
	return &noopNotifier{}
}

func (n *noopNotifier) NotifyBatchSummary(_ context.Context, summary port.BatchSummary) error {
	zap.L().Info("noop.NotifyBatchSummary: batch summary",
		zap.String("event", summary.EventName),
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Strings("failures", summary.Failures))
	return nil
}
