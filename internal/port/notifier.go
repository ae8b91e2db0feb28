package port

import "context"

// BatchSummary reports the outcome of a multi-row webhook send.
type BatchSummary struct {
	EventName string
	Total     int
	Succeeded int
	Failed    int
	Failures  []string
}

// Notifier delivers batch summaries outside the terminal.
type Notifier interface {
	NotifyBatchSummary(ctx context.Context, summary BatchSummary) error
}
