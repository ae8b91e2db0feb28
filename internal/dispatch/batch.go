package dispatch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"volunteerhub/internal/port"
	"volunteerhub/internal/roster"
)

// Phase is the position of a batch in its pending -> sending(i) -> done cycle.
type Phase int

const (
	PhasePending Phase = iota
	PhaseSending
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseSending:
		return "sending"
	default:
		return "done"
	}
}

// RowResult is the outcome of forwarding one row.
type RowResult struct {
	Row    int
	Name   string
	OK     bool
	Status int
	Detail string
	Err    error
}

// Report collects per-row results. Summary is nil for single-row sends.
type Report struct {
	Results []RowResult
	Summary *port.BatchSummary
}

// Options configure a Sender.
type Options struct {
	WebhookURL string
	Origin     string
	Delay      time.Duration
}

// Sender forwards rows one at a time. Row i+1 is not sent until row i has
// finished and the delay has elapsed.
type Sender struct {
	forwarder Forwarder
	notifier  port.Notifier
	opts      Options

	// OnRow, if set, is called after every row.
	OnRow func(RowResult)

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewSender creates a Sender. notifier may be nil.
func NewSender(forwarder Forwarder, notifier port.Notifier, opts Options) *Sender {
	return &Sender{
		forwarder: forwarder,
		notifier:  notifier,
		opts:      opts,
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// SetClock replaces the time source and delay function.
func (s *Sender) SetClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) {
	s.now = now
	s.sleep = sleep
}

type machine struct {
	phase Phase
	index int
	rows  []int
}

func (m *machine) start() {
	m.phase, m.index = PhaseSending, 0
}

func (m *machine) advance() {
	if m.index+1 < len(m.rows) {
		m.index++
		return
	}
	m.phase = PhaseDone
}

// Send forwards rows of state. A failing row is recorded and the batch goes on.
// Cancelling ctx stops the batch before the next row; the partial report is
// returned with ctx's error.
func (s *Sender) Send(ctx context.Context, state roster.State, rows []int) (*Report, error) {
	report := &Report{Results: make([]RowResult, 0, len(rows))}
	if len(rows) == 0 {
		return report, roster.ErrNothingToSend
	}

	m := &machine{phase: PhasePending, rows: rows}
	m.start()
	for m.phase == PhaseSending {
		if m.index > 0 {
			if err := s.sleep(ctx, s.opts.Delay); err != nil {
				return report, err
			}
		}
		result := s.sendRow(ctx, state, m.rows[m.index])
		report.Results = append(report.Results, result)
		if s.OnRow != nil {
			s.OnRow(result)
		}
		m.advance()
	}

	if len(rows) == 1 {
		return report, nil
	}

	report.Summary = summarize(state.EventName, report.Results)
	zap.L().Info("dispatch.Sender.Send: batch complete",
		zap.String("event", state.EventName),
		zap.Int("total", report.Summary.Total),
		zap.Int("succeeded", report.Summary.Succeeded),
		zap.Int("failed", report.Summary.Failed))

	if s.notifier != nil {
		if err := s.notifier.NotifyBatchSummary(ctx, *report.Summary); err != nil {
			zap.L().Warn("dispatch.Sender.Send: summary notification failed", zap.Error(err))
		}
	}
	return report, nil
}

func (s *Sender) sendRow(ctx context.Context, state roster.State, row int) RowResult {
	result := RowResult{Row: row, Name: state.Rows[row].Name}
	payload := state.BuildPayload([]int{row}, s.now(), s.opts.Origin)

	resp, err := s.forwarder.Forward(ctx, s.opts.WebhookURL, payload)
	switch {
	case err != nil:
		result.Err = err
		result.Detail = err.Error()
		zap.L().Error("dispatch.Sender.sendRow: forward failed",
			zap.Int("row", row), zap.String("name", result.Name), zap.Error(err))
	case !resp.OK:
		result.Status = resp.Status
		result.Detail = fmt.Sprintf("webhook returned %d %s", resp.Status, resp.StatusText)
		zap.L().Warn("dispatch.Sender.sendRow: webhook rejected row",
			zap.Int("row", row), zap.String("name", result.Name),
			zap.Int("status", resp.Status), zap.String("body", resp.Body))
	default:
		result.OK = true
		result.Status = resp.Status
		zap.L().Info("dispatch.Sender.sendRow: row sent",
			zap.Int("row", row), zap.String("name", result.Name), zap.Int("status", resp.Status))
	}
	return result
}

func summarize(eventName string, results []RowResult) *port.BatchSummary {
	summary := &port.BatchSummary{EventName: eventName, Total: len(results)}
	for _, r := range results {
		if r.OK {
			summary.Succeeded++
			continue
		}
		summary.Failed++
		summary.Failures = append(summary.Failures, fmt.Sprintf("Row %d (%s): %s", r.Row+1, r.Name, r.Detail))
	}
	return summary
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
