package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"volunteerhub/internal/port"
)

// MockNotifier is a mock implementation of port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBatchSummary(ctx context.Context, summary port.BatchSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}
