package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"volunteerhub/internal/domain"
)

// MockForwarder is a mock implementation of dispatch.Forwarder.
type MockForwarder struct {
	mock.Mock
}

func (m *MockForwarder) Forward(ctx context.Context, webhookURL string, payload domain.WebhookPayload) (*domain.RelayResponse, error) {
	args := m.Called(ctx, webhookURL, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RelayResponse), args.Error(1)
}
