package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"volunteerhub/internal/domain"
)

// MockWebhookService is a mock implementation of service.WebhookService.
type MockWebhookService struct {
	mock.Mock
}

func (m *MockWebhookService) Validate(rawURL string) (*url.URL, error) {
	args := m.Called(rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*url.URL), args.Error(1)
}

func (m *MockWebhookService) Forward(ctx context.Context, req domain.RelayRequest) (*domain.RelayResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RelayResponse), args.Error(1)
}
