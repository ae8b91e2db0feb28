package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"volunteerhub/internal/port"
)

// MockObjectSource is a mock implementation of port.ObjectSource.
type MockObjectSource struct {
	mock.Mock
}

func (m *MockObjectSource) Stat(ctx context.Context, bucket, key string) (*port.ObjectInfo, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ObjectInfo), args.Error(1)
}

func (m *MockObjectSource) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
