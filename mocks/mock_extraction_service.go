package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"volunteerhub/internal/domain"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}

func (m *MockExtractionService) ExtractAttendance(ctx context.Context, req domain.AttendanceRequest) (*domain.AttendanceResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttendanceResult), args.Error(1)
}

func (m *MockExtractionService) AnalyzeCompetencies(ctx context.Context, req domain.CompetencyRequest) (*domain.CompetencyResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompetencyResult), args.Error(1)
}

func (m *MockExtractionService) Ready() bool {
	args := m.Called()
	return args.Bool(0)
}
