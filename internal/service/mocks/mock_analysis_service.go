package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"legalscan/internal/model"
	"legalscan/internal/service"
)

type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, actor service.Actor, documentID string) (*model.Analysis, error) {
	args := m.Called(ctx, actor, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Analysis), args.Error(1)
}

func (m *MockAnalysisService) AnalyzeText(ctx context.Context, actor service.Actor, text string) (*model.Analysis, error) {
	args := m.Called(ctx, actor, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Analysis), args.Error(1)
}

func (m *MockAnalysisService) GetByDocument(ctx context.Context, actor service.Actor, documentID string) (*model.Analysis, error) {
	args := m.Called(ctx, actor, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Analysis), args.Error(1)
}

func (m *MockAnalysisService) History(ctx context.Context, actor service.Actor, limit, offset int) (*service.HistoryResult, error) {
	args := m.Called(ctx, actor, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HistoryResult), args.Error(1)
}

func (m *MockAnalysisService) RiskOverview(ctx context.Context, actor service.Actor) (*service.RiskOverview, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RiskOverview), args.Error(1)
}

func (m *MockAnalysisService) ClearHistory(ctx context.Context, actor service.Actor) (int64, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(int64), args.Error(1)
}
