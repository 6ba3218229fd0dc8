package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"legalscan/internal/model"
	"legalscan/internal/service"
)

type MockCompareService struct {
	mock.Mock
}

func (m *MockCompareService) Compare(ctx context.Context, actor service.Actor, documentID1, documentID2 string) (*model.Comparison, error) {
	args := m.Called(ctx, actor, documentID1, documentID2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comparison), args.Error(1)
}
