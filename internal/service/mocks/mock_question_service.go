package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bhrigu136/shopify-ai-analytics/internal/model"
)

type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) Ask(ctx context.Context, q model.Question) (*model.Relay, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Relay), args.Error(1)
}

// MockForwarder mocks service.Forwarder.
type MockForwarder struct {
	mock.Mock
}

func (m *MockForwarder) Ask(ctx context.Context, token string, q model.Question) (*model.Relay, error) {
	args := m.Called(ctx, token, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Relay), args.Error(1)
}
