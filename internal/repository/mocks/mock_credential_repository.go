package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bhrigu136/shopify-ai-analytics/internal/model"
)

type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) ResolveToken(ctx context.Context, storeID string) (string, error) {
	args := m.Called(ctx, storeID)
	return args.String(0), args.Error(1)
}

func (m *MockCredentialRepository) Save(ctx context.Context, token *model.ShopToken) (*model.ShopToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShopToken), args.Error(1)
}

func (m *MockCredentialRepository) Delete(ctx context.Context, storeID string) error {
	args := m.Called(ctx, storeID)
	return args.Error(0)
}
