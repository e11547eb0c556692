package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/snaplink/snaplink/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, codeOrAlias string) (*domain.ShortURL, error) {
	args := m.Called(ctx, codeOrAlias)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, codeOrAlias string, url *domain.ShortURL) error {
	args := m.Called(ctx, codeOrAlias, url)
	return args.Error(0)
}

func (m *MockCacheRepository) Invalidate(ctx context.Context, codesOrAliases ...string) error {
	callArgs := make([]interface{}, 0, len(codesOrAliases)+1)
	callArgs = append(callArgs, ctx)
	for _, v := range codesOrAliases {
		callArgs = append(callArgs, v)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) OwnerStats(ctx context.Context, ownerID uuid.UUID) (*domain.GlobalAnalytics, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GlobalAnalytics), args.Error(1)
}
