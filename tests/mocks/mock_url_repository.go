package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/snaplink/snaplink/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockURLRepository struct {
	mock.Mock
}

func (m *MockURLRepository) Create(ctx context.Context, url *domain.ShortURL) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockURLRepository) GetByCode(ctx context.Context, shortCode string) (*domain.ShortURL, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockURLRepository) GetByAlias(ctx context.Context, alias string) (*domain.ShortURL, error) {
	args := m.Called(ctx, alias)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockURLRepository) GetByCodeOrAlias(ctx context.Context, value string) (*domain.ShortURL, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockURLRepository) GetByCodeAndOwner(ctx context.Context, shortCode string, ownerID uuid.UUID) (*domain.ShortURL, error) {
	args := m.Called(ctx, shortCode, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockURLRepository) UpdateFields(ctx context.Context, id int64, patch domain.URLPatch) (*domain.ShortURL, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockURLRepository) RegisterClick(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockURLRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]domain.ShortURL, int64, error) {
	args := m.Called(ctx, ownerID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.ShortURL), args.Get(1).(int64), args.Error(2)
}

func (m *MockURLRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool) (int64, error) {
	args := m.Called(ctx, ownerID, activeOnly)
	return args.Get(0).(int64), args.Error(1)
}
