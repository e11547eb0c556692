package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/snaplink/snaplink/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockShortenerService struct {
	mock.Mock
}

func (m *MockShortenerService) Create(ctx context.Context, ownerID uuid.UUID, req *domain.CreateURLRequest) (*domain.ShortURL, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockShortenerService) Resolve(ctx context.Context, codeOrAlias string) (*domain.ShortURL, error) {
	args := m.Called(ctx, codeOrAlias)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockShortenerService) Info(ctx context.Context, shortCode string) (*domain.ShortURL, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockShortenerService) List(ctx context.Context, ownerID uuid.UUID, page, limit int) (*domain.URLPage, error) {
	args := m.Called(ctx, ownerID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.URLPage), args.Error(1)
}

func (m *MockShortenerService) Update(ctx context.Context, ownerID uuid.UUID, shortCode string, req *domain.UpdateURLRequest) (*domain.ShortURL, error) {
	args := m.Called(ctx, ownerID, shortCode, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockShortenerService) Delete(ctx context.Context, ownerID uuid.UUID, shortCode string) error {
	args := m.Called(ctx, ownerID, shortCode)
	return args.Error(0)
}

func (m *MockShortenerService) Analytics(ctx context.Context, ownerID uuid.UUID, shortCode string) (*domain.URLAnalytics, error) {
	args := m.Called(ctx, ownerID, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.URLAnalytics), args.Error(1)
}

func (m *MockShortenerService) GlobalAnalytics(ctx context.Context, ownerID uuid.UUID) (*domain.GlobalAnalytics, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GlobalAnalytics), args.Error(1)
}
