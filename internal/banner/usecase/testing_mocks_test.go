package usecase

import (
	"context"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/banner/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of banner.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, b *model.Banner) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*model.Banner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Banner), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, f *dto.BannerFilters) ([]model.Banner, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Banner), args.Int(1), args.Error(2)
}

func (m *MockRepository) FindLive(ctx context.Context, position model.BannerPosition, now time.Time) ([]model.Banner, error) {
	args := m.Called(ctx, position, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Banner), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, b *model.Banner) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
