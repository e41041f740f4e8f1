package handler

import (
	"context"

	"github.com/fekuna/kitmed-catalog-service/internal/category/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockUseCase is a mock implementation of category.UseCase
type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockUseCase) GetCategory(ctx context.Context, id, locale string) (*model.Category, error) {
	args := m.Called(ctx, id, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockUseCase) GetCategoryBySlug(ctx context.Context, slug, locale string) (*model.Category, error) {
	args := m.Called(ctx, slug, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters, locale string) ([]model.Category, int, error) {
	args := m.Called(ctx, filters, locale)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Category), args.Int(1), args.Error(2)
}

func (m *MockUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockUseCase) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUseCase) GetTree(ctx context.Context, locale string, activeOnly bool) ([]*model.Category, error) {
	args := m.Called(ctx, locale, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Category), args.Error(1)
}

func (m *MockUseCase) Descendants(ctx context.Context, id string) ([]string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUseCase) Breadcrumb(ctx context.Context, id, locale string) ([]model.Crumb, error) {
	args := m.Called(ctx, id, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Crumb), args.Error(1)
}
