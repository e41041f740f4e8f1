package usecase

import (
	"context"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of media.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, media *model.Media) (bool, error) {
	args := m.Called(ctx, media)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*model.Media, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}

func (m *MockRepository) FindByHash(ctx context.Context, hash string) (*model.Media, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Media), args.Error(1)
}
