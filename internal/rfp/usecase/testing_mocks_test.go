package usecase

import (
	"context"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/rfp/dto"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of rfp.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, req *model.RFPRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*model.RFPRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RFPRequest), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, f *dto.RFPFilters) ([]model.RFPRequest, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.RFPRequest), args.Int(1), args.Error(2)
}

func (m *MockRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) TransitionStatus(ctx context.Context, h *model.RFPStatusHistory, at time.Time) (bool, error) {
	args := m.Called(ctx, h, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) UpdateNotes(ctx context.Context, id, notes string, at time.Time) error {
	return m.Called(ctx, id, notes, at).Error(0)
}

// MockProductLookup is a mock implementation of ProductLookup
type MockProductLookup struct {
	mock.Mock
}

func (m *MockProductLookup) GetProduct(ctx context.Context, id, locale string) (*model.Product, error) {
	args := m.Called(ctx, id, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockPublisher is a mock implementation of Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

// MockLocker is a mock implementation of cache.Locker
type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocker) ReleaseLock(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}
