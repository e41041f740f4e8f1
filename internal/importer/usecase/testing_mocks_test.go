package usecase

import (
	"context"
	"io"
	"sync"

	"github.com/fekuna/kitmed-catalog-service/internal/category"
	catdto "github.com/fekuna/kitmed-catalog-service/internal/category/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/media"
	mediadto "github.com/fekuna/kitmed-catalog-service/internal/media/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/partner"
	partnerdto "github.com/fekuna/kitmed-catalog-service/internal/partner/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/product"
	productdto "github.com/fekuna/kitmed-catalog-service/internal/product/dto"
	"github.com/stretchr/testify/mock"
)

// MockProductUseCase mocks the product.UseCase methods the importer calls.
type MockProductUseCase struct {
	product.UseCase
	mock.Mock
}

func (m *MockProductUseCase) GetProductBySKU(ctx context.Context, sku string) (*model.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductUseCase) CreateProduct(ctx context.Context, input *productdto.CreateProductInput) (*model.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductUseCase) UpdateProduct(ctx context.Context, input *productdto.UpdateProductInput) (*model.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

type fakeCategories struct {
	category.UseCase
	list []model.Category
}

func (f *fakeCategories) ListCategories(context.Context, *catdto.CategoryFilters, string) ([]model.Category, int, error) {
	return f.list, len(f.list), nil
}

type fakePartners struct {
	partner.UseCase
	list []model.Partner
}

func (f *fakePartners) ListPartners(context.Context, *partnerdto.PartnerFilters, string) ([]model.Partner, int, error) {
	return f.list, len(f.list), nil
}

// fakeMedia records uploads and hands out stable URLs.
type fakeMedia struct {
	media.UseCase

	mu      sync.Mutex
	uploads []string
}

func (f *fakeMedia) Upload(_ context.Context, input *mediadto.UploadInput) (*model.Media, error) {
	if _, err := io.ReadAll(input.Content); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, input.FileName)
	return &model.Media{ID: "m-" + input.FileName, URL: "/uploads/ab/" + input.FileName}, nil
}
