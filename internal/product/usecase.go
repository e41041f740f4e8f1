package product

import (
	"context"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id, locale string) (*model.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// Public catalog: published products only.
	ListPublished(ctx context.Context, input *dto.ListPublishedInput) ([]model.Product, int, error)
	GetPublishedBySlug(ctx context.Context, slug, locale string) (*model.Product, error)
	Related(ctx context.Context, slug, locale string, limit int) ([]model.Product, error)

	// Reindex pushes every product into the search index and returns the count.
	Reindex(ctx context.Context) (int, error)
}
