package category

import (
	"context"

	"github.com/fekuna/kitmed-catalog-service/internal/category/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id, locale string) (*model.Category, error)
	GetCategoryBySlug(ctx context.Context, slug, locale string) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters, locale string) ([]model.Category, int, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	GetTree(ctx context.Context, locale string, activeOnly bool) ([]*model.Category, error)
	Descendants(ctx context.Context, id string) ([]string, error)
	Breadcrumb(ctx context.Context, id, locale string) ([]model.Crumb, error)
}
