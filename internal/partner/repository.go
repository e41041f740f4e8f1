package partner

import (
	"context"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/partner/dto"
)

type Repository interface {
	Create(ctx context.Context, partner *model.Partner) error
	FindByID(ctx context.Context, id string) (*model.Partner, error)
	FindBySlug(ctx context.Context, slug string) (*model.Partner, error)
	FindAll(ctx context.Context, filters *dto.PartnerFilters) ([]model.Partner, int, error)
	Update(ctx context.Context, partner *model.Partner) error
	Delete(ctx context.Context, id string) error

	IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error)
	CountProducts(ctx context.Context, id string) (int, error)
}
