package partner

import (
	"context"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/partner/dto"
)

type UseCase interface {
	CreatePartner(ctx context.Context, input *dto.CreatePartnerInput) (*model.Partner, error)
	GetPartner(ctx context.Context, id, locale string) (*model.Partner, error)
	GetPartnerBySlug(ctx context.Context, slug, locale string) (*model.Partner, error)
	ListPartners(ctx context.Context, filters *dto.PartnerFilters, locale string) ([]model.Partner, int, error)
	UpdatePartner(ctx context.Context, input *dto.UpdatePartnerInput) (*model.Partner, error)
	DeletePartner(ctx context.Context, id string) error
}
