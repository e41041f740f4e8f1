package banner

import (
	"context"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/banner/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
)

type UseCase interface {
	CreateBanner(ctx context.Context, input *dto.CreateBannerInput) (*model.Banner, error)
	GetBanner(ctx context.Context, id, locale string) (*model.Banner, error)
	ListBanners(ctx context.Context, filters *dto.BannerFilters, locale string) ([]model.Banner, int, error)
	UpdateBanner(ctx context.Context, input *dto.UpdateBannerInput) (*model.Banner, error)
	DeleteBanner(ctx context.Context, id string) error

	ListActive(ctx context.Context, position model.BannerPosition, now time.Time, locale string) ([]model.Banner, error)
}
