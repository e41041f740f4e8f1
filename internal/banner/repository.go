package banner

import (
	"context"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/banner/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, banner *model.Banner) error
	FindByID(ctx context.Context, id string) (*model.Banner, error)
	FindAll(ctx context.Context, filters *dto.BannerFilters) ([]model.Banner, int, error)
	// FindLive returns active banners whose window contains now.
	FindLive(ctx context.Context, position model.BannerPosition, now time.Time) ([]model.Banner, error)
	Update(ctx context.Context, banner *model.Banner) error
	Delete(ctx context.Context, id string) error
}
