package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/banner"
	"github.com/fekuna/kitmed-catalog-service/internal/banner/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/google/uuid"
)

var (
	ErrNotFound        = apperror.NotFound("BannerNotFound")
	ErrWindowInvalid   = apperror.Invalid("BannerWindowInvalid")
	ErrInvalidPosition = apperror.Invalid("ValidationFailed").WithFields(map[string]string{"position": "oneof"})
)

type bannerUseCase struct {
	repo          banner.Repository
	defaultLocale string
	logger        logger.ZapLogger
}

func NewBannerUseCase(repo banner.Repository, defaultLocale string, log logger.ZapLogger) banner.UseCase {
	return &bannerUseCase{
		repo:          repo,
		defaultLocale: defaultLocale,
		logger:        log,
	}
}

func checkWindow(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && !endsAt.After(*startsAt) {
		return ErrWindowInvalid
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func (uc *bannerUseCase) CreateBanner(ctx context.Context, input *dto.CreateBannerInput) (*model.Banner, error) {
	if !input.Position.Valid() {
		return nil, ErrInvalidPosition
	}
	if err := checkWindow(input.StartsAt, input.EndsAt); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now()
	b := &model.Banner{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Position:     input.Position,
		ImageURL:     strings.TrimSpace(input.ImageURL),
		LinkURL:      trimmed(input.LinkURL),
		SortOrder:    input.SortOrder,
		IsActive:     isActive,
		StartsAt:     input.StartsAt,
		EndsAt:       input.EndsAt,
		Translations: input.Translations,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	b.Localize(uc.defaultLocale, uc.defaultLocale)
	return b, nil
}

func (uc *bannerUseCase) GetBanner(ctx context.Context, id, locale string) (*model.Banner, error) {
	b, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	b.Localize(locale, uc.defaultLocale)
	return b, nil
}

func (uc *bannerUseCase) ListBanners(ctx context.Context, filters *dto.BannerFilters, locale string) ([]model.Banner, int, error) {
	banners, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	for i := range banners {
		banners[i].Localize(locale, uc.defaultLocale)
	}
	return banners, count, nil
}

func (uc *bannerUseCase) UpdateBanner(ctx context.Context, input *dto.UpdateBannerInput) (*model.Banner, error) {
	b, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if !input.Position.Valid() {
		return nil, ErrInvalidPosition
	}
	if err := checkWindow(input.StartsAt, input.EndsAt); err != nil {
		return nil, err
	}

	b.Position = input.Position
	b.ImageURL = strings.TrimSpace(input.ImageURL)
	b.LinkURL = trimmed(input.LinkURL)
	b.SortOrder = input.SortOrder
	b.IsActive = input.IsActive
	b.StartsAt = input.StartsAt
	b.EndsAt = input.EndsAt
	b.Translations = input.Translations
	b.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	b.Localize(uc.defaultLocale, uc.defaultLocale)
	return b, nil
}

func (uc *bannerUseCase) DeleteBanner(ctx context.Context, id string) error {
	b, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// ListActive returns the banners on display at now. An empty position
// matches every slot.
func (uc *bannerUseCase) ListActive(ctx context.Context, position model.BannerPosition, now time.Time, locale string) ([]model.Banner, error) {
	if position != "" && !position.Valid() {
		return nil, ErrInvalidPosition
	}
	found, err := uc.repo.FindLive(ctx, position, now)
	if err != nil {
		return nil, err
	}

	live := make([]model.Banner, 0, len(found))
	for i := range found {
		if !found[i].LiveAt(now) {
			continue
		}
		found[i].Localize(locale, uc.defaultLocale)
		found[i].Translations = nil
		live = append(live, found[i])
	}
	return live, nil
}
