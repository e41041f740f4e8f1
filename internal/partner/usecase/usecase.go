package usecase

import (
	"context"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/partner"
	"github.com/fekuna/kitmed-catalog-service/internal/partner/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/slug"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = apperror.NotFound("PartnerNotFound")
	ErrSlugTaken = apperror.Conflict("PartnerSlugTaken")
	ErrInUse     = apperror.Conflict("PartnerInUse")
)

type partnerUseCase struct {
	repo          partner.Repository
	defaultLocale string
	logger        logger.ZapLogger
}

func NewPartnerUseCase(repo partner.Repository, defaultLocale string, log logger.ZapLogger) partner.UseCase {
	return &partnerUseCase{
		repo:          repo,
		defaultLocale: defaultLocale,
		logger:        log,
	}
}

func (uc *partnerUseCase) CreatePartner(ctx context.Context, input *dto.CreatePartnerInput) (*model.Partner, error) {
	slugValue, err := uc.resolveSlug(ctx, input.Slug, input.Name, "")
	if err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now()
	p := &model.Partner{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Slug:         slugValue,
		Name:         input.Name,
		WebsiteURL:   input.WebsiteURL,
		LogoURL:      input.LogoURL,
		Country:      input.Country,
		IsFeatured:   input.IsFeatured,
		IsActive:     isActive,
		SortOrder:    input.SortOrder,
		Translations: input.Translations,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Localize(uc.defaultLocale, uc.defaultLocale)
	return p, nil
}

func (uc *partnerUseCase) resolveSlug(ctx context.Context, requested, name, excludeID string) (string, error) {
	value := slug.Make(requested)
	if value == "" {
		value = slug.Make(name)
	}
	if value == "" {
		return "", apperror.Invalid("ValidationFailed").WithFields(map[string]string{"slug": "required"})
	}

	unique, err := uc.repo.IsSlugUnique(ctx, value, excludeID)
	if err != nil {
		return "", err
	}
	if !unique {
		return "", ErrSlugTaken
	}
	return value, nil
}

func (uc *partnerUseCase) GetPartner(ctx context.Context, id, locale string) (*model.Partner, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	p.Localize(locale, uc.defaultLocale)
	return p, nil
}

// GetPartnerBySlug only exposes active partners.
func (uc *partnerUseCase) GetPartnerBySlug(ctx context.Context, slugValue, locale string) (*model.Partner, error) {
	p, err := uc.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, ErrNotFound
	}
	p.Localize(locale, uc.defaultLocale)
	return p, nil
}

func (uc *partnerUseCase) ListPartners(ctx context.Context, filters *dto.PartnerFilters, locale string) ([]model.Partner, int, error) {
	partners, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	for i := range partners {
		partners[i].Localize(locale, uc.defaultLocale)
	}
	return partners, count, nil
}

func (uc *partnerUseCase) UpdatePartner(ctx context.Context, input *dto.UpdatePartnerInput) (*model.Partner, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	requested := input.Slug
	if requested == "" {
		requested = p.Slug
	}
	slugValue, err := uc.resolveSlug(ctx, requested, input.Name, p.ID)
	if err != nil {
		return nil, err
	}

	p.Slug = slugValue
	p.Name = input.Name
	p.WebsiteURL = input.WebsiteURL
	p.LogoURL = input.LogoURL
	p.Country = input.Country
	p.IsFeatured = input.IsFeatured
	p.IsActive = input.IsActive
	p.SortOrder = input.SortOrder
	p.Translations = input.Translations
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	p.Localize(uc.defaultLocale, uc.defaultLocale)
	return p, nil
}

func (uc *partnerUseCase) DeletePartner(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNotFound
	}

	n, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrInUse.WithData(map[string]interface{}{"Count": n})
	}
	return uc.repo.Delete(ctx, id)
}
