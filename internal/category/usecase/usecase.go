package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/category"
	"github.com/fekuna/kitmed-catalog-service/internal/category/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/cache"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/slug"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const treeCacheTTL = 5 * time.Minute

var (
	ErrNotFound         = apperror.NotFound("CategoryNotFound")
	ErrSlugTaken        = apperror.Conflict("CategorySlugTaken")
	ErrCycle            = apperror.Invalid("CategoryCycle")
	ErrHasChildren      = apperror.Conflict("CategoryHasChildren")
	ErrHasProducts      = apperror.Conflict("CategoryHasProducts")
	ErrParentRequired   = apperror.Invalid("CategoryParentRequired")
	ErrDisciplineRoot   = apperror.Invalid("CategoryDisciplineRoot")
	ErrParentNotFound   = apperror.Invalid("CategoryParentNotFound")
	ErrTranslationEmpty = apperror.Invalid("TranslationRequired")
)

type categoryUseCase struct {
	repo          category.Repository
	cache         cache.Store
	defaultLocale string
	logger        logger.ZapLogger
}

// NewCategoryUseCase builds the category usecase. store may be nil, in which
// case the tree is rebuilt on every call.
func NewCategoryUseCase(repo category.Repository, store cache.Store, defaultLocale string, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:          repo,
		cache:         store,
		defaultLocale: defaultLocale,
		logger:        log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if len(input.Translations) == 0 {
		return nil, ErrTranslationEmpty
	}
	parentID := normalizeParent(input.ParentID)
	if err := uc.checkParent(ctx, input.Kind, parentID); err != nil {
		return nil, err
	}

	slugValue, err := uc.resolveSlug(ctx, input.Slug, input.Translations, "")
	if err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ParentID:     parentID,
		Kind:         input.Kind,
		Slug:         slugValue,
		ImageURL:     input.ImageURL,
		SortOrder:    input.SortOrder,
		IsActive:     isActive,
		Translations: input.Translations,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	cat.Localize(uc.defaultLocale, uc.defaultLocale)

	uc.invalidateCache(ctx)

	return cat, nil
}

func normalizeParent(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

// checkParent enforces the hierarchy shape: disciplines are roots and
// equipment always hangs under an existing category.
func (uc *categoryUseCase) checkParent(ctx context.Context, kind model.CategoryKind, parentID *string) error {
	switch kind {
	case model.CategoryKindDiscipline:
		if parentID != nil {
			return ErrDisciplineRoot
		}
		return nil
	case model.CategoryKindEquipment:
		if parentID == nil {
			return ErrParentRequired
		}
	default:
		return apperror.Invalid("ValidationFailed").WithFields(map[string]string{"kind": "oneof"})
	}

	parent, err := uc.repo.FindByID(ctx, *parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return ErrParentNotFound
	}
	return nil
}

func (uc *categoryUseCase) resolveSlug(ctx context.Context, requested string, ts []model.CategoryTranslation, excludeID string) (string, error) {
	value := slug.Make(requested)
	if value == "" {
		if t, ok := model.PickTranslation(ts, uc.defaultLocale, uc.defaultLocale); ok {
			value = slug.Make(t.Name)
		}
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

func (uc *categoryUseCase) GetCategory(ctx context.Context, id, locale string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}
	cat.Localize(locale, uc.defaultLocale)
	return cat, nil
}

// GetCategoryBySlug returns an active category with its active subtree.
func (uc *categoryUseCase) GetCategoryBySlug(ctx context.Context, slugValue, locale string) (*model.Category, error) {
	cat, err := uc.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	if cat == nil || !cat.IsActive {
		return nil, ErrNotFound
	}
	cat.Localize(locale, uc.defaultLocale)

	roots, err := uc.GetTree(ctx, locale, true)
	if err != nil {
		return nil, err
	}
	if node := category.FindNode(roots, cat.ID); node != nil {
		cat.Children = node.Children
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters, locale string) ([]model.Category, int, error) {
	categories, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	for i := range categories {
		categories[i].Localize(locale, uc.defaultLocale)
	}
	return categories, count, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}
	if len(input.Translations) == 0 {
		return nil, ErrTranslationEmpty
	}

	parentID := normalizeParent(input.ParentID)
	if err := uc.checkParent(ctx, input.Kind, parentID); err != nil {
		return nil, err
	}
	if parentID != nil {
		flat, err := uc.repo.FindAllFlat(ctx, false)
		if err != nil {
			return nil, err
		}
		if category.CreatesCycle(flat, cat.ID, *parentID) {
			return nil, ErrCycle
		}
	}

	requested := input.Slug
	if requested == "" {
		requested = cat.Slug
	}
	slugValue, err := uc.resolveSlug(ctx, requested, input.Translations, cat.ID)
	if err != nil {
		return nil, err
	}

	cat.ParentID = parentID
	cat.Kind = input.Kind
	cat.Slug = slugValue
	cat.ImageURL = input.ImageURL
	cat.SortOrder = input.SortOrder
	cat.IsActive = input.IsActive
	cat.Translations = input.Translations
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	cat.Localize(uc.defaultLocale, uc.defaultLocale)

	uc.invalidateCache(ctx)

	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return ErrNotFound
	}

	children, err := uc.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return ErrHasChildren.WithData(map[string]interface{}{"Count": children})
	}
	products, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return ErrHasProducts.WithData(map[string]interface{}{"Count": products})
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidateCache(ctx)

	return nil
}

func (uc *categoryUseCase) GetTree(ctx context.Context, locale string, activeOnly bool) ([]*model.Category, error) {
	key := fmt.Sprintf("categories:tree:%s:%t", locale, activeOnly)
	if uc.cache != nil {
		var cached []*model.Category
		err := uc.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			uc.logger.Warn("category tree cache read failed", zap.Error(err))
		}
	}

	flat, err := uc.repo.FindAllFlat(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	for _, c := range flat {
		c.Localize(locale, uc.defaultLocale)
		c.Translations = nil
	}
	roots := category.BuildTree(flat)

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, key, roots, treeCacheTTL); err != nil {
			uc.logger.Warn("category tree cache write failed", zap.Error(err))
		}
	}
	return roots, nil
}

func (uc *categoryUseCase) Descendants(ctx context.Context, id string) ([]string, error) {
	flat, err := uc.repo.FindAllFlat(ctx, false)
	if err != nil {
		return nil, err
	}
	ids := category.Descendants(flat, id)
	if ids == nil {
		return nil, ErrNotFound
	}
	return ids, nil
}

func (uc *categoryUseCase) Breadcrumb(ctx context.Context, id, locale string) ([]model.Crumb, error) {
	flat, err := uc.repo.FindAllFlat(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, c := range flat {
		c.Localize(locale, uc.defaultLocale)
	}
	path := category.Breadcrumb(flat, id)
	if len(path) == 0 {
		return nil, ErrNotFound
	}
	return path, nil
}

// invalidateCache drops the cached trees and the product listings, which
// embed category names and filter on category visibility.
func (uc *categoryUseCase) invalidateCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, pattern := range []string{"categories:*", "products:list:*"} {
		if err := uc.cache.DeletePattern(ctx, pattern); err != nil {
			uc.logger.Warn("failed to invalidate cache", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}
