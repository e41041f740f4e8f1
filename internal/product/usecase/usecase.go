package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/category"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/partner"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/cache"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/search"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/slug"
	"github.com/fekuna/kitmed-catalog-service/internal/product"
	"github.com/fekuna/kitmed-catalog-service/internal/product/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

var (
	ErrNotFound        = apperror.NotFound("ProductNotFound")
	ErrSKUTaken        = apperror.Conflict("ProductSKUTaken")
	ErrSlugTaken       = apperror.Conflict("ProductSlugTaken")
	ErrInvalidStatus   = apperror.Invalid("ProductInvalidStatus")
	ErrUnknownCategory = apperror.Invalid("CategoryNotFound")
	ErrUnknownPartner  = apperror.Invalid("PartnerNotFound")
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"id": { "type": "keyword" },
			"sku": { "type": "keyword" },
			"slug": { "type": "keyword" },
			"status": { "type": "keyword" },
			"category_id": { "type": "keyword" },
			"partner_id": { "type": "keyword" },
			"is_featured": { "type": "boolean" },
			"names": {
				"properties": {
					"fr": { "type": "text", "analyzer": "french" },
					"en": { "type": "text", "analyzer": "english" }
				}
			},
			"texts": {
				"properties": {
					"fr": { "type": "text", "analyzer": "french" },
					"en": { "type": "text", "analyzer": "english" }
				}
			}
		}
	}
}`

type productUseCase struct {
	repo          product.Repository
	categories    category.UseCase
	partners      partner.UseCase
	cache         cache.Store
	cacheTTL      time.Duration
	es            search.Indexer
	index         string
	defaultLocale string
	logger        logger.ZapLogger

	indexOnce sync.Once
}

type Options struct {
	Cache         cache.Store    // optional
	CacheTTL      time.Duration  // defaults to 5 minutes
	Search        search.Indexer // optional
	Index         string
	DefaultLocale string
}

func NewProductUseCase(repo product.Repository, categories category.UseCase, partners partner.UseCase, opts Options, log logger.ZapLogger) product.UseCase {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.Index == "" {
		opts.Index = "kitmed_products"
	}
	return &productUseCase{
		repo:          repo,
		categories:    categories,
		partners:      partners,
		cache:         opts.Cache,
		cacheTTL:      opts.CacheTTL,
		es:            opts.Search,
		index:         opts.Index,
		defaultLocale: opts.DefaultLocale,
		logger:        log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	status := input.Status
	if status == "" {
		status = model.ProductStatusDraft
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	sku := strings.TrimSpace(input.SKU)
	unique, err := uc.repo.IsSKUUnique(ctx, sku, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, ErrSKUTaken
	}

	categoryID, partnerID, err := uc.checkRefs(ctx, input.CategoryID, input.PartnerID)
	if err != nil {
		return nil, err
	}

	slugValue, err := uc.resolveSlug(ctx, input.Slug, sku, input.Translations, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &model.Product{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		SKU:          sku,
		Slug:         slugValue,
		CategoryID:   categoryID,
		PartnerID:    partnerID,
		Status:       status,
		IsFeatured:   input.IsFeatured,
		SortOrder:    input.SortOrder,
		ImageURLs:    model.StringList(cleanList(input.ImageURLs)),
		DatasheetURL: emptyToNil(input.DatasheetURL),
		Translations: input.Translations,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Localize(uc.defaultLocale, uc.defaultLocale)

	// Sync to Elastic
	go uc.syncToElastic(context.Background(), p)

	// Invalidate Cache
	uc.invalidateProductCache(ctx)
	return p, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func (uc *productUseCase) checkRefs(ctx context.Context, categoryID, partnerID *string) (*string, *string, error) {
	categoryID = emptyToNil(categoryID)
	partnerID = emptyToNil(partnerID)

	if categoryID != nil {
		if _, err := uc.categories.GetCategory(ctx, *categoryID, uc.defaultLocale); err != nil {
			if apperror.IsKind(err, apperror.KindNotFound) {
				return nil, nil, ErrUnknownCategory
			}
			return nil, nil, err
		}
	}
	if partnerID != nil {
		if _, err := uc.partners.GetPartner(ctx, *partnerID, uc.defaultLocale); err != nil {
			if apperror.IsKind(err, apperror.KindNotFound) {
				return nil, nil, ErrUnknownPartner
			}
			return nil, nil, err
		}
	}
	return categoryID, partnerID, nil
}

// resolveSlug validates an explicit slug, or derives one from the default
// locale name, suffixing the SKU when the derived value is already taken.
func (uc *productUseCase) resolveSlug(ctx context.Context, requested, sku string, ts []model.ProductTranslation, excludeID string) (string, error) {
	if value := slug.Make(requested); value != "" {
		unique, err := uc.repo.IsSlugUnique(ctx, value, excludeID)
		if err != nil {
			return "", err
		}
		if !unique {
			return "", ErrSlugTaken
		}
		return value, nil
	}

	base := ""
	if t, ok := model.PickTranslation(ts, uc.defaultLocale, uc.defaultLocale); ok {
		base = slug.Make(t.Name)
	}
	candidates := []string{base, strings.Trim(base+"-"+slug.Make(sku), "-")}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		unique, err := uc.repo.IsSlugUnique(ctx, c, excludeID)
		if err != nil {
			return "", err
		}
		if unique {
			return c, nil
		}
	}
	return "", ErrSlugTaken
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	uc.indexOnce.Do(func() {
		if err := uc.es.CreateIndex(ctx, uc.index, indexMapping); err != nil {
			uc.logger.Error("failed to create product index", zap.Error(err))
		}
	})

	if err := uc.es.Index(ctx, uc.index, p.ID, p.Document()); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) GetProduct(ctx context.Context, id, locale string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	uc.attachRefs(ctx, p, locale)
	p.Localize(locale, uc.defaultLocale)
	return p, nil
}

func (uc *productUseCase) GetProductBySKU(ctx context.Context, sku string) (*model.Product, error) {
	p, err := uc.repo.FindBySKU(ctx, strings.TrimSpace(sku))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// attachRefs loads the category and partner for detail views. Lookup
// failures leave the reference empty.
func (uc *productUseCase) attachRefs(ctx context.Context, p *model.Product, locale string) {
	if p.CategoryID != nil {
		if c, err := uc.categories.GetCategory(ctx, *p.CategoryID, locale); err == nil {
			c.Translations = nil
			p.Category = c
		}
	}
	if p.PartnerID != nil {
		if pt, err := uc.partners.GetPartner(ctx, *p.PartnerID, locale); err == nil {
			pt.Translations = nil
			p.Partner = pt
		}
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	for i := range products {
		products[i].Localize(filters.Locale, uc.defaultLocale)
	}
	return products, count, nil
}

type cachedList struct {
	Products []model.Product
	Count    int
}

func (uc *productUseCase) ListPublished(ctx context.Context, input *dto.ListPublishedInput) ([]model.Product, int, error) {
	normalizePage(input)

	// 1. Cache lookup
	cacheKey, err := uc.generateCacheKey(input)
	if err == nil && uc.cache != nil {
		var hit cachedList
		if err := uc.cache.GetJSON(ctx, cacheKey, &hit); err == nil {
			return hit.Products, hit.Count, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			uc.logger.Warn("product list cache read failed", zap.Error(err))
		}
	}

	// 2. Resolve category subtree and partner
	filters := &dto.ProductFilters{
		Status:      string(model.ProductStatusPublished),
		IsFeatured:  input.Featured,
		SearchQuery: strings.TrimSpace(input.Query),
		Locale:      input.Locale,
		Page:        input.Page,
		PageSize:    input.PageSize,
	}
	filters.SortBy, filters.SortOrder = parseSort(input.Sort)

	if input.Category != "" {
		ids, ok, err := uc.resolveCategory(ctx, input.Category, input.Locale)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return []model.Product{}, 0, nil
		}
		filters.CategoryIDs = ids
	}
	if input.Partner != "" {
		id, ok, err := uc.resolvePartner(ctx, input.Partner, input.Locale)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return []model.Product{}, 0, nil
		}
		filters.PartnerID = id
	}

	// 3. Search via Elastic when a query is present, DB otherwise or on failure
	var products []model.Product
	var count int
	searched := false
	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err = uc.searchElastic(ctx, filters)
		if err == nil {
			searched = true
		} else {
			uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
		}
	}
	if !searched {
		products, count, err = uc.repo.FindAll(ctx, filters)
		if err != nil {
			return nil, 0, err
		}
	}

	for i := range products {
		products[i].Localize(input.Locale, uc.defaultLocale)
		products[i].Translations = nil
	}

	// 4. Set Cache
	if cacheKey != "" && uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, cacheKey, cachedList{Products: products, Count: count}, uc.cacheTTL); err != nil {
			uc.logger.Warn("product list cache write failed", zap.Error(err))
		}
	}

	return products, count, nil
}

func normalizePage(input *dto.ListPublishedInput) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.PageSize < 1 {
		input.PageSize = DefaultPageSize
	}
	if input.PageSize > MaxPageSize {
		input.PageSize = MaxPageSize
	}
}

func parseSort(sort string) (string, string) {
	order := "asc"
	if strings.HasPrefix(sort, "-") {
		order = "desc"
		sort = sort[1:]
	}
	switch sort {
	case "name", "created_at", "sort":
		return sort, order
	}
	return "", ""
}

func (uc *productUseCase) resolveCategory(ctx context.Context, ref, locale string) ([]string, bool, error) {
	id := ref
	if _, err := uuid.Parse(ref); err != nil {
		c, err := uc.categories.GetCategoryBySlug(ctx, ref, locale)
		if err != nil {
			if apperror.IsKind(err, apperror.KindNotFound) {
				return nil, false, nil
			}
			return nil, false, err
		}
		id = c.ID
	}

	ids, err := uc.categories.Descendants(ctx, id)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return ids, true, nil
}

func (uc *productUseCase) resolvePartner(ctx context.Context, ref, locale string) (string, bool, error) {
	if _, err := uuid.Parse(ref); err == nil {
		return ref, true, nil
	}
	p, err := uc.partners.GetPartnerBySlug(ctx, ref, locale)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return p.ID, true, nil
}

func (uc *productUseCase) searchElastic(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	filter := []map[string]interface{}{
		{"term": map[string]interface{}{"status": f.Status}},
	}
	if len(f.CategoryIDs) > 0 {
		filter = append(filter, map[string]interface{}{"terms": map[string]interface{}{"category_id": f.CategoryIDs}})
	}
	if f.PartnerID != "" {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"partner_id": f.PartnerID}})
	}
	if f.IsFeatured != nil {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"is_featured": *f.IsFeatured}})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"multi_match": map[string]interface{}{
							"query":     f.SearchQuery,
							"fields":    []string{"names.*^3", "sku^4", "texts.*"},
							"fuzziness": "AUTO",
						},
					},
				},
				"filter": filter,
			},
		},
		"from":    (f.Page - 1) * f.PageSize,
		"size":    f.PageSize,
		"_source": false,
	}

	res, err := uc.es.Search(ctx, uc.index, q)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	products, err := uc.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) generateCacheKey(input *dto.ListPublishedInput) (string, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data)), nil
}

// invalidateProductCache runs before a write returns so the next list read
// misses. It survives the caller cancelling ctx.
func (uc *productUseCase) invalidateProductCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeletePattern(context.WithoutCancel(ctx), "products:list:*"); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}

func (uc *productUseCase) GetPublishedBySlug(ctx context.Context, slugValue, locale string) (*model.Product, error) {
	p, err := uc.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != model.ProductStatusPublished {
		return nil, ErrNotFound
	}
	uc.attachRefs(ctx, p, locale)
	p.Localize(locale, uc.defaultLocale)
	return p, nil
}

// Related lists other published products of the same category, or of the
// same partner when the product has no category.
func (uc *productUseCase) Related(ctx context.Context, slugValue, locale string, limit int) ([]model.Product, error) {
	p, err := uc.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != model.ProductStatusPublished {
		return nil, ErrNotFound
	}
	if limit < 1 || limit > MaxPageSize {
		limit = 4
	}

	filters := &dto.ProductFilters{
		Status:    string(model.ProductStatusPublished),
		ExcludeID: p.ID,
		Locale:    locale,
		Page:      1,
		PageSize:  limit,
	}
	switch {
	case p.CategoryID != nil:
		filters.CategoryIDs = []string{*p.CategoryID}
	case p.PartnerID != nil:
		filters.PartnerID = *p.PartnerID
	default:
		return []model.Product{}, nil
	}

	related, _, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	for i := range related {
		related[i].Localize(locale, uc.defaultLocale)
		related[i].Translations = nil
	}
	return related, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	sku := strings.TrimSpace(input.SKU)
	if p.SKU != sku {
		unique, err := uc.repo.IsSKUUnique(ctx, sku, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, ErrSKUTaken
		}
	}

	categoryID, partnerID, err := uc.checkRefs(ctx, input.CategoryID, input.PartnerID)
	if err != nil {
		return nil, err
	}

	requested := input.Slug
	if requested == "" {
		requested = p.Slug
	}
	slugValue, err := uc.resolveSlug(ctx, requested, sku, input.Translations, p.ID)
	if err != nil {
		return nil, err
	}

	p.SKU = sku
	p.Slug = slugValue
	p.CategoryID = categoryID
	p.PartnerID = partnerID
	p.Status = input.Status
	p.IsFeatured = input.IsFeatured
	p.SortOrder = input.SortOrder
	p.ImageURLs = model.StringList(cleanList(input.ImageURLs))
	p.DatasheetURL = emptyToNil(input.DatasheetURL)
	p.Translations = input.Translations
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	p.Localize(uc.defaultLocale, uc.defaultLocale)

	go uc.syncToElastic(context.Background(), p)

	// Invalidate Cache
	uc.invalidateProductCache(ctx)
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNotFound
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), uc.index, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.String("product_id", id), zap.Error(err))
			}
		}()
	}

	uc.invalidateProductCache(ctx)
	return nil
}

func (uc *productUseCase) Reindex(ctx context.Context) (int, error) {
	if uc.es == nil {
		return 0, errors.New("search is not configured")
	}
	if err := uc.es.CreateIndex(ctx, uc.index, indexMapping); err != nil {
		return 0, err
	}

	const batch = 200
	indexed := 0
	for page := 1; ; page++ {
		products, _, err := uc.repo.FindAll(ctx, &dto.ProductFilters{SortBy: "created_at", Page: page, PageSize: batch})
		if err != nil {
			return indexed, err
		}
		for i := range products {
			if err := uc.es.Index(ctx, uc.index, products[i].ID, products[i].Document()); err != nil {
				return indexed, fmt.Errorf("index %s: %w", products[i].SKU, err)
			}
			indexed++
		}
		if len(products) < batch {
			return indexed, nil
		}
	}
}
