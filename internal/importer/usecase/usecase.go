package usecase

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fekuna/kitmed-catalog-service/internal/category"
	catdto "github.com/fekuna/kitmed-catalog-service/internal/category/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/importer"
	"github.com/fekuna/kitmed-catalog-service/internal/importer/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/media"
	mediadto "github.com/fekuna/kitmed-catalog-service/internal/media/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/partner"
	partnerdto "github.com/fekuna/kitmed-catalog-service/internal/partner/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/i18n"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/fekuna/kitmed-catalog-service/internal/product"
	productdto "github.com/fekuna/kitmed-catalog-service/internal/product/dto"
	"go.uber.org/zap"
)

type importUseCase struct {
	products      product.UseCase
	categories    category.UseCase
	partners      partner.UseCase
	media         media.UseCase // optional; attachments are rejected without it
	defaultLocale string
	logger        logger.ZapLogger
}

func NewImportUseCase(
	products product.UseCase,
	categories category.UseCase,
	partners partner.UseCase,
	mediaUC media.UseCase,
	defaultLocale string,
	log logger.ZapLogger,
) importer.UseCase {
	return &importUseCase{
		products:      products,
		categories:    categories,
		partners:      partners,
		media:         mediaUC,
		defaultLocale: defaultLocale,
		logger:        log,
	}
}

// refs maps lower-cased ids and slugs to ids.
type refs struct {
	categories map[string]string
	partners   map[string]string
}

func (uc *importUseCase) loadRefs(ctx context.Context) (*refs, error) {
	cats, _, err := uc.categories.ListCategories(ctx, &catdto.CategoryFilters{}, uc.defaultLocale)
	if err != nil {
		return nil, err
	}
	partners, _, err := uc.partners.ListPartners(ctx, &partnerdto.PartnerFilters{}, uc.defaultLocale)
	if err != nil {
		return nil, err
	}

	r := &refs{
		categories: make(map[string]string, len(cats)*2),
		partners:   make(map[string]string, len(partners)*2),
	}
	for _, c := range cats {
		r.categories[strings.ToLower(c.ID)] = c.ID
		r.categories[strings.ToLower(c.Slug)] = c.ID
	}
	for _, p := range partners {
		r.partners[strings.ToLower(p.ID)] = p.ID
		r.partners[strings.ToLower(p.Slug)] = p.ID
	}
	return r, nil
}

// planned is a row that passed validation.
type planned struct {
	line       int
	sku        string
	slug       string
	categoryID *string
	partnerID  *string
	status     model.ProductStatus
	featured   *bool
	images     []string
	datasheet  string
	tr         []model.ProductTranslation
}

type checker struct {
	refs        *refs
	attachments map[string]dto.Attachment
	report      *dto.ValidationReport

	seen       map[string]bool
	missingCat map[string]bool
	missingPar map[string]bool
	dupes      map[string]bool
}

func attachmentIndex(list []dto.Attachment) map[string]dto.Attachment {
	idx := make(map[string]dto.Attachment, len(list))
	for _, a := range list {
		idx[strings.ToLower(filepath.Base(a.FileName))] = a
	}
	return idx
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "/")
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "oui", "x":
		return true, true
	case "0", "false", "no", "n", "non":
		return false, true
	}
	b, err := strconv.ParseBool(raw)
	return b, err == nil
}

func (c *checker) check(row importer.Row) (*planned, []dto.RowError) {
	var errs []dto.RowError
	fail := func(field, code string, data map[string]interface{}) {
		errs = append(errs, dto.RowError{Row: row.Line, Field: field, Code: code, Data: data})
	}

	p := &planned{line: row.Line, sku: row.Get(importer.ColSKU), slug: row.Get(importer.ColSlug)}

	// sku
	key := strings.ToUpper(p.sku)
	switch {
	case p.sku == "":
		fail(importer.ColSKU, "ImportFieldRequired", nil)
	case c.seen[key]:
		if !c.dupes[key] {
			c.dupes[key] = true
			c.report.DuplicateSKUs = append(c.report.DuplicateSKUs, p.sku)
		}
		fail(importer.ColSKU, "ImportDuplicateSKU", map[string]interface{}{"SKU": p.sku})
	default:
		c.seen[key] = true
	}

	// names and texts
	for _, locale := range i18n.Supported {
		name := row.Get("name_" + locale)
		if name == "" {
			continue
		}
		p.tr = append(p.tr, model.ProductTranslation{
			Locale:           locale,
			Name:             name,
			ShortDescription: row.Get("short_description_" + locale),
			Description:      row.Get("description_" + locale),
		})
	}
	if len(p.tr) == 0 {
		fail(importer.ColNameFR, "ImportFieldRequired", nil)
	}

	if s := strings.ToLower(row.Get(importer.ColStatus)); s != "" {
		p.status = model.ProductStatus(s)
		if !p.status.Valid() {
			fail(importer.ColStatus, "ImportInvalidStatus", map[string]interface{}{"Value": s})
		}
	}

	if raw := row.Get(importer.ColFeatured); raw != "" {
		b, ok := parseBool(raw)
		if !ok {
			fail(importer.ColFeatured, "ImportInvalidBool", map[string]interface{}{"Value": raw})
		}
		p.featured = &b
	}

	if ref := row.Get(importer.ColCategory); ref != "" {
		if id, ok := c.refs.categories[strings.ToLower(ref)]; ok {
			p.categoryID = &id
		} else {
			if !c.missingCat[ref] {
				c.missingCat[ref] = true
				c.report.MissingCategories = append(c.report.MissingCategories, ref)
			}
			fail(importer.ColCategory, "ImportUnknownCategory", map[string]interface{}{"Ref": ref})
		}
	}

	if ref := row.Get(importer.ColPartner); ref != "" {
		if id, ok := c.refs.partners[strings.ToLower(ref)]; ok {
			p.partnerID = &id
		} else {
			if !c.missingPar[ref] {
				c.missingPar[ref] = true
				c.report.MissingPartners = append(c.report.MissingPartners, ref)
			}
			fail(importer.ColPartner, "ImportUnknownPartner", map[string]interface{}{"Ref": ref})
		}
	}

	p.images = importer.SplitList(row.Get(importer.ColImages))
	for _, ref := range p.images {
		if !isURL(ref) && !c.attached(ref) {
			fail(importer.ColImages, "ImportAttachmentMissing", map[string]interface{}{"File": ref})
		}
	}
	if p.datasheet = row.Get(importer.ColDatasheet); p.datasheet != "" && !isURL(p.datasheet) && !c.attached(p.datasheet) {
		fail(importer.ColDatasheet, "ImportAttachmentMissing", map[string]interface{}{"File": p.datasheet})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return p, nil
}

func (c *checker) attached(ref string) bool {
	_, ok := c.attachments[strings.ToLower(filepath.Base(ref))]
	return ok
}

func (uc *importUseCase) run(ctx context.Context, input *dto.ImportInput) (*dto.ValidationReport, []*planned, error) {
	sheet, err := importer.ParseSheet(input.FileName, input.Content)
	if err != nil {
		return nil, nil, err
	}
	r, err := uc.loadRefs(ctx)
	if err != nil {
		return nil, nil, err
	}

	report := &dto.ValidationReport{
		TotalRows:         len(sheet.Rows),
		MissingCategories: []string{},
		MissingPartners:   []string{},
		DuplicateSKUs:     []string{},
		Errors:            []dto.RowError{},
	}
	c := &checker{
		refs:        r,
		attachments: attachmentIndex(input.Attachments),
		report:      report,
		seen:        map[string]bool{},
		missingCat:  map[string]bool{},
		missingPar:  map[string]bool{},
		dupes:       map[string]bool{},
	}

	var rows []*planned
	for _, row := range sheet.Rows {
		p, errs := c.check(row)
		if len(errs) > 0 {
			report.InvalidRows++
			report.Errors = append(report.Errors, errs...)
			continue
		}
		report.ValidRows++
		rows = append(rows, p)
	}
	return report, rows, nil
}

func (uc *importUseCase) Validate(ctx context.Context, input *dto.ImportInput) (*dto.ValidationReport, error) {
	report, _, err := uc.run(ctx, input)
	return report, err
}

func (uc *importUseCase) Import(ctx context.Context, input *dto.ImportInput) (*dto.ImportResult, error) {
	report, rows, err := uc.run(ctx, input)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{
		Skipped: report.InvalidRows,
		Errors:  report.Errors,
	}
	up := &uploader{uc: uc, attachments: attachmentIndex(input.Attachments), urls: map[string]string{}}

	for _, p := range rows {
		created, err := uc.upsert(ctx, p, up)
		if err != nil {
			result.Skipped++
			code, data := rowCode(err)
			result.Errors = append(result.Errors, dto.RowError{Row: p.line, Code: code, Data: data})
			if apperror.As(err).Kind == apperror.KindInternal {
				uc.logger.Error("import row failed", zap.Int("row", p.line), zap.String("sku", p.sku), zap.Error(err))
			}
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	uc.logger.Info("product import finished",
		zap.String("file", input.FileName),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func rowCode(err error) (string, map[string]interface{}) {
	appErr := apperror.As(err)
	if appErr.Kind == apperror.KindInternal {
		return "InternalError", nil
	}
	return appErr.MessageID, appErr.Data
}

// uploader stores each referenced attachment once per import.
type uploader struct {
	uc          *importUseCase
	attachments map[string]dto.Attachment
	urls        map[string]string
}

func (u *uploader) resolve(ctx context.Context, ref string) (string, error) {
	if isURL(ref) {
		return ref, nil
	}
	key := strings.ToLower(filepath.Base(ref))
	if url, ok := u.urls[key]; ok {
		return url, nil
	}
	if u.uc.media == nil {
		return "", apperror.Invalid("ImportAttachmentsDisabled")
	}
	a := u.attachments[key]
	rc, err := a.Open()
	if err != nil {
		return "", apperror.Internal(err)
	}
	defer rc.Close()

	m, err := u.uc.media.Upload(ctx, &mediadto.UploadInput{FileName: a.FileName, MimeType: a.MimeType, Content: rc})
	if err != nil {
		return "", err
	}
	u.urls[key] = m.URL
	return m.URL, nil
}

func (uc *importUseCase) upsert(ctx context.Context, p *planned, up *uploader) (bool, error) {
	images := make([]string, 0, len(p.images))
	for _, ref := range p.images {
		url, err := up.resolve(ctx, ref)
		if err != nil {
			return false, err
		}
		images = append(images, url)
	}
	var datasheet *string
	if p.datasheet != "" {
		url, err := up.resolve(ctx, p.datasheet)
		if err != nil {
			return false, err
		}
		datasheet = &url
	}

	existing, err := uc.products.GetProductBySKU(ctx, p.sku)
	if err != nil && !apperror.IsKind(err, apperror.KindNotFound) {
		return false, err
	}

	if existing == nil {
		input := &productdto.CreateProductInput{
			SKU:          p.sku,
			Slug:         p.slug,
			CategoryID:   p.categoryID,
			PartnerID:    p.partnerID,
			Status:       p.status,
			ImageURLs:    images,
			DatasheetURL: datasheet,
			Translations: p.tr,
		}
		if p.featured != nil {
			input.IsFeatured = *p.featured
		}
		if _, err := uc.products.CreateProduct(ctx, input); err != nil {
			return false, err
		}
		return true, nil
	}

	// Empty cells keep what is stored.
	input := &productdto.UpdateProductInput{
		ID:           existing.ID,
		SKU:          existing.SKU,
		Slug:         p.slug,
		CategoryID:   existing.CategoryID,
		PartnerID:    existing.PartnerID,
		Status:       existing.Status,
		IsFeatured:   existing.IsFeatured,
		SortOrder:    existing.SortOrder,
		ImageURLs:    existing.ImageURLs,
		DatasheetURL: existing.DatasheetURL,
		Translations: mergeTranslations(existing.Translations, p.tr),
	}
	if p.categoryID != nil {
		input.CategoryID = p.categoryID
	}
	if p.partnerID != nil {
		input.PartnerID = p.partnerID
	}
	if p.status != "" {
		input.Status = p.status
	}
	if p.featured != nil {
		input.IsFeatured = *p.featured
	}
	if len(images) > 0 {
		input.ImageURLs = images
	}
	if datasheet != nil {
		input.DatasheetURL = datasheet
	}
	if _, err := uc.products.UpdateProduct(ctx, input); err != nil {
		return false, err
	}
	return false, nil
}

// mergeTranslations replaces the locales present in the row and keeps the
// others. Specifications are not part of the sheet and survive.
func mergeTranslations(stored, incoming []model.ProductTranslation) []model.ProductTranslation {
	byLocale := make(map[string]model.ProductTranslation, len(stored))
	for _, t := range stored {
		byLocale[t.Locale] = t
	}
	out := make([]model.ProductTranslation, 0, len(stored)+len(incoming))
	replaced := map[string]bool{}
	for _, t := range incoming {
		if old, ok := byLocale[t.Locale]; ok {
			t.Specifications = old.Specifications
			if t.ShortDescription == "" {
				t.ShortDescription = old.ShortDescription
			}
			if t.Description == "" {
				t.Description = old.Description
			}
		}
		replaced[t.Locale] = true
		out = append(out, t)
	}
	for _, t := range stored {
		if !replaced[t.Locale] {
			out = append(out, t)
		}
	}
	return out
}
