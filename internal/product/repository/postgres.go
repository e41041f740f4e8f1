package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/database/postgres"
	"github.com/fekuna/kitmed-catalog-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const productColumns = `id, sku, slug, category_id, partner_id, status, is_featured, sort_order, image_urls, datasheet_url, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	return postgres.Tx(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
            INSERT INTO products (id, sku, slug, category_id, partner_id, status, is_featured, sort_order, image_urls, datasheet_url, created_at, updated_at)
            VALUES (:id, :sku, :slug, :category_id, :partner_id, :status, :is_featured, :sort_order, :image_urls, :datasheet_url, :created_at, :updated_at)
        `
		if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
			return err
		}
		return saveTranslations(ctx, tx, p.ID, p.Translations)
	})
}

func saveTranslations(ctx context.Context, tx *sqlx.Tx, id string, ts []model.ProductTranslation) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM product_translations WHERE product_id = $1", id); err != nil {
		return err
	}
	for i := range ts {
		ts[i].ProductID = id
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO product_translations (product_id, locale, name, short_description, description, specifications)
            VALUES (:product_id, :locale, :name, :short_description, :description, :specifications)
        `, ts[i])
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	return r.findOne(ctx, "id", id)
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return r.findOne(ctx, "slug", slug)
}

func (r *PGRepository) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	return r.findOne(ctx, "sku", sku)
}

func (r *PGRepository) findOne(ctx context.Context, column, value string) (*model.Product, error) {
	var product model.Product
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s = $1 LIMIT 1`, productColumns, column)
	if err := r.DB.GetContext(ctx, &product, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachTranslations(ctx, []*model.Product{&product}); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	query, args, err := sqlx.In("SELECT "+productColumns+" FROM products WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}

	var found []model.Product
	if err := r.DB.SelectContext(ctx, &found, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Product, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	ordered := make([]model.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, *p)
		}
	}

	ptrs := make([]*model.Product, len(ordered))
	for i := range ordered {
		ptrs[i] = &ordered[i]
	}
	if err := r.attachTranslations(ctx, ptrs); err != nil {
		return nil, err
	}
	return ordered, nil
}

var sortColumns = map[string]string{
	"created_at": "created_at",
	"sort":       "sort_order",
	"sku":        "sku",
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if len(f.CategoryIDs) > 0 {
		placeholders := make([]string, len(f.CategoryIDs))
		for i, id := range f.CategoryIDs {
			key := fmt.Sprintf("category_%d", i)
			placeholders[i] = ":" + key
			args[key] = id
		}
		conditions = append(conditions, "category_id IN ("+strings.Join(placeholders, ", ")+")")
	}
	if f.PartnerID != "" {
		conditions = append(conditions, "partner_id = :partner_id")
		args["partner_id"] = f.PartnerID
	}
	if f.IsFeatured != nil {
		conditions = append(conditions, "is_featured = :is_featured")
		args["is_featured"] = *f.IsFeatured
	}
	if f.ExcludeID != "" {
		conditions = append(conditions, "id <> :exclude_id")
		args["exclude_id"] = f.ExcludeID
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, `(sku ILIKE :search OR EXISTS (
            SELECT 1 FROM product_translations pt
            WHERE pt.product_id = products.id
              AND (pt.name ILIKE :search OR pt.short_description ILIKE :search OR pt.description ILIKE :search)))`)
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM products"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			rows.Close()
			return nil, 0, err
		}
	}
	rows.Close()

	direction := "ASC"
	if strings.EqualFold(f.SortOrder, "desc") {
		direction = "DESC"
	}
	orderBy := "sort_order ASC, created_at DESC"
	if f.SortBy == "name" {
		// Name lives in the translations table; prefer the requested locale.
		orderBy = fmt.Sprintf(`(SELECT pt.name FROM product_translations pt
            WHERE pt.product_id = products.id
            ORDER BY (pt.locale = :sort_locale) DESC, pt.locale LIMIT 1) %s, sku ASC`, direction)
		args["sort_locale"] = f.Locale
	} else if col, ok := sortColumns[f.SortBy]; ok {
		orderBy = fmt.Sprintf("%s %s, id ASC", col, direction)
	}

	query := "SELECT " + productColumns + " FROM products" + whereClause + " ORDER BY " + orderBy
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, err
	}

	ptrs := make([]*model.Product, len(products))
	for i := range products {
		ptrs[i] = &products[i]
	}
	if err := r.attachTranslations(ctx, ptrs); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) attachTranslations(ctx context.Context, products []*model.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	byID := make(map[string]*model.Product, len(products))
	for i, p := range products {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	query, args, err := sqlx.In(`
        SELECT product_id, locale, name, short_description, description, specifications
        FROM product_translations
        WHERE product_id IN (?)
        ORDER BY locale
    `, ids)
	if err != nil {
		return err
	}

	var ts []model.ProductTranslation
	if err := r.DB.SelectContext(ctx, &ts, r.DB.Rebind(query), args...); err != nil {
		return err
	}
	for _, t := range ts {
		if p, ok := byID[t.ProductID]; ok {
			p.Translations = append(p.Translations, t)
		}
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	return postgres.Tx(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
            UPDATE products
            SET sku = :sku,
                slug = :slug,
                category_id = :category_id,
                partner_id = :partner_id,
                status = :status,
                is_featured = :is_featured,
                sort_order = :sort_order,
                image_urls = :image_urls,
                datasheet_url = :datasheet_url,
                updated_at = :updated_at
            WHERE id = :id
        `
		if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
			return err
		}
		return saveTranslations(ctx, tx, p.ID, p.Translations)
	})
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error) {
	return r.isUnique(ctx, "sku", sku, excludeID)
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error) {
	return r.isUnique(ctx, "slug", slug, excludeID)
}

func (r *PGRepository) isUnique(ctx context.Context, column, value, excludeID string) (bool, error) {
	var count int
	query := fmt.Sprintf("SELECT count(*) FROM products WHERE %s = $1", column)
	args := []interface{}{value}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}
