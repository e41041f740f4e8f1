package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/kitmed-catalog-service/internal/category/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const categoryColumns = `id, parent_id, kind, slug, image_url, sort_order, is_active, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	return postgres.Tx(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
            INSERT INTO categories (id, parent_id, kind, slug, image_url, sort_order, is_active, created_at, updated_at)
            VALUES (:id, :parent_id, :kind, :slug, :image_url, :sort_order, :is_active, :created_at, :updated_at)
        `
		if _, err := tx.NamedExecContext(ctx, query, c); err != nil {
			return err
		}
		return saveTranslations(ctx, tx, c.ID, c.Translations)
	})
}

func saveTranslations(ctx context.Context, tx *sqlx.Tx, id string, ts []model.CategoryTranslation) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM category_translations WHERE category_id = $1", id); err != nil {
		return err
	}
	for i := range ts {
		ts[i].CategoryID = id
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO category_translations (category_id, locale, name, description)
            VALUES (:category_id, :locale, :name, :description)
        `, ts[i])
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	return r.findOne(ctx, "id", id)
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.findOne(ctx, "slug", slug)
}

func (r *PGRepository) findOne(ctx context.Context, column, value string) (*model.Category, error) {
	var category model.Category
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE %s = $1 LIMIT 1`, categoryColumns, column)
	err := r.DB.GetContext(ctx, &category, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.attachTranslations(ctx, []*model.Category{&category}); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	var categories []model.Category
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ParentID != nil {
		if *f.ParentID == "" {
			conditions = append(conditions, "parent_id IS NULL")
		} else {
			conditions = append(conditions, "parent_id = :parent_id")
			args["parent_id"] = *f.ParentID
		}
	}
	if f.Kind != "" {
		conditions = append(conditions, "kind = :kind")
		args["kind"] = f.Kind
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.Search != "" {
		conditions = append(conditions, `(slug ILIKE :search OR EXISTS (
            SELECT 1 FROM category_translations ct WHERE ct.category_id = categories.id AND ct.name ILIKE :search))`)
		args["search"] = "%" + f.Search + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM categories"+whereClause, args)
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

	query := "SELECT " + categoryColumns + " FROM categories" + whereClause + " ORDER BY sort_order ASC, slug ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &categories, args); err != nil {
		return nil, 0, err
	}

	ptrs := make([]*model.Category, len(categories))
	for i := range categories {
		ptrs[i] = &categories[i]
	}
	if err := r.attachTranslations(ctx, ptrs); err != nil {
		return nil, 0, err
	}
	return categories, count, nil
}

func (r *PGRepository) FindAllFlat(ctx context.Context, activeOnly bool) ([]*model.Category, error) {
	var categories []*model.Category
	query := "SELECT " + categoryColumns + " FROM categories"
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	if err := r.DB.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}
	if err := r.attachTranslations(ctx, categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PGRepository) attachTranslations(ctx context.Context, cats []*model.Category) error {
	if len(cats) == 0 {
		return nil
	}
	ids := make([]string, len(cats))
	byID := make(map[string]*model.Category, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
		byID[c.ID] = c
	}

	query, args, err := sqlx.In(`
        SELECT category_id, locale, name, description
        FROM category_translations
        WHERE category_id IN (?)
        ORDER BY locale
    `, ids)
	if err != nil {
		return err
	}

	var ts []model.CategoryTranslation
	if err := r.DB.SelectContext(ctx, &ts, r.DB.Rebind(query), args...); err != nil {
		return err
	}
	for _, t := range ts {
		if c, ok := byID[t.CategoryID]; ok {
			c.Translations = append(c.Translations, t)
		}
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	return postgres.Tx(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
            UPDATE categories
            SET parent_id = :parent_id,
                kind = :kind,
                slug = :slug,
                image_url = :image_url,
                sort_order = :sort_order,
                is_active = :is_active,
                updated_at = :updated_at
            WHERE id = :id
        `
		if _, err := tx.NamedExecContext(ctx, query, c); err != nil {
			return err
		}
		return saveTranslations(ctx, tx, c.ID, c.Translations)
	})
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	return err
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int
	query := "SELECT count(*) FROM categories WHERE slug = $1"
	args := []interface{}{slug}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *PGRepository) CountChildren(ctx context.Context, id string) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM categories WHERE parent_id = $1", id)
	return count, err
}

func (r *PGRepository) CountProducts(ctx context.Context, id string) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM products WHERE category_id = $1", id)
	return count, err
}
