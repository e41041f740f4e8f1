package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/partner/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const partnerColumns = `id, slug, name, website_url, logo_url, country, is_featured, is_active, sort_order, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, p *model.Partner) error {
	return postgres.Tx(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
            INSERT INTO partners (id, slug, name, website_url, logo_url, country, is_featured, is_active, sort_order, created_at, updated_at)
            VALUES (:id, :slug, :name, :website_url, :logo_url, :country, :is_featured, :is_active, :sort_order, :created_at, :updated_at)
        `
		if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
			return err
		}
		return saveTranslations(ctx, tx, p.ID, p.Translations)
	})
}

func saveTranslations(ctx context.Context, tx *sqlx.Tx, id string, ts []model.PartnerTranslation) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM partner_translations WHERE partner_id = $1", id); err != nil {
		return err
	}
	for i := range ts {
		ts[i].PartnerID = id
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO partner_translations (partner_id, locale, description)
            VALUES (:partner_id, :locale, :description)
        `, ts[i])
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Partner, error) {
	return r.findOne(ctx, "id", id)
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Partner, error) {
	return r.findOne(ctx, "slug", slug)
}

func (r *PGRepository) findOne(ctx context.Context, column, value string) (*model.Partner, error) {
	var partner model.Partner
	query := fmt.Sprintf(`SELECT %s FROM partners WHERE %s = $1 LIMIT 1`, partnerColumns, column)
	if err := r.DB.GetContext(ctx, &partner, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachTranslations(ctx, []*model.Partner{&partner}); err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.PartnerFilters) ([]model.Partner, int, error) {
	var partners []model.Partner
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.IsFeatured != nil {
		conditions = append(conditions, "is_featured = :is_featured")
		args["is_featured"] = *f.IsFeatured
	}
	if f.Search != "" {
		conditions = append(conditions, "(name ILIKE :search OR slug ILIKE :search OR country ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM partners"+whereClause, args)
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

	query := "SELECT " + partnerColumns + " FROM partners" + whereClause + " ORDER BY sort_order ASC, name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &partners, args); err != nil {
		return nil, 0, err
	}

	ptrs := make([]*model.Partner, len(partners))
	for i := range partners {
		ptrs[i] = &partners[i]
	}
	if err := r.attachTranslations(ctx, ptrs); err != nil {
		return nil, 0, err
	}
	return partners, count, nil
}

func (r *PGRepository) attachTranslations(ctx context.Context, partners []*model.Partner) error {
	if len(partners) == 0 {
		return nil
	}
	ids := make([]string, len(partners))
	byID := make(map[string]*model.Partner, len(partners))
	for i, p := range partners {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	query, args, err := sqlx.In(`
        SELECT partner_id, locale, description
        FROM partner_translations
        WHERE partner_id IN (?)
        ORDER BY locale
    `, ids)
	if err != nil {
		return err
	}

	var ts []model.PartnerTranslation
	if err := r.DB.SelectContext(ctx, &ts, r.DB.Rebind(query), args...); err != nil {
		return err
	}
	for _, t := range ts {
		if p, ok := byID[t.PartnerID]; ok {
			p.Translations = append(p.Translations, t)
		}
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Partner) error {
	return postgres.Tx(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
            UPDATE partners
            SET slug = :slug,
                name = :name,
                website_url = :website_url,
                logo_url = :logo_url,
                country = :country,
                is_featured = :is_featured,
                is_active = :is_active,
                sort_order = :sort_order,
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
	_, err := r.DB.ExecContext(ctx, "DELETE FROM partners WHERE id = $1", id)
	return err
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int
	query := "SELECT count(*) FROM partners WHERE slug = $1"
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

func (r *PGRepository) CountProducts(ctx context.Context, id string) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM products WHERE partner_id = $1", id)
	return count, err
}
