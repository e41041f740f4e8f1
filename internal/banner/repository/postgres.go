package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/banner/dto"
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

const bannerColumns = `id, position, image_url, link_url, sort_order, is_active, starts_at, ends_at, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, b *model.Banner) error {
	return postgres.Tx(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
            INSERT INTO banners (id, position, image_url, link_url, sort_order, is_active, starts_at, ends_at, created_at, updated_at)
            VALUES (:id, :position, :image_url, :link_url, :sort_order, :is_active, :starts_at, :ends_at, :created_at, :updated_at)
        `
		if _, err := tx.NamedExecContext(ctx, query, b); err != nil {
			return err
		}
		return saveTranslations(ctx, tx, b.ID, b.Translations)
	})
}

func saveTranslations(ctx context.Context, tx *sqlx.Tx, id string, ts []model.BannerTranslation) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM banner_translations WHERE banner_id = $1", id); err != nil {
		return err
	}
	for i := range ts {
		ts[i].BannerID = id
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO banner_translations (banner_id, locale, title, subtitle, cta_label)
            VALUES (:banner_id, :locale, :title, :subtitle, :cta_label)
        `, ts[i])
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Banner, error) {
	var banner model.Banner
	query := `SELECT ` + bannerColumns + ` FROM banners WHERE id = $1`
	if err := r.DB.GetContext(ctx, &banner, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachTranslations(ctx, []*model.Banner{&banner}); err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.BannerFilters) ([]model.Banner, int, error) {
	var banners []model.Banner
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Position != "" {
		conditions = append(conditions, "position = :position")
		args["position"] = f.Position
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM banners"+whereClause, args)
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

	query := "SELECT " + bannerColumns + " FROM banners" + whereClause + " ORDER BY position ASC, sort_order ASC, created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &banners, args); err != nil {
		return nil, 0, err
	}
	if err := r.attachTranslations(ctx, ptrs(banners)); err != nil {
		return nil, 0, err
	}
	return banners, count, nil
}

func (r *PGRepository) FindLive(ctx context.Context, position model.BannerPosition, now time.Time) ([]model.Banner, error) {
	var banners []model.Banner
	query := `
        SELECT ` + bannerColumns + `
        FROM banners
        WHERE is_active = TRUE
          AND ($1 = '' OR position = $1)
          AND (starts_at IS NULL OR starts_at <= $2)
          AND (ends_at IS NULL OR ends_at > $2)
        ORDER BY sort_order ASC, created_at DESC
    `
	if err := r.DB.SelectContext(ctx, &banners, query, string(position), now); err != nil {
		return nil, err
	}
	if err := r.attachTranslations(ctx, ptrs(banners)); err != nil {
		return nil, err
	}
	return banners, nil
}

func ptrs(banners []model.Banner) []*model.Banner {
	out := make([]*model.Banner, len(banners))
	for i := range banners {
		out[i] = &banners[i]
	}
	return out
}

func (r *PGRepository) attachTranslations(ctx context.Context, banners []*model.Banner) error {
	if len(banners) == 0 {
		return nil
	}
	ids := make([]string, len(banners))
	byID := make(map[string]*model.Banner, len(banners))
	for i, b := range banners {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	query, args, err := sqlx.In(`
        SELECT banner_id, locale, title, subtitle, cta_label
        FROM banner_translations
        WHERE banner_id IN (?)
        ORDER BY locale
    `, ids)
	if err != nil {
		return err
	}

	var ts []model.BannerTranslation
	if err := r.DB.SelectContext(ctx, &ts, r.DB.Rebind(query), args...); err != nil {
		return err
	}
	for _, t := range ts {
		if b, ok := byID[t.BannerID]; ok {
			b.Translations = append(b.Translations, t)
		}
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, b *model.Banner) error {
	return postgres.Tx(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
            UPDATE banners
            SET position = :position,
                image_url = :image_url,
                link_url = :link_url,
                sort_order = :sort_order,
                is_active = :is_active,
                starts_at = :starts_at,
                ends_at = :ends_at,
                updated_at = :updated_at
            WHERE id = :id
        `
		if _, err := tx.NamedExecContext(ctx, query, b); err != nil {
			return err
		}
		return saveTranslations(ctx, tx, b.ID, b.Translations)
	})
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM banners WHERE id = $1", id)
	return err
}
