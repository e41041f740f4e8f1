package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, m *model.Media) (bool, error) {
	query := `
        INSERT INTO media (id, hash, file_name, mime_type, size, path, url, created_at)
        VALUES (:id, :hash, :file_name, :mime_type, :size, :path, :url, :created_at)
        ON CONFLICT (hash) DO NOTHING
    `
	res, err := r.DB.NamedExecContext(ctx, query, m)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Media, error) {
	return r.findOne(ctx, "SELECT id, hash, file_name, mime_type, size, path, url, created_at FROM media WHERE id = $1", id)
}

func (r *PGRepository) FindByHash(ctx context.Context, hash string) (*model.Media, error) {
	return r.findOne(ctx, "SELECT id, hash, file_name, mime_type, size, path, url, created_at FROM media WHERE hash = $1", hash)
}

func (r *PGRepository) findOne(ctx context.Context, query, arg string) (*model.Media, error) {
	var m model.Media
	if err := r.DB.GetContext(ctx, &m, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
