package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/database/postgres"
	"github.com/fekuna/kitmed-catalog-service/internal/rfp/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const rfpColumns = `id, reference, status, locale, full_name, email, phone, company, job_title, country, city,
    institution_type, message, budget, desired_date, urgency, internal_notes, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, req *model.RFPRequest) error {
	return postgres.Tx(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
            INSERT INTO rfp_requests (id, reference, status, locale, full_name, email, phone, company, job_title, country, city,
                institution_type, message, budget, desired_date, urgency, internal_notes, created_at, updated_at)
            VALUES (:id, :reference, :status, :locale, :full_name, :email, :phone, :company, :job_title, :country, :city,
                :institution_type, :message, :budget, :desired_date, :urgency, :internal_notes, :created_at, :updated_at)
        `
		if _, err := tx.NamedExecContext(ctx, query, req); err != nil {
			return err
		}

		for i := range req.Items {
			req.Items[i].RFPID = req.ID
			_, err := tx.NamedExecContext(ctx, `
                INSERT INTO rfp_items (id, rfp_id, product_id, product_sku, product_name, quantity, notes)
                VALUES (:id, :rfp_id, :product_id, :product_sku, :product_name, :quantity, :notes)
            `, req.Items[i])
			if err != nil {
				return err
			}
		}

		for i := range req.History {
			req.History[i].RFPID = req.ID
			if err := insertHistory(ctx, tx, &req.History[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertHistory(ctx context.Context, tx *sqlx.Tx, h *model.RFPStatusHistory) error {
	_, err := tx.NamedExecContext(ctx, `
        INSERT INTO rfp_status_history (id, rfp_id, from_status, to_status, note, changed_by, created_at)
        VALUES (:id, :rfp_id, :from_status, :to_status, :note, :changed_by, :created_at)
    `, h)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.RFPRequest, error) {
	var req model.RFPRequest
	if err := r.DB.GetContext(ctx, &req, `SELECT `+rfpColumns+` FROM rfp_requests WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.DB.SelectContext(ctx, &req.Items, `
        SELECT id, rfp_id, product_id, product_sku, product_name, quantity, notes
        FROM rfp_items WHERE rfp_id = $1 ORDER BY product_sku
    `, id); err != nil {
		return nil, err
	}
	if err := r.DB.SelectContext(ctx, &req.History, `
        SELECT id, rfp_id, from_status, to_status, note, changed_by, created_at
        FROM rfp_status_history WHERE rfp_id = $1 ORDER BY created_at ASC
    `, id); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.RFPFilters) ([]model.RFPRequest, int, error) {
	var requests []model.RFPRequest
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.Search != "" {
		conditions = append(conditions, "(reference ILIKE :search OR company ILIKE :search OR email ILIKE :search OR full_name ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM rfp_requests"+whereClause, args)
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

	query := "SELECT " + rfpColumns + " FROM rfp_requests" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &requests, args); err != nil {
		return nil, 0, err
	}
	return requests, count, nil
}

func (r *PGRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM rfp_requests WHERE reference = $1)", reference)
	return exists, err
}

func (r *PGRepository) TransitionStatus(ctx context.Context, h *model.RFPStatusHistory, at time.Time) (bool, error) {
	moved := false
	err := postgres.Tx(ctx, r.DB, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE rfp_requests SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4",
			string(h.ToStatus), at, h.RFPID, string(h.FromStatus),
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		moved = true
		return insertHistory(ctx, tx, h)
	})
	return moved, err
}

func (r *PGRepository) UpdateNotes(ctx context.Context, id, notes string, at time.Time) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE rfp_requests SET internal_notes = $1, updated_at = $2 WHERE id = $3", notes, at, id)
	return err
}
