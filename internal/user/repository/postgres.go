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
	"github.com/fekuna/kitmed-catalog-service/internal/user/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const userColumns = `id, email, name, password_hash, role, is_active, last_login_at, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	return postgres.Tx(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
            INSERT INTO users (id, email, name, password_hash, role, is_active, last_login_at, created_at, updated_at)
            VALUES (:id, :email, :name, :password_hash, :role, :is_active, :last_login_at, :created_at, :updated_at)
        `
		if _, err := tx.NamedExecContext(ctx, query, u); err != nil {
			return err
		}
		return savePermissions(ctx, tx, u.ID, u.Permissions)
	})
}

func savePermissions(ctx context.Context, tx *sqlx.Tx, id string, perms []model.Permission) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM user_permissions WHERE user_id = $1", id); err != nil {
		return err
	}
	for _, p := range perms {
		if _, err := tx.ExecContext(ctx, "INSERT INTO user_permissions (user_id, permission) VALUES ($1, $2)", id, string(p)); err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, "id", id)
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *PGRepository) findOne(ctx context.Context, column, value string) (*model.User, error) {
	var user model.User
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1 LIMIT 1`, userColumns, column)
	if err := r.DB.GetContext(ctx, &user, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachPermissions(ctx, []*model.User{&user}); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.UserFilters) ([]model.User, int, error) {
	var users []model.User
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Role != "" {
		conditions = append(conditions, "role = :role")
		args["role"] = f.Role
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.Search != "" {
		conditions = append(conditions, "(email ILIKE :search OR name ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM users"+whereClause, args)
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

	query := "SELECT " + userColumns + " FROM users" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &users, args); err != nil {
		return nil, 0, err
	}

	ptrs := make([]*model.User, len(users))
	for i := range users {
		ptrs[i] = &users[i]
	}
	if err := r.attachPermissions(ctx, ptrs); err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

type permissionRow struct {
	UserID     string `db:"user_id"`
	Permission string `db:"permission"`
}

func (r *PGRepository) attachPermissions(ctx context.Context, users []*model.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]string, len(users))
	byID := make(map[string]*model.User, len(users))
	for i, u := range users {
		ids[i] = u.ID
		byID[u.ID] = u
		u.Permissions = []model.Permission{}
	}

	query, args, err := sqlx.In(`
        SELECT user_id, permission FROM user_permissions
        WHERE user_id IN (?)
        ORDER BY permission
    `, ids)
	if err != nil {
		return err
	}

	var rows []permissionRow
	if err := r.DB.SelectContext(ctx, &rows, r.DB.Rebind(query), args...); err != nil {
		return err
	}
	for _, row := range rows {
		if u, ok := byID[row.UserID]; ok {
			u.Permissions = append(u.Permissions, model.Permission(row.Permission))
		}
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, u *model.User) error {
	query := `
        UPDATE users
        SET email = :email,
            name = :name,
            password_hash = :password_hash,
            role = :role,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, u)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

func (r *PGRepository) SetPermissions(ctx context.Context, id string, perms []model.Permission) error {
	return postgres.Tx(ctx, r.DB, func(tx *sqlx.Tx) error {
		return savePermissions(ctx, tx, id, perms)
	})
}

func (r *PGRepository) TouchLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET last_login_at = $1 WHERE id = $2", at, id)
	return err
}

func (r *PGRepository) IsEmailUnique(ctx context.Context, email, excludeID string) (bool, error) {
	var count int
	query := "SELECT count(*) FROM users WHERE lower(email) = lower($1)"
	args := []interface{}{email}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}
