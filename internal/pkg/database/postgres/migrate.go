package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// MigrationsFS exposes the embedded goose migrations rooted at their
// directory.
func MigrationsFS() fs.FS {
	sub, err := fs.Sub(migrationFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

func newProvider(db *sql.DB) (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectPostgres, db, MigrationsFS())
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	return p, nil
}

// Migrate applies every pending migration, each in its own transaction, and
// returns the file names applied by this call.
func Migrate(ctx context.Context, db *sqlx.DB) ([]string, error) {
	p, err := newProvider(db.DB)
	if err != nil {
		return nil, err
	}
	results, err := p.Up(ctx)
	ran := make([]string, 0, len(results))
	for _, r := range results {
		if r.Error == nil {
			ran = append(ran, r.Source.Path)
		}
	}
	if err != nil {
		return ran, fmt.Errorf("migrate: %w", err)
	}
	return ran, nil
}
