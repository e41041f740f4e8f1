//go:build integration

// Package pgtest opens a migrated database for repository integration tests.
package pgtest

import (
	"context"
	"os"
	"testing"

	"github.com/fekuna/kitmed-catalog-service/internal/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

const EnvDSN = "KITMED_TEST_DSN"

// Open connects to $KITMED_TEST_DSN, applies migrations and truncates every
// table. The test is skipped when the variable is unset.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s not set", EnvDSN)
	}

	db, err := postgres.Open(dsn, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if _, err := postgres.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	_, err = db.ExecContext(ctx, `
        TRUNCATE rfp_status_history, rfp_items, rfp_requests, media,
                 user_permissions, users, banner_translations, banners,
                 product_translations, products, partner_translations, partners,
                 category_translations, categories
        CASCADE
    `)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}
