package media

import (
	"context"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
)

type Repository interface {
	// Create inserts m unless a row with the same hash exists. It reports
	// whether a row was written.
	Create(ctx context.Context, m *model.Media) (bool, error)
	FindByID(ctx context.Context, id string) (*model.Media, error)
	FindByHash(ctx context.Context, hash string) (*model.Media, error)
}
