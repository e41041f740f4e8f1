package importer

import (
	"context"

	"github.com/fekuna/kitmed-catalog-service/internal/importer/dto"
)

type UseCase interface {
	// Validate checks every row without writing anything.
	Validate(ctx context.Context, input *dto.ImportInput) (*dto.ValidationReport, error)
	// Import upserts the valid rows by SKU. Invalid rows are skipped and
	// reported.
	Import(ctx context.Context, input *dto.ImportInput) (*dto.ImportResult, error)
}
