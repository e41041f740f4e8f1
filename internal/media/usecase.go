package media

import (
	"context"

	"github.com/fekuna/kitmed-catalog-service/internal/media/dto"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
)

type UseCase interface {
	// Upload stores the file content once per SHA-256. A second upload of
	// the same bytes returns the first record with Duplicate set.
	Upload(ctx context.Context, input *dto.UploadInput) (*model.Media, error)
	GetMedia(ctx context.Context, id string) (*model.Media, error)
	LookupByHash(ctx context.Context, hash string) (*model.Media, error)
}
