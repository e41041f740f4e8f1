package user

import (
	"context"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/user/dto"
)

type Repository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context, filters *dto.UserFilters) ([]model.User, int, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error

	SetPermissions(ctx context.Context, id string, perms []model.Permission) error
	TouchLogin(ctx context.Context, id string, at time.Time) error
	IsEmailUnique(ctx context.Context, email, excludeID string) (bool, error)
}
