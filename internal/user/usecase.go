package user

import (
	"context"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/user/dto"
)

type UseCase interface {
	Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error)
	Me(ctx context.Context, id string) (*model.User, error)

	// The write methods take the acting user's id so an admin can never lock
	// themselves out, and only a super admin can hand out or take away the
	// super admin role.
	CreateUser(ctx context.Context, actorID string, input *dto.CreateUserInput) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context, filters *dto.UserFilters) ([]model.User, int, error)
	UpdateUser(ctx context.Context, actorID string, input *dto.UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, actorID, id string) error
	SetPermissions(ctx context.Context, actorID, id string, perms []model.Permission) (*model.User, error)

	// BootstrapAdmin creates or resets a super admin account. The boolean
	// reports whether a new account was created.
	BootstrapAdmin(ctx context.Context, email, name, password string) (*model.User, bool, error)
}
