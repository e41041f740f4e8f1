package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/auth"
	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/fekuna/kitmed-catalog-service/internal/user"
	"github.com/fekuna/kitmed-catalog-service/internal/user/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound           = apperror.NotFound("UserNotFound")
	ErrEmailTaken         = apperror.Conflict("UserEmailTaken")
	ErrSelfAction         = apperror.Forbidden("UserSelfAction")
	ErrInvalidCredentials = apperror.Unauthorized("InvalidCredentials")
	ErrInactive           = apperror.Forbidden("InactiveAccount")
	ErrWeakPassword       = apperror.Invalid("ValidationFailed").WithFields(map[string]string{"password": "min"})
	ErrInvalidRole        = apperror.Invalid("ValidationFailed").WithFields(map[string]string{"role": "oneof"})
	ErrUnknownPermission  = apperror.Invalid("UserUnknownPermission")
	ErrSuperAdminRequired = apperror.Forbidden("SuperAdminRequired")
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(u *model.User) (string, time.Time, error)
}

type userUseCase struct {
	repo   user.Repository
	tokens TokenIssuer
	logger logger.ZapLogger
	now    func() time.Time
}

func NewUserUseCase(repo user.Repository, tokens TokenIssuer, log logger.ZapLogger) user.UseCase {
	return &userUseCase{
		repo:   repo,
		tokens: tokens,
		logger: log,
		now:    time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error) {
	u, err := uc.repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(u.PasswordHash, input.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInactive
	}

	token, expiresAt, err := uc.tokens.Issue(u)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := uc.now()
	if err := uc.repo.TouchLogin(ctx, u.ID, now); err != nil {
		// login still succeeds without the timestamp
		uc.logger.Warn("failed to record login", zap.String("user_id", u.ID), zap.Error(err))
	} else {
		u.LastLoginAt = &now
	}

	uc.logger.Info("user logged in", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return &dto.LoginResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

func (uc *userUseCase) Me(ctx context.Context, id string) (*model.User, error) {
	u, err := uc.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInactive
	}
	return u, nil
}

// checkPermissions rejects unknown values and returns a sorted, deduplicated copy.
func checkPermissions(perms []model.Permission) ([]model.Permission, error) {
	seen := make(map[model.Permission]bool, len(perms))
	out := make([]model.Permission, 0, len(perms))
	for _, p := range perms {
		if !p.Valid() {
			return nil, ErrUnknownPermission.WithData(map[string]interface{}{"Permission": string(p)})
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// requireSuperAdmin rejects the call unless actorID is a super admin.
func (uc *userUseCase) requireSuperAdmin(ctx context.Context, actorID string) error {
	actor, err := uc.repo.FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil || actor.Role != model.RoleSuperAdmin {
		return ErrSuperAdminRequired
	}
	return nil
}

func (uc *userUseCase) CreateUser(ctx context.Context, actorID string, input *dto.CreateUserInput) (*model.User, error) {
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if input.Role == model.RoleSuperAdmin {
		if err := uc.requireSuperAdmin(ctx, actorID); err != nil {
			return nil, err
		}
	}
	if len(input.Password) < auth.MinPasswordLength {
		return nil, ErrWeakPassword
	}
	perms, err := checkPermissions(input.Permissions)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(input.Email)
	unique, err := uc.repo.IsEmailUnique(ctx, email, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := uc.now()
	u := &model.User{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     isActive,
		Permissions:  perms,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (uc *userUseCase) ListUsers(ctx context.Context, filters *dto.UserFilters) ([]model.User, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *userUseCase) UpdateUser(ctx context.Context, actorID string, input *dto.UpdateUserInput) (*model.User, error) {
	u, err := uc.GetUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if actorID == u.ID && (input.Role != u.Role || !input.IsActive) {
		return nil, ErrSelfAction
	}
	// Only super admins grant the role, revoke it or edit its holders.
	if u.Role == model.RoleSuperAdmin || input.Role == model.RoleSuperAdmin {
		if err := uc.requireSuperAdmin(ctx, actorID); err != nil {
			return nil, err
		}
	}

	email := normalizeEmail(input.Email)
	if email != u.Email {
		unique, err := uc.repo.IsEmailUnique(ctx, email, u.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, ErrEmailTaken
		}
	}

	if input.Password != "" {
		if len(input.Password) < auth.MinPasswordLength {
			return nil, ErrWeakPassword
		}
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		u.PasswordHash = hash
	}

	u.Email = email
	u.Name = strings.TrimSpace(input.Name)
	u.Role = input.Role
	u.IsActive = input.IsActive
	u.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *userUseCase) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return ErrSelfAction
	}
	u, err := uc.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == model.RoleSuperAdmin {
		if err := uc.requireSuperAdmin(ctx, actorID); err != nil {
			return err
		}
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *userUseCase) SetPermissions(ctx context.Context, actorID, id string, perms []model.Permission) (*model.User, error) {
	u, err := uc.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	clean, err := checkPermissions(perms)
	if err != nil {
		return nil, err
	}
	// Non-super admins cannot revoke their own users:manage.
	if actorID == id && u.Can(model.PermUsersManage) && u.Role != model.RoleSuperAdmin && !contains(clean, model.PermUsersManage) {
		return nil, ErrSelfAction
	}

	if err := uc.repo.SetPermissions(ctx, id, clean); err != nil {
		return nil, err
	}
	u.Permissions = clean
	return u, nil
}

func contains(perms []model.Permission, p model.Permission) bool {
	for _, held := range perms {
		if held == p {
			return true
		}
	}
	return false
}

func (uc *userUseCase) BootstrapAdmin(ctx context.Context, email, name, password string) (*model.User, bool, error) {
	if len(password) < auth.MinPasswordLength {
		return nil, false, ErrWeakPassword
	}
	email = normalizeEmail(email)
	if name == "" {
		name = email
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, err
	}

	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		existing.PasswordHash = hash
		existing.Role = model.RoleSuperAdmin
		existing.IsActive = true
		existing.UpdatedAt = uc.now()
		if err := uc.repo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		uc.logger.Info("super admin reset", zap.String("email", email))
		return existing, false, nil
	}

	now := uc.now()
	u := &model.User{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         model.RoleSuperAdmin,
		IsActive:     true,
		Permissions:  []model.Permission{},
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, false, err
	}
	uc.logger.Info("super admin created", zap.String("email", email))
	return u, true, nil
}
