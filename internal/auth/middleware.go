package auth

import (
	"context"
	"strings"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/httpx"
	"github.com/gin-gonic/gin"
)

// UserLoader reloads the account behind a token. FindByID returns nil, nil
// when the account no longer exists.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Authenticate requires a valid Bearer token for an active account and stores
// the caller on both the gin context and the request context. Role and
// permissions come from the stored account, so revocations apply before the
// token expires.
func Authenticate(tm *TokenManager, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			httpx.Error(c, nil, apperror.Unauthorized("MissingToken"))
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			httpx.Error(c, nil, apperror.Unauthorized("MissingToken"))
			return
		}

		claims, err := tm.Parse(strings.TrimSpace(raw))
		if err != nil {
			httpx.Error(c, nil, apperror.Unauthorized("InvalidToken"))
			return
		}

		account, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			httpx.Error(c, nil, apperror.Internal(err))
			return
		}
		if account == nil || !account.IsActive {
			httpx.Error(c, nil, apperror.Unauthorized("InactiveAccount"))
			return
		}
		user := &UserContext{
			UserID:      account.ID,
			Email:       account.Email,
			Role:        account.Role,
			Permissions: account.Permissions,
		}

		c.Set(ginUserKey, user)
		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// RequirePermission allows the request when the caller holds any of perms.
func RequirePermission(perms ...model.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			httpx.Error(c, nil, apperror.Unauthorized("MissingToken"))
			return
		}
		for _, p := range perms {
			if user.Can(p) {
				c.Next()
				return
			}
		}
		httpx.Error(c, nil, apperror.Forbidden("InsufficientPermissions"))
	}
}
