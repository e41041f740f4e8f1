package auth

import (
	"context"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/gin-gonic/gin"
)

// UserContext is the authenticated caller carried through a request.
type UserContext struct {
	UserID      string
	Email       string
	Role        model.Role
	Permissions []model.Permission
}

func (u *UserContext) Can(p model.Permission) bool {
	if u.Role == model.RoleSuperAdmin {
		return true
	}
	for _, held := range u.Permissions {
		if held == p {
			return true
		}
	}
	return false
}

type ctxKey struct{}

const ginUserKey = "auth_user"

func WithUser(ctx context.Context, u *UserContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the caller stored by Authenticate, or nil.
func FromContext(ctx context.Context) *UserContext {
	if u, ok := ctx.Value(ctxKey{}).(*UserContext); ok {
		return u
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if u := FromContext(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// CurrentUser returns the caller set on a gin context by Authenticate.
func CurrentUser(c *gin.Context) *UserContext {
	if v, ok := c.Get(ginUserKey); ok {
		if u, ok := v.(*UserContext); ok {
			return u
		}
	}
	return nil
}
