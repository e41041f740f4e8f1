package dto

import (
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
)

type UserFilters struct {
	Role     string
	IsActive *bool
	Search   string
	Page     int
	PageSize int
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}
