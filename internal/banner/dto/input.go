package dto

import (
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
)

type CreateBannerInput struct {
	Position     model.BannerPosition      `json:"position" binding:"required,oneof=hero sidebar footer"`
	ImageURL     string                    `json:"image_url" binding:"required"`
	LinkURL      *string                   `json:"link_url"`
	SortOrder    int                       `json:"sort_order"`
	IsActive     *bool                     `json:"is_active"`
	StartsAt     *time.Time                `json:"starts_at"`
	EndsAt       *time.Time                `json:"ends_at"`
	Translations []model.BannerTranslation `json:"translations" binding:"omitempty,dive"`
}

type UpdateBannerInput struct {
	ID           string                    `json:"-"`
	Position     model.BannerPosition      `json:"position" binding:"required,oneof=hero sidebar footer"`
	ImageURL     string                    `json:"image_url" binding:"required"`
	LinkURL      *string                   `json:"link_url"`
	SortOrder    int                       `json:"sort_order"`
	IsActive     bool                      `json:"is_active"`
	StartsAt     *time.Time                `json:"starts_at"`
	EndsAt       *time.Time                `json:"ends_at"`
	Translations []model.BannerTranslation `json:"translations" binding:"omitempty,dive"`
}
