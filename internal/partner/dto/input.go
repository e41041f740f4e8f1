package dto

import "github.com/fekuna/kitmed-catalog-service/internal/model"

type CreatePartnerInput struct {
	Slug         string                     `json:"slug" binding:"omitempty,max=200"`
	Name         string                     `json:"name" binding:"required,max=200"`
	WebsiteURL   *string                    `json:"website_url" binding:"omitempty,url"`
	LogoURL      *string                    `json:"logo_url"`
	Country      *string                    `json:"country" binding:"omitempty,max=100"`
	IsFeatured   bool                       `json:"is_featured"`
	IsActive     *bool                      `json:"is_active"`
	SortOrder    int                        `json:"sort_order"`
	Translations []model.PartnerTranslation `json:"translations" binding:"omitempty,dive"`
}

type UpdatePartnerInput struct {
	ID           string                     `json:"-"`
	Slug         string                     `json:"slug" binding:"omitempty,max=200"`
	Name         string                     `json:"name" binding:"required,max=200"`
	WebsiteURL   *string                    `json:"website_url" binding:"omitempty,url"`
	LogoURL      *string                    `json:"logo_url"`
	Country      *string                    `json:"country" binding:"omitempty,max=100"`
	IsFeatured   bool                       `json:"is_featured"`
	IsActive     bool                       `json:"is_active"`
	SortOrder    int                        `json:"sort_order"`
	Translations []model.PartnerTranslation `json:"translations" binding:"omitempty,dive"`
}
