package dto

import "github.com/fekuna/kitmed-catalog-service/internal/model"

type CreateCategoryInput struct {
	ParentID     *string                     `json:"parent_id"`
	Kind         model.CategoryKind          `json:"kind" binding:"required,oneof=discipline equipment"`
	Slug         string                      `json:"slug" binding:"omitempty,max=200"`
	ImageURL     *string                     `json:"image_url"`
	SortOrder    int                         `json:"sort_order"`
	IsActive     *bool                       `json:"is_active"`
	Translations []model.CategoryTranslation `json:"translations" binding:"required,min=1,dive"`
}

type UpdateCategoryInput struct {
	ID           string                      `json:"-"`
	ParentID     *string                     `json:"parent_id"`
	Kind         model.CategoryKind          `json:"kind" binding:"required,oneof=discipline equipment"`
	Slug         string                      `json:"slug" binding:"omitempty,max=200"`
	ImageURL     *string                     `json:"image_url"`
	SortOrder    int                         `json:"sort_order"`
	IsActive     bool                        `json:"is_active"`
	Translations []model.CategoryTranslation `json:"translations" binding:"required,min=1,dive"`
}
