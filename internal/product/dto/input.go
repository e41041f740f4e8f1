package dto

import "github.com/fekuna/kitmed-catalog-service/internal/model"

type CreateProductInput struct {
	SKU          string                     `json:"sku" binding:"required,max=100"`
	Slug         string                     `json:"slug" binding:"omitempty,max=200"`
	CategoryID   *string                    `json:"category_id"`
	PartnerID    *string                    `json:"partner_id"`
	Status       model.ProductStatus        `json:"status" binding:"omitempty,oneof=draft published archived"`
	IsFeatured   bool                       `json:"is_featured"`
	SortOrder    int                        `json:"sort_order"`
	ImageURLs    []string                   `json:"image_urls"`
	DatasheetURL *string                    `json:"datasheet_url"`
	Translations []model.ProductTranslation `json:"translations" binding:"required,min=1,dive"`
}

type UpdateProductInput struct {
	ID           string                     `json:"-"`
	SKU          string                     `json:"sku" binding:"required,max=100"`
	Slug         string                     `json:"slug" binding:"omitempty,max=200"`
	CategoryID   *string                    `json:"category_id"`
	PartnerID    *string                    `json:"partner_id"`
	Status       model.ProductStatus        `json:"status" binding:"required,oneof=draft published archived"`
	IsFeatured   bool                       `json:"is_featured"`
	SortOrder    int                        `json:"sort_order"`
	ImageURLs    []string                   `json:"image_urls"`
	DatasheetURL *string                    `json:"datasheet_url"`
	Translations []model.ProductTranslation `json:"translations" binding:"required,min=1,dive"`
}
