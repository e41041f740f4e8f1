package dto

import "github.com/fekuna/kitmed-catalog-service/internal/model"

type AddItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1,max=10000"`
	Notes     string `json:"notes" binding:"max=1000"`
	Locale    string `json:"-"`
}

type UpdateItemInput struct {
	ProductID string  `json:"-"`
	Quantity  int     `json:"quantity" binding:"required,min=1,max=10000"`
	Notes     *string `json:"notes" binding:"omitempty,max=1000"`
}

type GoToInput struct {
	Step int `json:"step" binding:"required,min=1,max=4"`
}

type SubmitInput struct {
	AcceptTerms bool   `json:"accept_terms"`
	Locale      string `json:"-"`
}

type UpdateStatusInput struct {
	ID            string          `json:"-"`
	Status        model.RFPStatus `json:"status" binding:"omitempty,oneof=new in_review quoted closed rejected"`
	Note          string          `json:"note" binding:"max=2000"`
	InternalNotes *string         `json:"internal_notes" binding:"omitempty,max=10000"`
	ChangedBy     string          `json:"-"`
}
