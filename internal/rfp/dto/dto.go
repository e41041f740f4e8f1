package dto

import "github.com/fekuna/kitmed-catalog-service/internal/model"

type RFPFilters struct {
	Status   string
	Search   string // reference, company, email or name
	Page     int
	PageSize int
}

type Step struct {
	Number    int    `json:"number"`
	Name      string `json:"name"`
	Complete  bool   `json:"complete"`
	Reachable bool   `json:"reachable"`
}

// CartView is the draft as returned to the wizard.
type CartView struct {
	*model.RFPCart
	Steps         []Step `json:"steps"`
	TotalQuantity int    `json:"total_quantity"`
}
