package dto

type PartnerFilters struct {
	IsActive   *bool
	IsFeatured *bool
	Search     string
	Page       int
	PageSize   int
}
