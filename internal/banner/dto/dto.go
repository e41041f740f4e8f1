package dto

type BannerFilters struct {
	Position string
	IsActive *bool
	Page     int
	PageSize int
}
