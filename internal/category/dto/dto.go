package dto

type CategoryFilters struct {
	ParentID *string // Nil means ignore, empty string means root categories
	Kind     string
	IsActive *bool
	Search   string
	Page     int
	PageSize int
}
