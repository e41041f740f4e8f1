package dto

type ProductFilters struct {
	Status      string
	CategoryIDs []string
	PartnerID   string
	IsFeatured  *bool
	SearchQuery string // sku and translated text
	ExcludeID   string
	SortBy      string // name, created_at, sort
	SortOrder   string // asc, desc
	Locale      string // used for name sorting
	Page        int
	PageSize    int
}

// ListPublishedInput is the public catalog query. Category and Partner accept
// an id or a slug.
type ListPublishedInput struct {
	Query    string
	Category string
	Partner  string
	Featured *bool
	Sort     string // name, -name, created_at, -created_at, sort
	Locale   string
	Page     int
	PageSize int
}
