package dto

// RowError is a rejected row. Code is a message ID rendered into Message by
// Localize.
type RowError struct {
	Row     int                    `json:"row"`
	Field   string                 `json:"field,omitempty"`
	Code    string                 `json:"code"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Message string                 `json:"message"`
}

// Localize fills Message for each error using t.
func Localize(errs []RowError, t func(messageID string, data map[string]interface{}) string) {
	for i := range errs {
		errs[i].Message = t(errs[i].Code, errs[i].Data)
	}
}

// ValidationReport is the dry-run outcome of a product sheet.
type ValidationReport struct {
	TotalRows         int        `json:"total_rows"`
	ValidRows         int        `json:"valid_rows"`
	InvalidRows       int        `json:"invalid_rows"`
	MissingCategories []string   `json:"missing_categories"`
	MissingPartners   []string   `json:"missing_partners"`
	DuplicateSKUs     []string   `json:"duplicate_skus"`
	Errors            []RowError `json:"errors"`
}

type ImportResult struct {
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors"`
}
