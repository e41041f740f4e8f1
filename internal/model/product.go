package model

type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
	ProductStatusArchived  ProductStatus = "archived"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusPublished, ProductStatusArchived:
		return true
	}
	return false
}

type Product struct {
	BaseModel
	SKU          string               `db:"sku" json:"sku"`
	Slug         string               `db:"slug" json:"slug"`
	CategoryID   *string              `db:"category_id" json:"category_id"`
	PartnerID    *string              `db:"partner_id" json:"partner_id"`
	Status       ProductStatus        `db:"status" json:"status"`
	IsFeatured   bool                 `db:"is_featured" json:"is_featured"`
	SortOrder    int                  `db:"sort_order" json:"sort_order"`
	ImageURLs    StringList           `db:"image_urls" json:"image_urls"`
	DatasheetURL *string              `db:"datasheet_url" json:"datasheet_url"`
	Translations []ProductTranslation `db:"-" json:"translations,omitempty"`

	// Resolved for the request locale.
	Name             string `db:"-" json:"name"`
	ShortDescription string `db:"-" json:"short_description,omitempty"`
	Description      string `db:"-" json:"description,omitempty"`
	Specifications   string `db:"-" json:"specifications,omitempty"`

	Category *Category `db:"-" json:"category,omitempty"`
	Partner  *Partner  `db:"-" json:"partner,omitempty"`
}

type ProductTranslation struct {
	ProductID        string `db:"product_id" json:"-"`
	Locale           string `db:"locale" json:"locale" binding:"required,oneof=fr en"`
	Name             string `db:"name" json:"name" binding:"required,max=300"`
	ShortDescription string `db:"short_description" json:"short_description"`
	Description      string `db:"description" json:"description"`
	Specifications   string `db:"specifications" json:"specifications"`
}

func (t ProductTranslation) GetLocale() string { return t.Locale }

func (p *Product) Localize(locale, fallback string) {
	if t, ok := PickTranslation(p.Translations, locale, fallback); ok {
		p.Name = t.Name
		p.ShortDescription = t.ShortDescription
		p.Description = t.Description
		p.Specifications = t.Specifications
	}
	if p.Name == "" {
		p.Name = p.SKU
	}
	if p.Category != nil {
		p.Category.Localize(locale, fallback)
	}
	if p.Partner != nil {
		p.Partner.Localize(locale, fallback)
	}
}

// ProductDocument is the search index representation of a product.
type ProductDocument struct {
	ID         string            `json:"id"`
	SKU        string            `json:"sku"`
	Slug       string            `json:"slug"`
	Status     string            `json:"status"`
	CategoryID string            `json:"category_id,omitempty"`
	PartnerID  string            `json:"partner_id,omitempty"`
	IsFeatured bool              `json:"is_featured"`
	Names      map[string]string `json:"names"`
	Texts      map[string]string `json:"texts"`
}

func (p *Product) Document() ProductDocument {
	doc := ProductDocument{
		ID:         p.ID,
		SKU:        p.SKU,
		Slug:       p.Slug,
		Status:     string(p.Status),
		IsFeatured: p.IsFeatured,
		Names:      map[string]string{},
		Texts:      map[string]string{},
	}
	if p.CategoryID != nil {
		doc.CategoryID = *p.CategoryID
	}
	if p.PartnerID != nil {
		doc.PartnerID = *p.PartnerID
	}
	for _, t := range p.Translations {
		doc.Names[t.Locale] = t.Name
		doc.Texts[t.Locale] = t.ShortDescription + " " + t.Description + " " + t.Specifications
	}
	return doc
}
