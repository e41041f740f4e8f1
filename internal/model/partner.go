package model

type Partner struct {
	BaseModel
	Slug         string               `db:"slug" json:"slug"`
	Name         string               `db:"name" json:"name"`
	WebsiteURL   *string              `db:"website_url" json:"website_url"`
	LogoURL      *string              `db:"logo_url" json:"logo_url"`
	Country      *string              `db:"country" json:"country"`
	IsFeatured   bool                 `db:"is_featured" json:"is_featured"`
	IsActive     bool                 `db:"is_active" json:"is_active"`
	SortOrder    int                  `db:"sort_order" json:"sort_order"`
	Translations []PartnerTranslation `db:"-" json:"translations,omitempty"`

	Description string `db:"-" json:"description,omitempty"`
}

type PartnerTranslation struct {
	PartnerID   string `db:"partner_id" json:"-"`
	Locale      string `db:"locale" json:"locale" binding:"required,oneof=fr en"`
	Description string `db:"description" json:"description"`
}

func (t PartnerTranslation) GetLocale() string { return t.Locale }

func (p *Partner) Localize(locale, fallback string) {
	if t, ok := PickTranslation(p.Translations, locale, fallback); ok {
		p.Description = t.Description
	}
}
