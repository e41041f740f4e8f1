package model

import "time"

type BannerPosition string

const (
	BannerPositionHero    BannerPosition = "hero"
	BannerPositionSidebar BannerPosition = "sidebar"
	BannerPositionFooter  BannerPosition = "footer"
)

func (p BannerPosition) Valid() bool {
	switch p {
	case BannerPositionHero, BannerPositionSidebar, BannerPositionFooter:
		return true
	}
	return false
}

type Banner struct {
	BaseModel
	Position     BannerPosition      `db:"position" json:"position"`
	ImageURL     string              `db:"image_url" json:"image_url"`
	LinkURL      *string             `db:"link_url" json:"link_url"`
	SortOrder    int                 `db:"sort_order" json:"sort_order"`
	IsActive     bool                `db:"is_active" json:"is_active"`
	StartsAt     *time.Time          `db:"starts_at" json:"starts_at"`
	EndsAt       *time.Time          `db:"ends_at" json:"ends_at"`
	Translations []BannerTranslation `db:"-" json:"translations,omitempty"`

	Title    string `db:"-" json:"title,omitempty"`
	Subtitle string `db:"-" json:"subtitle,omitempty"`
	CTALabel string `db:"-" json:"cta_label,omitempty"`
}

type BannerTranslation struct {
	BannerID string `db:"banner_id" json:"-"`
	Locale   string `db:"locale" json:"locale" binding:"required,oneof=fr en"`
	Title    string `db:"title" json:"title"`
	Subtitle string `db:"subtitle" json:"subtitle"`
	CTALabel string `db:"cta_label" json:"cta_label"`
}

func (t BannerTranslation) GetLocale() string { return t.Locale }

func (b *Banner) Localize(locale, fallback string) {
	if t, ok := PickTranslation(b.Translations, locale, fallback); ok {
		b.Title = t.Title
		b.Subtitle = t.Subtitle
		b.CTALabel = t.CTALabel
	}
}

// LiveAt reports whether the banner is active and inside its display window.
func (b *Banner) LiveAt(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartsAt != nil && now.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && !now.Before(*b.EndsAt) {
		return false
	}
	return true
}
