package model

type CategoryKind string

const (
	CategoryKindDiscipline CategoryKind = "discipline"
	CategoryKindEquipment  CategoryKind = "equipment"
)

func (k CategoryKind) Valid() bool {
	return k == CategoryKindDiscipline || k == CategoryKindEquipment
}

type Category struct {
	BaseModel
	ParentID     *string               `db:"parent_id" json:"parent_id"`
	Kind         CategoryKind          `db:"kind" json:"kind"`
	Slug         string                `db:"slug" json:"slug"`
	ImageURL     *string               `db:"image_url" json:"image_url"`
	SortOrder    int                   `db:"sort_order" json:"sort_order"`
	IsActive     bool                  `db:"is_active" json:"is_active"`
	Translations []CategoryTranslation `db:"-" json:"translations,omitempty"`

	// Resolved for the request locale.
	Name        string `db:"-" json:"name"`
	Description string `db:"-" json:"description,omitempty"`

	Children []*Category `db:"-" json:"children,omitempty"`
}

type CategoryTranslation struct {
	CategoryID  string `db:"category_id" json:"-"`
	Locale      string `db:"locale" json:"locale" binding:"required,oneof=fr en"`
	Name        string `db:"name" json:"name" binding:"required,max=200"`
	Description string `db:"description" json:"description"`
}

func (t CategoryTranslation) GetLocale() string { return t.Locale }

// Localize fills Name and Description from the best translation.
func (c *Category) Localize(locale, fallback string) {
	if t, ok := PickTranslation(c.Translations, locale, fallback); ok {
		c.Name = t.Name
		c.Description = t.Description
	}
	if c.Name == "" {
		c.Name = c.Slug
	}
}

// Crumb is one step of a breadcrumb path.
type Crumb struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}
