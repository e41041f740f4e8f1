package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type BaseModel struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StringList is a []string stored as a JSONB array.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = StringList{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("model: unsupported StringList source")
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*s = out
	return nil
}

// Localized is implemented by every *Translation row.
type Localized interface {
	GetLocale() string
}

// PickTranslation returns the translation for locale, else the one for
// fallback, else the first one available.
func PickTranslation[T Localized](ts []T, locale, fallback string) (T, bool) {
	var zero T
	if len(ts) == 0 {
		return zero, false
	}
	for _, t := range ts {
		if t.GetLocale() == locale {
			return t, true
		}
	}
	for _, t := range ts {
		if t.GetLocale() == fallback {
			return t, true
		}
	}
	return ts[0], true
}
