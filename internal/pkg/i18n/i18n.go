package i18n

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	LocaleFR = "fr"
	LocaleEN = "en"
)

// Supported lists the content locales in fallback order.
var Supported = []string{LocaleFR, LocaleEN}

//go:embed locales/*.yaml
var localeFS embed.FS

type Translator struct {
	bundle        *goi18n.Bundle
	matcher       language.Matcher
	defaultLocale string
}

// New builds a translator preloaded with the embedded message files.
func New(defaultLocale string) (*Translator, error) {
	def := Normalize(defaultLocale, LocaleFR)

	bundle := goi18n.NewBundle(language.Make(def))
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
	}

	tags := []language.Tag{language.Make(def)}
	for _, l := range Supported {
		if l != def {
			tags = append(tags, language.Make(l))
		}
	}

	return &Translator{
		bundle:        bundle,
		matcher:       language.NewMatcher(tags),
		defaultLocale: def,
	}, nil
}

// Load adds or overrides messages from a file on disk, e.g. a deployment
// specific wording file.
func (t *Translator) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = t.bundle.ParseMessageFileBytes(data, filepath.Base(path))
	return err
}

func (t *Translator) DefaultLocale() string {
	return t.defaultLocale
}

// Match picks the best supported locale. An explicit locale wins over the
// Accept-Language header.
func (t *Translator) Match(explicit, acceptLanguage string) string {
	if l := Normalize(explicit, ""); l != "" {
		return l
	}
	if acceptLanguage == "" {
		return t.defaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.defaultLocale
	}
	tag, _, _ := t.matcher.Match(tags...)
	base, _ := tag.Base()
	return Normalize(base.String(), t.defaultLocale)
}

// T localizes messageID. Unknown IDs come back unchanged so a missing
// translation never hides the underlying message.
func (t *Translator) T(locale, messageID string, data map[string]interface{}) string {
	loc := goi18n.NewLocalizer(t.bundle, locale, t.defaultLocale)
	msg, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}

// Normalize maps "fr-FR", "EN" and friends onto a supported locale, or
// returns fallback.
func Normalize(locale, fallback string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(l, "-_"); i > 0 {
		l = l[:i]
	}
	for _, s := range Supported {
		if l == s {
			return s
		}
	}
	return fallback
}
