package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTranslate(t *testing.T) {
	tr, err := New("fr")
	require.NoError(t, err)

	assert.Equal(t, "Catégorie introuvable", tr.T("fr", "CategoryNotFound", nil))
	assert.Equal(t, "Category not found", tr.T("en", "CategoryNotFound", nil))
	assert.Equal(t, "Complete step 2 before continuing", tr.T("en", "RFPStepLocked", map[string]interface{}{"Step": 2}))
	assert.Equal(t, "NoSuchMessage", tr.T("en", "NoSuchMessage", nil))
}

func TestMatch(t *testing.T) {
	tr, err := New("fr")
	require.NoError(t, err)

	tests := []struct {
		name     string
		explicit string
		header   string
		want     string
	}{
		{name: "explicit wins", explicit: "en", header: "fr-FR", want: "en"},
		{name: "explicit region", explicit: "EN-gb", want: "en"},
		{name: "header english", header: "en-US,en;q=0.9", want: "en"},
		{name: "header french", header: "fr-CA,fr;q=0.8,en;q=0.5", want: "fr"},
		{name: "unsupported falls back", header: "de-DE", want: "fr"},
		{name: "empty", want: "fr"},
		{name: "unsupported explicit ignored", explicit: "es", header: "en", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.explicit, tt.header))
		})
	}
}

func TestLoadOverride(t *testing.T) {
	tr, err := New("en")
	require.NoError(t, err)
	assert.Equal(t, "en", tr.DefaultLocale())

	path := filepath.Join(t.TempDir(), "custom.en.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`RFPCartEmpty: "Nothing selected yet"`), 0o644))
	require.NoError(t, tr.Load(path))

	assert.Equal(t, "Nothing selected yet", tr.T("en", "RFPCartEmpty", nil))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "fr", Normalize("fr_FR", ""))
	assert.Equal(t, "en", Normalize(" EN ", ""))
	assert.Equal(t, "x", Normalize("it", "x"))
}

func TestLocalesShareKeys(t *testing.T) {
	keys := map[string][]string{}
	for _, l := range Supported {
		data, err := localeFS.ReadFile("locales/active." + l + ".yaml")
		require.NoError(t, err)
		var messages map[string]string
		require.NoError(t, yaml.Unmarshal(data, &messages))
		for k := range messages {
			keys[k] = append(keys[k], l)
		}
	}
	for k, locales := range keys {
		assert.Len(t, locales, len(Supported), "message %s only in %v", k, locales)
	}
}

func TestImportRowMessages(t *testing.T) {
	tr, err := New("fr")
	require.NoError(t, err)

	assert.Equal(t, "Unknown category radiologie", tr.T("en", "ImportUnknownCategory", map[string]interface{}{"Ref": "radiologie"}))
	assert.Equal(t, "Le fichier ecg.jpg n'est pas joint", tr.T("fr", "ImportAttachmentMissing", map[string]interface{}{"File": "ecg.jpg"}))
}
