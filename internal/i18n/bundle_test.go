package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLocale(t *testing.T, dir, lang, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, lang+".json"), []byte(content), 0o644))
}

func TestBundleLookup(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "uz", `{"welcome": "Xush kelibsiz", "greeting": "Salom, {name}!"}`)
	writeLocale(t, dir, "ru", `{"welcome": "Добро пожаловать"}`)

	b := LoadBundle(dir, []string{"uz", "ru", "en"})

	assert.Equal(t, "Xush kelibsiz", b.Lookup("uz", "welcome", nil))
	assert.Equal(t, "Добро пожаловать", b.Lookup("ru", "welcome", nil))

	// Placeholder substitution.
	assert.Equal(t, "Salom, Aziz!", b.Lookup("uz", "greeting", map[string]interface{}{"name": "Aziz"}))

	// Unknown key comes back verbatim.
	assert.Equal(t, "no.such.key", b.Lookup("uz", "no.such.key", nil))

	// en.json does not exist: every key is verbatim, never an error.
	assert.Equal(t, "welcome", b.Lookup("en", "welcome", nil))

	// Unknown language is verbatim too.
	assert.Equal(t, "welcome", b.Lookup("fr", "welcome", nil))
}

func TestBundleInvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "uz", `{not json`)

	b := LoadBundle(dir, []string{"uz"})
	assert.Equal(t, "welcome", b.Lookup("uz", "welcome", nil))
}

func TestLocalizer(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "ru", `{"items.count": "Найдено: {count}"}`)

	b := LoadBundle(dir, []string{"uz", "ru"})
	l := NewLocalizer(b, "ru")

	assert.Equal(t, "Найдено: 7", l.T("items.count", map[string]interface{}{"count": "7"}))
	assert.Equal(t, "missing", l.T("missing", nil))
}
