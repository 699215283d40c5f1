package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmsiti/institute-api/internal/i18n"
)

func languageSetup(t *testing.T) echo.MiddlewareFunc {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "ru.json"), []byte(`{"greeting":"привет, {name}"}`), 0o644)
	require.NoError(t, err)

	langs := []string{"uz", "ru", "en"}
	neg := i18n.NewNegotiator(langs, "uz")
	bundle := i18n.LoadBundle(dir, langs)
	return Language(neg, bundle)
}

func TestLanguageFromQueryParam(t *testing.T) {
	mw := languageSetup(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?lang=ru", nil)
	req.Header.Set("Accept-Language", "en")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var lang, phrase string
	err := mw(func(c echo.Context) error {
		lang = Lang(c, "uz")
		phrase = Localize(c, "greeting", map[string]any{"name": "Ali"})
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, "ru", lang)
	assert.Equal(t, "привет, Ali", phrase)
	assert.Equal(t, "ru", rec.Header().Get("Content-Language"))
}

func TestLanguageFromHeader(t *testing.T) {
	mw := languageSetup(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,ru;q=0.5")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var lang string
	err := mw(func(c echo.Context) error {
		lang = Lang(c, "uz")
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, "en", lang)
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))
}

func TestLanguageDefault(t *testing.T) {
	mw := languageSetup(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var lang string
	_ = mw(func(c echo.Context) error {
		lang = Lang(c, "xx")
		return c.NoContent(http.StatusOK)
	})(c)

	assert.Equal(t, "uz", lang)
}

func TestLangAndLocalizeWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, "uz", Lang(c, "uz"))
	assert.Equal(t, "greeting", Localize(c, "greeting", nil))
}
