package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextGet(t *testing.T) {
	txt := Text{Uz: "sarlavha", Ru: "заголовок", En: "title"}

	assert.Equal(t, "sarlavha", txt.Get("uz"))
	assert.Equal(t, "заголовок", txt.Get("ru"))
	assert.Equal(t, "title", txt.Get("en"))
	assert.Equal(t, "", txt.Get("fr"))
}

func TestTextResolve(t *testing.T) {
	order := DefaultLanguages

	// Exact match wins.
	full := Text{Uz: "a", Ru: "b", En: "c"}
	assert.Equal(t, "b", full.Resolve("ru", order))

	// Missing requested language falls back in declared order, skipping the
	// requested language itself.
	partial := Text{Ru: "только русский"}
	assert.Equal(t, "только русский", partial.Resolve("en", order))
	assert.Equal(t, "только русский", partial.Resolve("uz", order))

	// Fallback order is the declared order, not one derived from the active
	// language: for a missing ru value, uz comes before en.
	uzEn := Text{Uz: "uz qiymat", En: "en value"}
	assert.Equal(t, "uz qiymat", uzEn.Resolve("ru", order))

	// All empty resolves to the empty string, never a placeholder.
	assert.Equal(t, "", Text{}.Resolve("uz", order))

	// Unknown codes go straight to fallback.
	assert.Equal(t, "uz qiymat", uzEn.Resolve("fr", order))
}

func TestTextMap(t *testing.T) {
	txt := Text{Uz: "a", En: "c"}
	m := txt.Map(DefaultLanguages)

	assert.Equal(t, map[string]string{"uz": "a", "ru": "", "en": "c"}, m)
}

func TestTextValidate(t *testing.T) {
	complete := Text{Uz: "a", Ru: "b", En: "c"}
	require.NoError(t, complete.Validate("title", DefaultLanguages))

	missing := Text{Uz: "a", En: "c"}
	err := missing.Validate("title", DefaultLanguages)
	require.ErrorIs(t, err, ErrIncompleteLocalization)
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "ru")

	// Whitespace-only values do not count.
	padded := Text{Uz: "a", Ru: "   ", En: "c"}
	assert.ErrorIs(t, padded.Validate("title", DefaultLanguages), ErrIncompleteLocalization)

	// A subset requirement passes when those languages are present.
	assert.NoError(t, missing.Validate("title", []string{"uz", "en"}))
}

func TestValidateAll(t *testing.T) {
	fields := map[string]Text{
		"title":   {Uz: "a", Ru: "b", En: "c"},
		"content": {Uz: "a", Ru: "b", En: "c"},
	}
	require.NoError(t, ValidateAll(DefaultLanguages, fields))

	fields["content"] = Text{Uz: "a"}
	err := ValidateAll(DefaultLanguages, fields)
	require.ErrorIs(t, err, ErrIncompleteLocalization)
	assert.Contains(t, err.Error(), "content")
}
