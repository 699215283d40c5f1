// Package i18n implements request language negotiation and localized field
// resolution for multilingual content records.  Every content table stores
// one column per supported language (title_uz, title_ru, title_en, ...);
// this package owns the rules for picking which of those values a reader
// sees and for validating that writers supplied all required languages.
package i18n

import (
	"errors"
	"fmt"
	"strings"
)

// Language codes used by the content schema.  The set of languages a given
// deployment negotiates is configuration, but the column layout of the
// database is fixed to these three, mirroring the *_uz/*_ru/*_en columns.
const (
	LangUz = "uz"
	LangRu = "ru"
	LangEn = "en"
)

// DefaultLanguages is the canonical supported set in its fixed fallback
// order.  Fallback deliberately walks this declared order, not an order
// derived from the active language.
var DefaultLanguages = []string{LangUz, LangRu, LangEn}

// ErrIncompleteLocalization is returned when a multilingual payload is
// missing a non-empty value for a required language.  Handlers surface it
// as a client error; no partial create or update happens.
var ErrIncompleteLocalization = errors.New("incomplete localization")

// Text holds one value of a localized field per supported language.  It maps
// onto a trio of database columns sharing a prefix.  Accessors go through a
// fixed table rather than runtime name concatenation so a typo in a language
// code cannot silently read a missing field.
type Text struct {
	Uz string `json:"uz"`
	Ru string `json:"ru"`
	En string `json:"en"`
}

// accessor returns the raw value for a language code, with ok=false for a
// code outside the schema.  This is the per-entity accessor table: one entry
// per column variant, checked at compile time.
func (t Text) accessor(lang string) (string, bool) {
	switch lang {
	case LangUz:
		return t.Uz, true
	case LangRu:
		return t.Ru, true
	case LangEn:
		return t.En, true
	}
	return "", false
}

// Get returns the raw value for lang without any fallback.  Unknown codes
// yield an empty string.
func (t Text) Get(lang string) string {
	v, _ := t.accessor(lang)
	return v
}

// Resolve returns the value for lang when it is non-empty, otherwise the
// first non-empty value walking order (skipping lang itself), otherwise "".
// It never returns a language code or field name as a placeholder.
func (t Text) Resolve(lang string, order []string) string {
	if v, ok := t.accessor(lang); ok && v != "" {
		return v
	}
	for _, fb := range order {
		if fb == lang {
			continue
		}
		if v, ok := t.accessor(fb); ok && v != "" {
			return v
		}
	}
	return ""
}

// Map returns every configured language's raw value keyed by code, with no
// fallback applied.  Editing UIs use this to show each translation slot
// as stored, including empty ones.
func (t Text) Map(order []string) map[string]string {
	m := make(map[string]string, len(order))
	for _, lang := range order {
		m[lang] = t.Get(lang)
	}
	return m
}

// Validate checks that every language in required has a non-empty,
// non-whitespace value.  field names the payload field in the error detail
// so clients can tell which translation is missing.
func (t Text) Validate(field string, required []string) error {
	for _, lang := range required {
		v, ok := t.accessor(lang)
		if !ok || strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s missing %s value", ErrIncompleteLocalization, field, lang)
		}
	}
	return nil
}

// ValidateAll runs Validate over several named fields and stops at the first
// incomplete one.  Create and update handlers call this before touching the
// database so a rejected payload leaves no partial row behind.
func ValidateAll(required []string, fields map[string]Text) error {
	for name, t := range fields {
		if err := t.Validate(name, required); err != nil {
			return err
		}
	}
	return nil
}
