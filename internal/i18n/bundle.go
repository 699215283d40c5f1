package i18n

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/valyala/fasttemplate"
)

// Bundle is the static phrase table: one flat key-to-template map per
// language, loaded once at startup and never mutated afterwards, so
// concurrent readers need no synchronization.
type Bundle struct {
	tables map[string]map[string]string
}

// LoadBundle reads <dir>/<lang>.json for every language in langs.  A file
// that is missing or fails to parse yields an empty table for that language
// rather than an error: a deployment without translations still serves keys
// verbatim.
func LoadBundle(dir string, langs []string) *Bundle {
	b := &Bundle{tables: make(map[string]map[string]string, len(langs))}
	for _, lang := range langs {
		table := map[string]string{}
		if data, err := os.ReadFile(filepath.Join(dir, lang+".json")); err == nil {
			if err := json.Unmarshal(data, &table); err != nil {
				table = map[string]string{}
			}
		}
		b.tables[lang] = table
	}
	return b
}

// Lookup returns the phrase for key in lang with {name} placeholders
// substituted from args.  An unknown language or key returns the key itself
// verbatim; it never fails.
func (b *Bundle) Lookup(lang, key string, args map[string]interface{}) string {
	table, ok := b.tables[lang]
	if !ok {
		return key
	}
	tmpl, ok := table[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fasttemplate.ExecuteStringStd(tmpl, "{", "}", args)
}

// Localizer binds a Bundle to one request's active language so handlers can
// translate without carrying the language around.
type Localizer struct {
	bundle *Bundle
	lang   string
}

// NewLocalizer returns a Localizer for lang backed by bundle.
func NewLocalizer(bundle *Bundle, lang string) *Localizer {
	return &Localizer{bundle: bundle, lang: lang}
}

// T translates key in the bound language.
func (l *Localizer) T(key string, args map[string]interface{}) string {
	return l.bundle.Lookup(l.lang, key, args)
}
