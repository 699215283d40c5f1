package i18n

import (
	"sort"
	"strconv"
	"strings"
)

// Negotiator selects the active language for a request from an explicit
// override, an Accept-Language style header, or the configured default.
// It holds only the static language set and is safe for concurrent use.
type Negotiator struct {
	supported map[string]bool
	order     []string
	def       string
}

// NewNegotiator builds a Negotiator over the supported codes (in their fixed
// fallback order) with def as the default.  Codes are assumed lowercase.
func NewNegotiator(supported []string, def string) *Negotiator {
	set := make(map[string]bool, len(supported))
	for _, l := range supported {
		set[l] = true
	}
	return &Negotiator{supported: set, order: supported, def: def}
}

// Supported reports whether lang is a configured language code.
func (n *Negotiator) Supported(lang string) bool { return n.supported[lang] }

// Order returns the configured language list in fallback order.
func (n *Negotiator) Order() []string { return n.order }

// Default returns the configured default language.
func (n *Negotiator) Default() string { return n.def }

// Negotiate picks the active language.  Priority:
//  1. override (a ?lang= query value) when it is a supported code;
//  2. the highest-weight supported entry of the Accept-Language header,
//     earliest listed winning ties;
//  3. the configured default.
func (n *Negotiator) Negotiate(override, acceptLanguage string) string {
	if override != "" && n.supported[override] {
		return override
	}
	if lang, ok := n.fromHeader(acceptLanguage); ok {
		return lang
	}
	return n.def
}

// headerEntry is one parsed Accept-Language element retaining its original
// position so sorting by weight can stay stable.
type headerEntry struct {
	lang   string
	weight float64
	pos    int
}

// fromHeader parses a comma-separated list of "<tag>[;q=<weight>]" entries.
// Tags are trimmed, lowercased and reduced to their primary subtag (en-US
// becomes en).  A missing or unparsable q defaults to 1.0.  Entries whose
// primary subtag is not supported are discarded before weights are compared.
func (n *Negotiator) fromHeader(header string) (string, bool) {
	var entries []headerEntry
	for i, part := range strings.Split(header, ",") {
		lang := part
		weight := 1.0
		if semi := strings.Index(part, ";"); semi >= 0 {
			lang = part[:semi]
			weight = parseQuality(part[semi+1:])
		}
		lang = strings.ToLower(strings.TrimSpace(lang))
		if dash := strings.Index(lang, "-"); dash >= 0 {
			lang = lang[:dash]
		}
		if !n.supported[lang] {
			continue
		}
		entries = append(entries, headerEntry{lang: lang, weight: weight, pos: i})
	}
	if len(entries) == 0 {
		return "", false
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].weight > entries[b].weight
	})
	return entries[0].lang, true
}

// parseQuality extracts the weight from a ";q=0.8" parameter string,
// returning 1.0 when the parameter is absent or malformed.
func parseQuality(params string) float64 {
	params = strings.TrimSpace(params)
	eq := strings.Index(params, "=")
	if eq < 0 {
		return 1.0
	}
	q, err := strconv.ParseFloat(strings.TrimSpace(params[eq+1:]), 64)
	if err != nil {
		return 1.0
	}
	return q
}
