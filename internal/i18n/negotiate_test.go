package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestNegotiator() *Negotiator {
	return NewNegotiator([]string{LangUz, LangRu, LangEn}, LangUz)
}

func TestNegotiateOverrideWins(t *testing.T) {
	n := newTestNegotiator()

	// A supported override beats any header.
	assert.Equal(t, "ru", n.Negotiate("ru", "en;q=1.0"))

	// An unsupported override is ignored and the header takes over.
	assert.Equal(t, "en", n.Negotiate("fr", "en"))

	// Unsupported override and empty header fall through to the default.
	assert.Equal(t, "uz", n.Negotiate("de", ""))
}

func TestNegotiateHeaderWeights(t *testing.T) {
	n := newTestNegotiator()

	// xx has the top weight but is unsupported; ru beats fr on weight.
	assert.Equal(t, "ru", n.Negotiate("", "fr;q=0.5, ru;q=0.9, xx;q=1.0"))

	// Entries without q default to weight 1.0.
	assert.Equal(t, "en", n.Negotiate("", "en, ru;q=0.9"))

	// Equal weights: the earliest listed entry wins.
	assert.Equal(t, "ru", n.Negotiate("", "ru;q=0.8, en;q=0.8"))
}

func TestNegotiateHeaderPrimarySubtag(t *testing.T) {
	n := newTestNegotiator()

	assert.Equal(t, "en", n.Negotiate("", "en-US,en;q=0.9"))
	assert.Equal(t, "ru", n.Negotiate("", "RU-ru"))
}

func TestNegotiateHeaderMalformed(t *testing.T) {
	n := newTestNegotiator()

	// A malformed q is treated as 1.0, not an error.
	assert.Equal(t, "en", n.Negotiate("", "en;q=banana, ru;q=0.9"))

	// Garbage entries are discarded; nothing supported means the default.
	assert.Equal(t, "uz", n.Negotiate("", "zz;;q=, , *"))
	assert.Equal(t, "uz", n.Negotiate("", ""))
}

func TestNegotiatorAccessors(t *testing.T) {
	n := newTestNegotiator()

	assert.True(t, n.Supported("uz"))
	assert.False(t, n.Supported("fr"))
	assert.Equal(t, []string{"uz", "ru", "en"}, n.Order())
	assert.Equal(t, "uz", n.Default())
}
