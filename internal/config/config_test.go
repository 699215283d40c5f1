package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"uz", "ru", "en"}, splitList("uz,ru,en"))
	assert.Equal(t, []string{"uz", "ru"}, splitList(" UZ , Ru ,, "))
	assert.Nil(t, splitList(""))
}

func TestContainsStr(t *testing.T) {
	langs := []string{"uz", "ru", "en"}
	assert.True(t, containsStr(langs, "ru"))
	assert.False(t, containsStr(langs, "fr"))
	assert.False(t, containsStr(nil, "uz"))
}

func TestGetenvDefault(t *testing.T) {
	t.Setenv("CFG_TEST_KEY", "")
	assert.Equal(t, "fallback", getenvDefault("CFG_TEST_KEY", "fallback"))
	t.Setenv("CFG_TEST_KEY", "set")
	assert.Equal(t, "set", getenvDefault("CFG_TEST_KEY", "fallback"))
}

func TestEnvIntDefault(t *testing.T) {
	t.Setenv("CFG_TEST_INT", "")
	assert.Equal(t, 42, envIntDefault("CFG_TEST_INT", 42))
	t.Setenv("CFG_TEST_INT", "7")
	assert.Equal(t, 7, envIntDefault("CFG_TEST_INT", 42))
}

func TestLoadRateLimitConfigNormalization(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	// TTL is raised to cover at least five refill intervals.
	assert.Equal(t, 5*cfg.RefillInterval, cfg.TTL)
}
