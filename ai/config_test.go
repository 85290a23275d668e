package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, cfg.EmbeddingHost, cfg.IntentHost)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://localhost:9100"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithIntentModel("gpt-4o-mini"),
		WithRequestTimeout(2*time.Second),
	)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:9100/v1", cfg.IntentHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.IntentModel)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
}

func TestNormalize(t *testing.T) {
	t.Run("adds v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("trailing slash", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingHost("http://localhost:11434/"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("already normalized", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/v1"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.IntentHost)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"empty intent host", func(c *Config) { c.IntentHost = "" }},
		{"empty embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"empty intent model", func(c *Config) { c.IntentModel = "" }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
