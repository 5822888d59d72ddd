package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"PALETTE_STORE", "PALETTE_DIR", "PALETTE_KEY", "REDIS_ADDR", "REDIS_DB",
		"DB_HOST", "SIMILARITY_THRESHOLD", "METRICS_ENABLED",
	} {
		t.Setenv(key, "")
	}

	config, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StoreFile, config.Store)
	assert.Equal(t, ".palettes", config.PaletteDir)
	assert.Equal(t, "color-palette-collection", config.PaletteKey)
	assert.Equal(t, "localhost:6379", config.RedisAddr)
	assert.Equal(t, 0, config.RedisDB)
	assert.Equal(t, "localhost", config.DatabaseHost)
	assert.Equal(t, 20.0, config.SimilarityThreshold)
	assert.False(t, config.MetricsEnabled)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PALETTE_STORE", "redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SIMILARITY_THRESHOLD", "12.5")
	t.Setenv("METRICS_ENABLED", "true")

	config, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StoreRedis, config.Store)
	assert.Equal(t, "cache:6380", config.RedisAddr)
	assert.Equal(t, 3, config.RedisDB)
	assert.Equal(t, 12.5, config.SimilarityThreshold)
	assert.True(t, config.MetricsEnabled)
}

func TestFromEnvThreshold(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"80", 50},
		{"-4", 0},
		{"not a number", 20},
		{"0", 0},
		{"NaN", 20},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("PALETTE_STORE", "")
			t.Setenv("SIMILARITY_THRESHOLD", tt.value)

			config, err := FromEnv()
			require.NoError(t, err)
			assert.Equal(t, tt.want, config.SimilarityThreshold)
		})
	}
}

func TestFromEnvUnknownStore(t *testing.T) {
	t.Setenv("PALETTE_STORE", "dynamo")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "dynamo")
}
