package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DOCQUERY_API_ADDR", "")
	t.Setenv("DOCQUERY_MATCH_LIMIT", "")
	t.Setenv("DOCQUERY_POSTGRES_URL", "")
	cfg := Load()
	assert.Equal(t, ":8080", cfg.APIAddr)
	assert.Equal(t, 3, cfg.MatchLimit)
	assert.Empty(t, cfg.PostgresURL)
	assert.Equal(t, int64(100<<20), cfg.MaxUploadBytes())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DOCQUERY_API_ADDR", ":9090")
	t.Setenv("DOCQUERY_MATCH_LIMIT", "5")
	t.Setenv("DOCQUERY_BATCH_WORKERS", "not-a-number")
	t.Setenv("DOCQUERY_LOG_PRETTY", "true")
	cfg := Load()
	assert.Equal(t, ":9090", cfg.APIAddr)
	assert.Equal(t, 5, cfg.MatchLimit)
	assert.Equal(t, 4, cfg.BatchWorkers)
	assert.True(t, cfg.LogPretty)
}
