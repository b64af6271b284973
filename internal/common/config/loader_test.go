package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "deal-pulse/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: pulse-test\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "pulse-test", cfg.App.Name)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, SourceBuiltin, cfg.Dataset.Source)
	assert.Equal(t, 700*time.Millisecond, cfg.Session.ThinkingDelayDuration())
	assert.Equal(t, DefaultGreeting, cfg.Session.Greeting)
	assert.Equal(t, 5*time.Minute, cfg.Dataset.CacheTTLDuration())
	assert.Equal(t, "startups", cfg.Dataset.Index)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
}

func TestLoadFromFile_ExplicitValues(t *testing.T) {
	path := writeConfig(t, `
session:
  thinking_delay_ms: 250
  greeting: "hi"
dataset:
  source: file
  path: ./configs/startups.json
logging:
  level: debug
  format: json
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Session.ThinkingDelayDuration())
	assert.Equal(t, "hi", cfg.Session.Greeting)
	assert.Equal(t, SourceFile, cfg.Dataset.Source)
	assert.Equal(t, "./configs/startups.json", cfg.Dataset.Path)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_EnvOverrideAndExpansion(t *testing.T) {
	t.Setenv("DATASET_SOURCE", "postgres")
	t.Setenv("PULSE_PG_HOST", "db.internal")
	t.Setenv("DB_USER", "pulse")

	path := writeConfig(t, `
database:
  postgres:
    host: ${PULSE_PG_HOST}
    database: portfolio
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, SourcePostgres, cfg.Dataset.Source)
	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, "pulse", cfg.Database.Postgres.User)
	assert.Contains(t, cfg.Database.Postgres.GetDSN(), "host=db.internal")
}

func TestLoadFromFile_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"file source without path", "dataset:\n  source: file\n"},
		{"postgres without host", "dataset:\n  source: postgres\n"},
		{"elasticsearch without url", "dataset:\n  source: elasticsearch\n"},
		{"unknown source", "dataset:\n  source: ftp\n"},
		{"cache without redis", "dataset:\n  cache_enabled: true\n"},
		{"negative delay", "session:\n  thinking_delay_ms: -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			std := apperrors.AsStandardError(err)
			assert.Equal(t, apperrors.ErrCodeConfigInvalid, std.Code)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestElasticsearchConfig_GetURL(t *testing.T) {
	assert.Equal(t, "http://a:9200", ElasticsearchConfig{URL: "http://a:9200", Addresses: []string{"http://b:9200"}}.GetURL())
	assert.Equal(t, "http://b:9200", ElasticsearchConfig{Addresses: []string{"http://b:9200"}}.GetURL())
	assert.Empty(t, ElasticsearchConfig{}.GetURL())
}
