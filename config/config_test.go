package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: "host=localhost user=postgres dbname=maquinasdb"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 10.0, cfg.Server.RateLimitPerSec)
	assert.Equal(t, 5, cfg.Server.RateLimitBurst)
	assert.Equal(t, 30, cfg.Server.CacheTTLSeconds)

	assert.Equal(t, "http://localhost:8001", cfg.Prediction.URL)
	assert.Equal(t, 30*time.Second, cfg.Prediction.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Prediction.HealthTimeout)

	assert.Equal(t, "./data/model.gob", cfg.Model.Path)
	assert.Equal(t, 8001, cfg.Model.Port)
}

func TestLoadExplicitValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  rate_limit_per_sec: 25
  rate_limit_burst: 10
  cache_ttl_seconds: 60
database:
  dsn: "host=db user=gateway dbname=maquinasdb"
  max_open_conns: 20
prediction:
  url: "http://prediction:9001"
  timeout_seconds: 10
  health_timeout_seconds: 2
model:
  path: "/var/lib/prediction/model.gob"
  port: 9001
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 25.0, cfg.Server.RateLimitPerSec)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "http://prediction:9001", cfg.Prediction.URL)
	assert.Equal(t, 10*time.Second, cfg.Prediction.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Prediction.HealthTimeout)
	assert.Equal(t, "/var/lib/prediction/model.gob", cfg.Model.Path)
	assert.Equal(t, 9001, cfg.Model.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
