package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklens/stocklens/core/config"
)

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte(`
store:
  driver: postgres
  dsn: postgres://localhost/wms
server:
  port: 9090
log_level: info
`))
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/wms", cfg.Store.DSN)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "data/wms_database.db", cfg.Store.DSN)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestParse_InvalidDriver(t *testing.T) {
	_, err := config.Parse([]byte(`
store:
  driver: oracle
`))
	assert.Error(t, err)
}

func TestParse_EnvSubstitution(t *testing.T) {
	t.Setenv("WMS_DSN", "file:test.db")

	cfg, err := config.Parse([]byte(`
store:
  driver: sqlite
  dsn: "{{ env.WMS_DSN }}"
`))
	require.NoError(t, err)
	assert.Equal(t, "file:test.db", cfg.Store.DSN)
}

func TestParse_MissingEnvVar(t *testing.T) {
	_, err := config.Parse([]byte(`
store:
  driver: sqlite
  dsn: "{{ env.DEFINITELY_NOT_SET_ANYWHERE }}"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFINITELY_NOT_SET_ANYWHERE")
}

func TestParse_HeuristicsOverride(t *testing.T) {
	cfg, err := config.Parse([]byte(`
store:
  driver: sqlite
heuristics:
  count_keywords: ["how many"]
`))
	require.NoError(t, err)
	require.NotNil(t, cfg.Heuristics)
	assert.Equal(t, []string{"how many"}, cfg.Heuristics.CountKeywords)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load("does/not/exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
}
