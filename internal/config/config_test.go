package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "testdata/missing.toml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "userhub", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Env)
	assert.True(t, cfg.Dev())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
	assert.Equal(t, 120, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, "user.audit.persist", cfg.RabbitMQ.AuditQueue)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "testdata/missing.toml")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MYSQL_DB", "userhub_test")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.App.Env)
	assert.False(t, cfg.Dev())
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 5, cfg.RateLimit.RequestsPerMinute)
	assert.Contains(t, cfg.MySQLDSN(), "/userhub_test?")
}

func TestLoadBadEnvIntFallsBack(t *testing.T) {
	t.Setenv("CONFIG_FILE", "testdata/missing.toml")
	t.Setenv("APP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
}
