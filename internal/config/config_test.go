package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.AppHost)
	assert.Equal(t, "8086", cfg.HTTPPort)
	assert.Equal(t, "mesa_ayuda", cfg.DB.Database)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "p@ss word")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Contains(t, cfg.DSN(), "host=db.internal")
	// DatabaseURL must escape the password for URL use.
	assert.Contains(t, cfg.DatabaseURL(), "p%40ss+word@db.internal")
}

func TestValidateProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	// Default JWT secret is refused in production.
	assert.Error(t, cfg.Validate())

	t.Setenv("JWT_SECRET", "long-random-value")
	cfg, err = Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}
