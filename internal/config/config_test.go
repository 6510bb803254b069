package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "localhost:8080", cfg.Server.Address())
	require.Equal(t, "http://localhost:4000/api", cfg.Directory.BaseURL)
	require.Equal(t, 10*time.Second, cfg.Directory.Timeout)
	require.Equal(t, "user-console", cfg.JWT.Issuer)
	require.Equal(t, "development", cfg.AppEnv)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DIRECTORY_BASE_URL", "http://directory:4000")
	t.Setenv("DIRECTORY_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, http://localhost:3000")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, "http://directory:4000", cfg.Directory.BaseURL)
	require.Equal(t, 3*time.Second, cfg.Directory.Timeout)
	require.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_ProductionRequiresRealSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_ACCESS_SECRET")

	t.Setenv("JWT_ACCESS_SECRET", "prod-secret")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "production", cfg.AppEnv)
}

func TestGetEnvAsDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SESSION_TIMEOUT", "не длительность")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, cfg.Session.Timeout)
}
