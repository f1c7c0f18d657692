package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Auth.Secret = "test-secret"
	return cfg
}

func TestDefaultConfig_CitiesAndHorizon(t *testing.T) {
	cfg := defaultConfig()

	require.Equal(t, 10, cfg.Weather.Horizon)
	require.Len(t, cfg.Weather.Cities, 3)
	require.InDelta(t, 12.9716, cfg.Weather.Cities["Bengaluru"].Latitude, 1e-9)
	require.InDelta(t, 77.8631, cfg.Weather.Cities["Siddlaghatta"].Longitude, 1e-9)
	require.Equal(t, 450.0, cfg.Model.FallbackPrice)
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	missingSecret := defaultConfig()
	require.Error(t, missingSecret.Validate())

	badHorizon := validConfig()
	badHorizon.Weather.Horizon = 17
	require.Error(t, badHorizon.Validate())

	zeroHorizon := validConfig()
	zeroHorizon.Weather.Horizon = 0
	require.Error(t, zeroHorizon.Validate())

	minioWithoutEndpoint := validConfig()
	minioWithoutEndpoint.Model.Minio.Enabled = true
	minioWithoutEndpoint.Model.Minio.Bucket = "models"
	minioWithoutEndpoint.Model.Minio.Object = "encoders.json"
	require.Error(t, minioWithoutEndpoint.Validate())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
auth:
  secret: from-file
weather:
  horizon: 7
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("WEATHER_HORIZON", "12")
	t.Setenv("AUTH_TOKEN_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, "from-file", cfg.Auth.Secret)
	require.Equal(t, 12, cfg.Weather.Horizon) // env wins over file
	require.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	// Untouched defaults survive a partial file.
	require.Len(t, cfg.Weather.Cities, 3)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
auth:
  secret: s
weather:
  horizon: 99
`), 0o600))

	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}
