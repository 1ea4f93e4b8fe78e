package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("PGSQL_URL", "postgres://localhost/clock")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/clock", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3, cfg.MaxDevicesPerWorker)
	assert.Equal(t, 150.0, cfg.HQGeofenceRadiusMeters)
	assert.Equal(t, "web", cfg.EventSourceFallback)
	assert.Equal(t, "mobile", cfg.DefaultSource)
	assert.Equal(t, "UTC", cfg.DefaultTimezone)
	assert.False(t, cfg.AllowOutsideScheduleDefault)
	assert.Equal(t, "30-M", cfg.ClockRateLimit)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("MAX_DEVICES_PER_WORKER", "5")
	t.Setenv("HQ_GEOFENCE_RADIUS_METERS", "250.5")
	t.Setenv("EVENT_SOURCE_FALLBACK", "WEB")
	t.Setenv("DEFAULT_TIMEZONE", "Europe/Madrid")
	t.Setenv("ALLOW_OUTSIDE_SCHEDULE_DEFAULT", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxDevicesPerWorker)
	assert.Equal(t, 250.5, cfg.HQGeofenceRadiusMeters)
	assert.Equal(t, "web", cfg.EventSourceFallback)
	assert.Equal(t, "Europe/Madrid", cfg.DefaultTimezone)
	assert.True(t, cfg.AllowOutsideScheduleDefault)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	viper.Reset()
	t.Setenv("MAX_DEVICES_PER_WORKER", "0")
	t.Setenv("DEFAULT_TIMEZONE", "Mars/Olympus")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxDevicesPerWorker)
	assert.Equal(t, "UTC", cfg.DefaultTimezone)
}
