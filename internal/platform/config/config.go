package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	JWTIssuer      string

	// Clock processor limits
	MaxDevicesPerWorker         int     `mapstructure:"MAX_DEVICES_PER_WORKER"`
	HQGeofenceRadiusMeters      float64 `mapstructure:"HQ_GEOFENCE_RADIUS_METERS"`
	EventSourceFallback         string  `mapstructure:"EVENT_SOURCE_FALLBACK"`
	DefaultSource               string  `mapstructure:"DEFAULT_SOURCE"`
	DefaultTimezone             string  `mapstructure:"DEFAULT_TIMEZONE"`
	AllowOutsideScheduleDefault bool    `mapstructure:"ALLOW_OUTSIDE_SCHEDULE_DEFAULT"`

	// Edge
	ClockRateLimit     string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "time-clock-app")
	viper.SetDefault("MAX_DEVICES_PER_WORKER", 3)
	viper.SetDefault("HQ_GEOFENCE_RADIUS_METERS", 150)
	viper.SetDefault("EVENT_SOURCE_FALLBACK", "web")
	viper.SetDefault("DEFAULT_SOURCE", "mobile")
	viper.SetDefault("DEFAULT_TIMEZONE", "UTC")
	viper.SetDefault("ALLOW_OUTSIDE_SCHEDULE_DEFAULT", false)
	viper.SetDefault("CLOCK_RATE_LIMIT", "30-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("POSTHOG_API_KEY", "")

	// This allows overriding defaults with .env file values, which can then be overridden by actual environment variables.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	// Load JWT Secret
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "time-clock-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.MaxDevicesPerWorker = viper.GetInt("MAX_DEVICES_PER_WORKER")
	if cfg.MaxDevicesPerWorker <= 0 {
		log.Printf("Warning: invalid MAX_DEVICES_PER_WORKER (%d). Defaulting to 3.\n", cfg.MaxDevicesPerWorker)
		cfg.MaxDevicesPerWorker = 3
	}

	cfg.HQGeofenceRadiusMeters = viper.GetFloat64("HQ_GEOFENCE_RADIUS_METERS")
	if cfg.HQGeofenceRadiusMeters <= 0 {
		log.Printf("Warning: invalid HQ_GEOFENCE_RADIUS_METERS (%v). Defaulting to 150.\n", cfg.HQGeofenceRadiusMeters)
		cfg.HQGeofenceRadiusMeters = 150
	}

	cfg.DefaultTimezone = viper.GetString("DEFAULT_TIMEZONE")
	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		log.Printf("Warning: unknown DEFAULT_TIMEZONE ('%s'). Defaulting to UTC.\n", cfg.DefaultTimezone)
		cfg.DefaultTimezone = "UTC"
	}

	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.EventSourceFallback = strings.ToLower(viper.GetString("EVENT_SOURCE_FALLBACK"))
	cfg.DefaultSource = strings.ToLower(viper.GetString("DEFAULT_SOURCE"))
	cfg.AllowOutsideScheduleDefault = viper.GetBool("ALLOW_OUTSIDE_SCHEDULE_DEFAULT")
	cfg.ClockRateLimit = viper.GetString("CLOCK_RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
