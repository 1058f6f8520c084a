package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the core runtime configuration for the service.
// Values are primarily sourced from environment variables, with
// sensible defaults where appropriate. See .env.example.
type Config struct {
	AdminUser     string
	AdminPassword string

	DatabaseURL string

	ListenAddr string

	// GeminiAPIKey authenticates outbound calls to the Gemini API.
	// Required: both the analyst chat and insight generation depend on it.
	GeminiAPIKey string

	// Model is the Gemini model used for the analyst and the SQL
	// generator. Both calls use JSON-schema constrained output.
	Model string

	// SampleLimit is the number of most-recent events handed to the
	// generator as a data preview. Kept small so prompts stay bounded.
	SampleLimit int

	// RetentionDays is how long tracked events are kept before the
	// retention worker deletes them. Zero disables expiry.
	RetentionDays int

	// RetentionSweepInterval is how often the retention worker scans
	// for expired events.
	RetentionSweepInterval time.Duration
}

// Load reads configuration from environment variables and applies defaults.
func Load() *Config {
	cfg := &Config{
		AdminUser:     getenv("APP_ADMIN_USER", "admin"),
		AdminPassword: getenv("APP_ADMIN_PASSWORD", "changeme"),
		DatabaseURL:   os.Getenv("APP_DATABASE_URL"),
		ListenAddr:    getenv("APP_LISTEN_ADDR", ":8080"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:         getenv("AI_MODEL", "gemini-2.0-flash"),
		SampleLimit:   20,
		RetentionDays: 90,

		RetentionSweepInterval: 24 * time.Hour,
	}

	if v := os.Getenv("APP_SAMPLE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SampleLimit = n
		}
	}
	if v := os.Getenv("APP_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RetentionDays = n
		}
	}
	if v := os.Getenv("APP_RETENTION_SWEEP_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RetentionSweepInterval = time.Duration(n) * time.Hour
		}
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
