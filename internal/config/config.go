package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the runtime configuration, supplied via environment variables
// (optionally from a .env file).
type Config struct {
	DBPath        string
	Addr          string
	SessionSecret string
	Env           string
}

// Load reads configuration from the environment. A missing session secret is
// auto-generated, which invalidates existing sessions on restart.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		DBPath:        getEnv("NAJDENO_DB", "najdeno.sqlite3"),
		Addr:          getEnv("NAJDENO_ADDR", ":8080"),
		SessionSecret: getEnv("NAJDENO_SECRET", ""),
		Env:           getEnv("NAJDENO_ENV", "production"),
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = randomSecret()
		log.Warn().Msg("Session secret auto-generated (sessions will be invalidated on restart)")
	}

	return cfg
}

// Development reports whether verbose error pages should be rendered.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatal().Err(err).Msg("Failed to generate session secret")
	}
	return hex.EncodeToString(buf)
}
