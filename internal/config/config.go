package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ListenAddr   string
	DatabasePath string
	JWTSecret    string
	CORSOrigin   string
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:   ":" + getEnv("PORT", "4000"),
		DatabasePath: getEnv("DATABASE_PATH", "./taskboard.db"),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret"),
		CORSOrigin:   getEnv("CORS_ORIGIN", "*"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
