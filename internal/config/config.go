package config

import (
	"fmt"
	"os"
)

// Config holds the application configuration
type Config struct {
	DatabaseURL   string
	Port          string
	JWTSecret     string
	DataDir       string
	CookieSecure  bool
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:          "8080",
		DataDir:       "data",
		AdminUsername: "admin",
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	cfg.DatabaseURL = databaseURL

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	cfg.JWTSecret = jwtSecret

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if username := os.Getenv("ADMIN_USERNAME"); username != "" {
		cfg.AdminUsername = username
	}
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.CookieSecure = os.Getenv("COOKIE_SECURE") == "true"

	return cfg, nil
}
