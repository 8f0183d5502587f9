package config

import (
	"log"
	"os"
)

const (
	defaultDBPath = "./priceme.db"
	defaultPort   = "8080"
	defaultEnv    = "dev"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env    string
	DBPath string
	Port   string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		Env:    os.Getenv("APP_ENV"),
		DBPath: os.Getenv("DB_PATH"),
		Port:   os.Getenv("PORT"),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if cfg.Env != "dev" && cfg.Env != "prod" {
		log.Printf("warning: unknown APP_ENV %q, treating as prod", cfg.Env)
	}

	return cfg
}

// IsDev reports whether the app runs in local development mode, where
// migrations are applied automatically on startup.
func (c Config) IsDev() bool {
	return c.Env == "dev"
}
