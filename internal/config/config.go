package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from lookup. DB_NAME is required; everything else
// has a default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	getEnv := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	dbName, ok := lookup("DB_NAME")
	if !ok || dbName == "" {
		return Config{}, fmt.Errorf("required environment variable DB_NAME is not set")
	}

	level, err := log.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	autoRegister, err := strconv.ParseBool(getEnv("AUTO_REGISTER_PLAYERS", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid AUTO_REGISTER_PLAYERS: %w", err)
	}

	workers, err := strconv.Atoi(getEnv("IMPORT_WORKERS", strconv.Itoa(runtime.NumCPU())))
	if err != nil || workers < 1 {
		return Config{}, fmt.Errorf("invalid IMPORT_WORKERS %q", getEnv("IMPORT_WORKERS", ""))
	}

	return Config{
		DBName: dbName,
		Port:   getEnv("PORT", "8080"),
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID: getEnv("GCP_PROJECT", ""),
		LogLevel:  level,
		Import: ImportConfig{
			RosterFile:   getEnv("ROSTER_FILE", ""),
			AutoRegister: autoRegister,
			Workers:      workers,
		},
	}, nil
}
