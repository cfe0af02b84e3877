package config

import "github.com/charmbracelet/log"

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	Turso     TursoConfig
	ProjectID string
	LogLevel  log.Level
	Import    ImportConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type ImportConfig struct {
	// RosterFile is an optional YAML roster seeded into the player directory at startup.
	RosterFile string
	// AutoRegister registers transcript names that match no known player.
	AutoRegister bool
	// Workers bounds the parallel parsers of a batch import.
	Workers int
}
