package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/dartledger/internal/config"
	"github.com/mauv0809/dartledger/internal/database"
	"github.com/mauv0809/dartledger/internal/league"
)

// The seeder loads a YAML roster into the players table. The roster path is
// the first argument, or ROSTER_FILE when omitted. The database settings are
// the server's.
func main() {
	log.Info("Starting roster seeder...")
	cfg := config.Load()

	path := cfg.Import.RosterFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		log.Fatal("Usage: seeder ROSTER.yaml (or set ROSTER_FILE)")
	}

	roster, err := config.LoadRoster(path)
	if err != nil {
		log.Fatalf("Failed to load roster: %s", err)
	}

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	startTime := time.Now()
	store := league.New(db)
	players := roster.Players()
	if err := store.UpsertPlayers(players); err != nil {
		log.Fatalf("Failed to upsert players: %s", err)
	}

	all, err := store.GetAllPlayers()
	if err != nil {
		log.Fatalf("Failed to list players: %s", err)
	}
	log.Info("Successfully seeded roster.", "teams", len(roster.Teams), "seeded", len(players), "total_players", len(all), "duration", time.Since(startTime))
}
