package league

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/dartledger/internal/match"
	"github.com/mauv0809/dartledger/internal/stats"
)

var (
	// ErrNotFound is returned when a player or match does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateMatch is returned when a transcript with the same digest
	// has already been saved.
	ErrDuplicateMatch = errors.New("match already imported")
	// ErrAlreadyMerged is returned when the stats of an imported match were
	// merged before.
	ErrAlreadyMerged = errors.New("match stats already merged")
)

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// PlayerInfo represents a registered player and the alternative spellings
// transcripts may use for them.
type PlayerInfo struct {
	ID      string   `json:"id" yaml:"id,omitempty"`
	Name    string   `json:"name" yaml:"name"`
	Team    string   `json:"team,omitempty" yaml:"team,omitempty"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// PlayerStats is a leaderboard row.
type PlayerStats struct {
	PlayerID   string       `json:"player_id"`
	PlayerName string       `json:"player_name"`
	Team       string       `json:"team,omitempty"`
	Stats      stats.Record `json:"stats"`
}

// ImportedMatch is a parsed transcript as it was persisted. A multi-match
// transcript is one ImportedMatch holding several matches; Date is the date
// of the first.
type ImportedMatch struct {
	ID          string         `json:"id"`
	SourceName  string         `json:"source_name"`
	Digest      string         `json:"digest"`
	Date        string         `json:"date,omitempty"`
	ImportedAt  time.Time      `json:"imported_at"`
	Legs        int            `json:"legs"`
	Warnings    int            `json:"warnings"`
	StatsMerged bool           `json:"stats_merged"`
	Matches     []*match.Match `json:"matches,omitempty"`
}

// StatsOrder selects the leaderboard ordering.
type StatsOrder string

const (
	OrderByName          StatsOrder = "name"
	OrderByLegsWon       StatsOrder = "legs_won"
	OrderByAverage       StatsOrder = "average"
	OrderByMarksPerRound StatsOrder = "mpr"
)
