package metrics

import (
	"database/sql"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/charmbracelet/log"
)

// Persisted counter keys.
const (
	KeyTranscriptsImported = "transcripts_imported"
	KeyTranscriptsRejected = "transcripts_rejected"
	KeyDuplicateImports    = "duplicate_imports"
	KeyPlayersRegistered   = "players_registered"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// store handles metric-related database operations.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a new metrics Store.
func New(db *sql.DB) MetricsStore {
	return &store{
		db: db,
	}
}

// Increment upserts a metric key and increments its value by one.
func (s *store) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args, err := sqlBuilder.Insert("metrics").
		Columns("key", "value").
		Values(key, 1).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = value + 1").
		ToSql()
	if err != nil {
		log.Error("Failed to build metric increment", "error", err, "key", key)
		return
	}
	if _, err := s.db.Exec(query, args...); err != nil {
		log.Error("Failed to increment metric", "error", err, "key", key)
		return
	}
	log.Debug("Incremented metric", "key", key)
}

// GetAll returns all metrics from the database.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metrics[key] = value
	}
	return metrics, rows.Err()
}
