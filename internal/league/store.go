package league

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/dartledger/internal/stats"
)

// New creates a new league Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// AddPlayer registers a single player and returns its ID. An empty playerID
// reuses the ID of an existing player with the same name, or mints a new one.
func (s *store) AddPlayer(playerID, name, team string, aliases ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin player transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := upsertPlayer(tx, PlayerInfo{ID: playerID, Name: name, Team: team, Aliases: aliases})
	if err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit player: %w", err)
	}
	log.Info("Registered player", "playerID", id, "name", name, "aliases", len(aliases))
	return id, nil
}

// UpsertPlayers registers a roster in one transaction.
func (s *store) UpsertPlayers(players []PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin player transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range players {
		if _, err := upsertPlayer(tx, p); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit players: %w", err)
	}
	log.Info("Upserted players", "count", len(players))
	return nil
}

func upsertPlayer(tx *sql.Tx, p PlayerInfo) (string, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return "", errors.New("player name must not be empty")
	}

	id := p.ID
	if id == "" {
		err := tx.QueryRow("SELECT id FROM players WHERE name = ?", name).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			id = uuid.NewString()
		case err != nil:
			return "", fmt.Errorf("failed to look up player %q: %w", name, err)
		}
	}

	query, args, err := sqlBuilder.Insert("players").
		Columns("id", "name", "team").
		Values(id, name, p.Team).
		Suffix("ON CONFLICT(id) DO UPDATE SET name = excluded.name, team = COALESCE(NULLIF(excluded.team, ''), team)").
		ToSql()
	if err != nil {
		return "", err
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return "", fmt.Errorf("failed to upsert player %q: %w", name, err)
	}

	for _, alias := range p.Aliases {
		alias = strings.TrimSpace(alias)
		if alias == "" || strings.EqualFold(alias, name) {
			continue
		}
		query, args, err := sqlBuilder.Insert("player_aliases").
			Columns("alias", "player_id").
			Values(alias, id).
			Suffix("ON CONFLICT(alias) DO UPDATE SET player_id = excluded.player_id").
			ToSql()
		if err != nil {
			return "", err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return "", fmt.Errorf("failed to upsert alias %q: %w", alias, err)
		}
	}
	return id, nil
}

// GetAllPlayers returns every registered player with their aliases, ordered by name.
func (s *store) GetAllPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, team FROM players ORDER BY name")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	players := []PlayerInfo{}
	index := make(map[string]int)
	for rows.Next() {
		var p PlayerInfo
		if err := rows.Scan(&p.ID, &p.Name, &p.Team); err != nil {
			return nil, err
		}
		index[p.ID] = len(players)
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	aliases, err := s.db.Query("SELECT alias, player_id FROM player_aliases ORDER BY alias")
	if err != nil {
		return nil, err
	}
	defer aliases.Close()
	for aliases.Next() {
		var alias, playerID string
		if err := aliases.Scan(&alias, &playerID); err != nil {
			return nil, err
		}
		if i, ok := index[playerID]; ok {
			players[i].Aliases = append(players[i].Aliases, alias)
		}
	}
	return players, aliases.Err()
}

// KnownNames returns every registered name and alias.
func (s *store) KnownNames() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT name FROM players UNION SELECT alias FROM player_aliases")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ResolvePlayer maps a transcript name to a registered player, matching the
// canonical name first and aliases second, case-insensitively.
func (s *store) ResolvePlayer(name string) (*PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	query, args, err := sqlBuilder.Select("p.id", "p.name", "p.team").
		From("players p").
		Where(squirrel.Or{
			squirrel.Eq{"p.name": name},
			squirrel.Expr("p.id IN (SELECT player_id FROM player_aliases WHERE alias = ?)", name),
		}).
		OrderByClause("p.name = ? DESC", name).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	var p PlayerInfo
	err = s.db.QueryRow(query, args...).Scan(&p.ID, &p.Name, &p.Team)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &p, nil
}

// MergePlayerStats folds per-import records, keyed by player ID, into the
// stored snapshot. Each prior record is read, merged and written back inside
// one transaction under the write lock. A non-empty matchID is marked merged
// in the same transaction; merging it again fails with ErrAlreadyMerged and
// an unknown matchID with ErrNotFound, both without touching any stats.
func (s *store) MergePlayerStats(matchID string, records map[string]stats.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin stats transaction: %w", err)
	}
	defer tx.Rollback()

	if matchID != "" {
		if err := markMerged(tx, matchID); err != nil {
			return err
		}
	}

	columns := append([]string{"player_id"}, statsColumns...)
	for _, playerID := range slices.Sorted(maps.Keys(records)) {
		prior, err := loadStats(tx, playerID)
		if err != nil {
			return err
		}
		merged := stats.Merge(prior, records[playerID])

		query, args, err := sqlBuilder.Insert("player_stats").
			Columns(columns...).
			Values(append([]any{playerID}, statsValues(merged)...)...).
			Suffix(upsertSuffix("player_id", statsColumns)).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to write stats for player %s: %w", playerID, err)
		}
		log.Debug("Merged player stats", "playerID", playerID, "legs", merged.LegsPlayed())
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player stats: %w", err)
	}
	log.Info("Merged player stats", "players", len(records), "matchID", matchID)
	return nil
}

func markMerged(tx *sql.Tx, matchID string) error {
	query, args, err := sqlBuilder.Update("matches").
		Set("stats_merged", 1).
		Where(squirrel.Eq{"id": matchID, "stats_merged": 0}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := tx.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark match %s merged: %w", matchID, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	var exists bool
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM matches WHERE id = ?)", matchID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("match %s: %w", matchID, ErrAlreadyMerged)
	}
	return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
}

func loadStats(tx *sql.Tx, playerID string) (stats.Record, error) {
	var r stats.Record
	query, args, err := sqlBuilder.Select(statsColumns...).
		From("player_stats").
		Where(squirrel.Eq{"player_id": playerID}).
		ToSql()
	if err != nil {
		return r, err
	}
	err = tx.QueryRow(query, args...).Scan(statsDest(&r)...)
	if errors.Is(err, sql.ErrNoRows) {
		return stats.Record{}, nil
	}
	if err != nil {
		return r, fmt.Errorf("failed to read stats for player %s: %w", playerID, err)
	}
	return r, nil
}

// GetPlayerStats returns the leaderboard of players with recorded stats.
func (s *store) GetPlayerStats(order StatsOrder) ([]PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args, err := sqlBuilder.Select(append([]string{"p.id", "p.name", "p.team"}, statsSelect("ps", false)...)...).
		From("player_stats ps").
		Join("players p ON ps.player_id = p.id").
		OrderBy(orderClauses(order)...).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []PlayerStats{}
	for rows.Next() {
		var ps PlayerStats
		dest := append([]any{&ps.PlayerID, &ps.PlayerName, &ps.Team}, statsDest(&ps.Stats)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		ps.Stats.Player = ps.PlayerName
		out = append(out, ps)
	}
	return out, rows.Err()
}

// GetPlayerStatsByName retrieves the statistics for a single player by name
// or alias. It performs a case-insensitive, fuzzy search (e.g., "tony" will
// match "Tony M"), preferring an exact match.
func (s *store) GetPlayerStatsByName(playerName string) (*PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + strings.TrimSpace(playerName) + "%"
	query, args, err := sqlBuilder.Select(append([]string{"p.id", "p.name", "p.team"}, statsSelect("ps", true)...)...).
		From("players p").
		LeftJoin("player_stats ps ON p.id = ps.player_id").
		Where(squirrel.Or{
			squirrel.Like{"p.name": pattern},
			squirrel.Expr("p.id IN (SELECT player_id FROM player_aliases WHERE alias LIKE ?)", pattern),
		}).
		OrderByClause("p.name = ? DESC", strings.TrimSpace(playerName)).
		OrderBy("p.name").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ps PlayerStats
	dest := append([]any{&ps.PlayerID, &ps.PlayerName, &ps.Team}, statsDest(&ps.Stats)...)
	err = s.db.QueryRow(query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("No stats found for player matching pattern", "pattern", pattern)
		return nil, fmt.Errorf("player matching '%s': %w", playerName, ErrNotFound)
	}
	if err != nil {
		log.Error("Failed to query player stats by name", "error", err, "pattern", pattern)
		return nil, fmt.Errorf("database error: %w", err)
	}
	ps.Stats.Player = ps.PlayerName

	log.Debug("Found player stats by name", "player", ps.PlayerName)
	return &ps, nil
}

// SaveMatch persists an imported match. A missing ID is generated and an
// unset ImportedAt defaults to now. Saving a digest twice fails with
// ErrDuplicateMatch.
func (s *store) SaveMatch(m *ImportedMatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.ImportedAt.IsZero() {
		m.ImportedAt = time.Now().UTC()
	}
	matchJSON, err := json.Marshal(m.Matches)
	if err != nil {
		return fmt.Errorf("failed to encode match: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin match transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM matches WHERE digest = ?)", m.Digest).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("digest %s: %w", m.Digest, ErrDuplicateMatch)
	}

	query, args, err := sqlBuilder.Insert("matches").
		Columns("id", "source_name", "digest", "match_date", "imported_at", "legs", "warnings", "match_json").
		Values(m.ID, m.SourceName, m.Digest, m.Date, m.ImportedAt.Unix(), m.Legs, m.Warnings, string(matchJSON)).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert match %s: %w", m.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match: %w", err)
	}
	log.Info("Saved imported match", "matchID", m.ID, "source", m.SourceName, "legs", m.Legs)
	return nil
}

// HasDigest reports whether a transcript with this digest was already imported.
func (s *store) HasDigest(digest string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM matches WHERE digest = ?)", digest).Scan(&exists)
	return exists, err
}

var matchSummaryColumns = []string{"id", "source_name", "digest", "match_date", "imported_at", "legs", "warnings", "stats_merged"}

// GetMatch returns an imported match including its parsed structure.
func (s *store) GetMatch(matchID string) (*ImportedMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args, err := sqlBuilder.Select(append(matchSummaryColumns, "match_json")...).
		From("matches").
		Where(squirrel.Eq{"id": matchID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		m          ImportedMatch
		importedAt int64
		matchJSON  string
	)
	err = s.db.QueryRow(query, args...).Scan(&m.ID, &m.SourceName, &m.Digest, &m.Date, &importedAt, &m.Legs, &m.Warnings, &m.StatsMerged, &matchJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	m.ImportedAt = time.Unix(importedAt, 0).UTC()
	if err := json.Unmarshal([]byte(matchJSON), &m.Matches); err != nil {
		log.Error("Failed to unmarshal match_json", "error", err, "matchID", m.ID)
		return nil, fmt.Errorf("failed to decode match %s: %w", m.ID, err)
	}
	return &m, nil
}

// GetAllMatches lists imported matches, newest first, without their parsed structure.
func (s *store) GetAllMatches() ([]ImportedMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args, err := sqlBuilder.Select(matchSummaryColumns...).
		From("matches").
		OrderBy("imported_at DESC", "source_name").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query all matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	matches := []ImportedMatch{}
	for rows.Next() {
		var (
			m          ImportedMatch
			importedAt int64
		)
		if err := rows.Scan(&m.ID, &m.SourceName, &m.Digest, &m.Date, &importedAt, &m.Legs, &m.Warnings, &m.StatsMerged); err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		m.ImportedAt = time.Unix(importedAt, 0).UTC()
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Clear removes imported matches, the stats snapshot and persisted metric
// counters. The player directory is kept.
func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"matches", "player_stats", "metrics"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// ClearMatch forgets an imported match so its transcript can be imported
// again. Stats already merged from it are not subtracted.
func (s *store) ClearMatch(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM matches WHERE id = ?", matchID)
	if err != nil {
		log.Error("Failed to clear match", "error", err, "matchID", matchID)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	return nil
}
