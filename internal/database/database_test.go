package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"players", "player_aliases", "matches", "player_stats", "metrics"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name, "The '%s' table should be created", table)
	}
}

func TestInitDB_IsIdempotent(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	// A second migration run over the same connection applies nothing.
	require.NoError(t, migrate(db, "sqlite3"))

	var version int64
	err = db.QueryRow("SELECT MAX(version_id) FROM goose_db_version").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestInitDB_EnforcesForeignKeys(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec("INSERT INTO player_stats (player_id) VALUES ('missing')")
	assert.Error(t, err)
}

func TestInitDB_MatchesTrackMergedStats(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec("INSERT INTO matches (id, source_name, digest, imported_at, match_json) VALUES ('m1', 'a.rtf', 'd1', 0, '[]')")
	require.NoError(t, err)

	var merged int
	require.NoError(t, db.QueryRow("SELECT stats_merged FROM matches WHERE id = 'm1'").Scan(&merged))
	assert.Zero(t, merged, "new matches start unmerged")
}
