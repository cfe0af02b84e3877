package metrics

import (
	"testing"

	"github.com/mauv0809/dartledger/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementAndGetAll(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()
	store := New(db)

	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, metrics)

	store.Increment(KeyTranscriptsImported)
	store.Increment(KeyTranscriptsImported)
	store.Increment(KeyDuplicateImports)

	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeyTranscriptsImported: 2,
		KeyDuplicateImports:    1,
	}, metrics)
}
