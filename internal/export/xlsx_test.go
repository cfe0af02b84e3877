package export

import (
	"bytes"
	"testing"

	"github.com/mauv0809/dartledger/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteLeaderboard(t *testing.T) {
	records := []stats.Record{
		{Player: "Derek Fess", CricketLegsPlayed: 2, CricketLegsWon: 1, CricketTotalMarks: 16, CricketTotalRounds: 6},
		{Player: "Tony M", X01LegsPlayed: 1, X01LegsWon: 1, X01TotalDarts: 14, X01TotalPoints: 501, X01Ton80s: 1, X01CheckoutsHit: 1, X01CheckoutTotals: 40, X01CheckoutOpportunities: 2},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLeaderboard(&buf, records))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetX01, SheetCricket}, f.GetSheetList())

	rows, err := f.GetRows(SheetX01)
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus the one x01 player")
	assert.Equal(t, "Player", rows[0][0])
	assert.Equal(t, "Tony M", rows[1][0])
	assert.Equal(t, "107.36", rows[1][3])
	assert.Equal(t, "50", rows[1][11])

	rows, err = f.GetRows(SheetCricket)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Derek Fess", rows[1][0])
	assert.Equal(t, "2.67", rows[1][3])
}

func TestWriteLeaderboard_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLeaderboard(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetCricket)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
