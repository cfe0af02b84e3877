package parser_test

import (
	"testing"

	"github.com/mauv0809/dartledger/internal/parser"
	"github.com/mauv0809/dartledger/internal/rtf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMarks(t *testing.T) {
	testCases := []struct {
		notation string
		want     int
	}{
		{"T20, S19x2", 5},
		{"SB, S16x2", 3},
		{rtf.NoHit, 0},
		{"X", 0},
		{"Start", 0},
		{"DB", 2},
		{"DBx2", 4},
		{"T20x3", 9},
		{"D18x2", 4},
		{"T20 S19", 4},
	}

	for _, tc := range testCases {
		t.Run(tc.notation, func(t *testing.T) {
			got, err := parser.DecodeMarks(tc.notation)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("rejects unknown segments", func(t *testing.T) {
		for _, bad := range []string{"Q20", "TB", "T20, bogus", "S20x0"} {
			_, err := parser.DecodeMarks(bad)
			assert.Error(t, err, bad)
		}
	})
}

func TestParseHits(t *testing.T) {
	hits, err := parser.ParseHits("T20, S19x2, DB")
	require.NoError(t, err)
	assert.Equal(t, []parser.Hit{
		{Target: "20", Marks: 3},
		{Target: "19", Marks: 2},
		{Target: "B", Marks: 2},
	}, hits)
}
