package parser_test

import (
	"testing"

	"github.com/mauv0809/dartledger/internal/match"
	"github.com/mauv0809/dartledger/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanLines(t *testing.T) {
	scan := parser.ScanLines([]string{
		"Date: 03/14/2024",
		"Set 1",
		"Game 1.1 - 501",
		"a",
		"",
		"b",
		"Game 1.2 – Cricket",
		"c",
		"Set 2",
		"Game 2.1 - 501 (Doubles) DIDO",
		"d",
		"Game 3.x - 501",
		"e",
		"Game 4.1 - 301",
	})

	assert.Equal(t, "03/14/2024", scan.Date)
	require.Len(t, scan.Batches, 3)

	first := scan.Batches[0]
	assert.Equal(t, 1, first.Meta.Set)
	assert.Equal(t, 1, first.Meta.Game)
	assert.Equal(t, 1, first.Meta.Leg)
	assert.Equal(t, match.FormatX01, first.Meta.Format)
	assert.Equal(t, 501, first.Meta.StartingScore)
	assert.Equal(t, []parser.Line{{Number: 4, Text: "a"}, {Number: 6, Text: "b"}}, first.Lines)

	second := scan.Batches[1]
	assert.Equal(t, match.FormatCricket, second.Meta.Format)
	assert.Equal(t, 2, second.Meta.Leg)
	assert.Equal(t, 0, second.Meta.StartingScore)

	third := scan.Batches[2]
	assert.Equal(t, 2, third.Meta.Set)
	assert.True(t, third.Meta.Doubles)
	assert.Equal(t, "DIDO", third.Meta.Variant)
	assert.Equal(t, []parser.Line{{Number: 11, Text: "d"}}, third.Lines)

	require.Len(t, scan.Warnings, 2)
	assert.Equal(t, parser.WarningStructure, scan.Warnings[0].Kind)
	assert.Equal(t, 12, scan.Warnings[0].Line)
	assert.Equal(t, parser.WarningStructure, scan.Warnings[1].Kind)
	assert.Equal(t, 4, scan.Warnings[1].Game)
}

func TestScanLinesDefaultsToSetOne(t *testing.T) {
	scan := parser.ScanLines([]string{"Game 1.1 - 501", "x"})
	require.Len(t, scan.Batches, 1)
	assert.Equal(t, 1, scan.Batches[0].Meta.Set)
	assert.Empty(t, scan.Date)
}

func TestScanLinesIgnoresLinesOutsideLegs(t *testing.T) {
	scan := parser.ScanLines([]string{"Select Report", "Game Detail", "Set 1", "Tony M\t1\t2\t3"})
	assert.Empty(t, scan.Batches)
	assert.Empty(t, scan.Warnings)
}

func TestScanLinesSplitsMatches(t *testing.T) {
	scan := parser.ScanLines([]string{
		"Date: 03/14/2024",
		"Home Side\t3\t2",
		"Away Side\t1\t0",
		"Set 2",
		"Game 2.1 - 501",
		"a",
		"More Darts!",
		"Game 1.1 - Cricket",
		"b",
	})

	require.Len(t, scan.Sections, 2)
	assert.Equal(t, "03/14/2024", scan.Sections[0].Date)
	assert.Equal(t, "Home Side", scan.Sections[0].HomeTeam)
	assert.Equal(t, "Away Side", scan.Sections[0].AwayTeam)
	assert.Empty(t, scan.Sections[1].Date)

	require.Len(t, scan.Batches, 2)
	assert.Equal(t, 0, scan.Batches[0].Meta.Section)
	assert.Equal(t, 2, scan.Batches[0].Meta.Set)
	assert.Equal(t, []parser.Line{{Number: 6, Text: "a"}}, scan.Batches[0].Lines)
	assert.Equal(t, 1, scan.Batches[1].Meta.Section)
	assert.Equal(t, 1, scan.Batches[1].Meta.Set, "set numbering restarts with each match")
	assert.Empty(t, scan.Warnings)
}

func TestScanLinesTeamsFromWinBlock(t *testing.T) {
	scan := parser.ScanLines([]string{
		"Summary\t1\t2",
		"WIN",
		"",
		"Kings & Queens",
		"12",
		"Score - 4",
		"Bullseyes",
		"Game 1.1 - 501",
		"a",
	})
	require.Len(t, scan.Sections, 1)
	assert.Equal(t, "Kings & Queens", scan.Sections[0].HomeTeam)
	assert.Equal(t, "Bullseyes", scan.Sections[0].AwayTeam)
}
