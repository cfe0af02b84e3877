package parser_test

import (
	"testing"

	"github.com/mauv0809/dartledger/internal/match"
	"github.com/mauv0809/dartledger/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func x01Meta() parser.LegMeta {
	return parser.LegMeta{Set: 1, Game: 1, Leg: 1, Format: match.FormatX01, StartingScore: 501}
}

func toLines(texts ...string) []parser.Line {
	lines := make([]parser.Line, len(texts))
	for i, text := range texts {
		lines[i] = parser.Line{Number: i + 1, Text: text}
	}
	return lines
}

func warningsOfKind(warnings []parser.Warning, kind parser.WarningKind) []parser.Warning {
	var out []parser.Warning
	for _, w := range warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

func TestParseX01Leg(t *testing.T) {
	known := parser.NewKnownNames()

	t.Run("single line without checkout", func(t *testing.T) {
		game, warnings := parser.ParseX01Leg(x01Meta(), toLines("Tony Massimiani\t36\t465\t1\t473\t28\tDerek Fess"), known)
		require.NotNil(t, game)

		require.Len(t, game.Turns, 2)
		home, away := game.Turns[0], game.Turns[1]
		assert.Equal(t, 1, home.Round)
		assert.Equal(t, match.SideHome, home.Side)
		assert.Equal(t, "Tony Massimiani", home.Player)
		assert.Equal(t, 36, home.X01.Score)
		assert.Equal(t, 465, home.X01.Remaining)
		assert.Equal(t, 1, away.Round)
		assert.Equal(t, match.SideAway, away.Side)
		assert.Equal(t, "Derek Fess", away.Player)
		assert.Equal(t, 28, away.X01.Score)
		assert.Equal(t, 473, away.X01.Remaining)

		assert.Equal(t, match.SideNone, game.Winner)
		assert.Len(t, warningsOfKind(warnings, parser.WarningUnresolvedWinner), 1)
	})

	t.Run("checkout marker on an earlier line sets the dart count", func(t *testing.T) {
		game, warnings := parser.ParseX01Leg(x01Meta(), toLines(
			"DO(1)",
			"Tony Massimiani\t4\t0\t15",
		), known)
		require.NotNil(t, game)
		assert.Empty(t, warnings)

		require.Len(t, game.Turns, 1)
		turn := game.Turns[0]
		assert.True(t, turn.X01.Checkout)
		assert.Equal(t, 1, turn.Darts)
		assert.Equal(t, 4, game.CheckoutValue)
		assert.Equal(t, 1, game.CheckoutDarts)
		assert.Equal(t, match.SideHome, game.Winner)
	})

	t.Run("checkout without marker uses three darts", func(t *testing.T) {
		game, _ := parser.ParseX01Leg(x01Meta(), toLines(
			"Tony Massimiani\t32\t0\t15",
		), known)
		require.NotNil(t, game)
		assert.Equal(t, 3, game.CheckoutDarts)
		assert.Equal(t, 3, game.Turns[0].Darts)
	})

	t.Run("full leg conserves the starting score", func(t *testing.T) {
		game, warnings := parser.ParseX01Leg(x01Meta(), toLines(x01Leg...), known)
		require.NotNil(t, game)
		assert.Empty(t, warnings)
		assert.Equal(t, match.SideHome, game.Winner)
		assert.Equal(t, 40, game.CheckoutValue)
		assert.Equal(t, 2, game.CheckoutDarts)
		assert.Len(t, game.Turns, 13)
		assert.Equal(t, []string{"Tony Massimiani"}, game.HomePlayers)
		assert.Equal(t, []string{"Derek Fess"}, game.AwayPlayers)

		for _, side := range []match.Side{match.SideHome, match.SideAway} {
			turns := game.TurnsFor(side)
			sum := 0
			for _, turn := range turns {
				sum += turn.X01.Score
			}
			final := turns[len(turns)-1].X01.Remaining
			assert.Equal(t, 501, sum+final, "side %s", side)
		}
	})

	t.Run("annotations are attached to their turns", func(t *testing.T) {
		game, _ := parser.ParseX01Leg(x01Meta(), toLines(x01Leg...), known)
		require.NotNil(t, game)

		assert.Equal(t, "140", game.Turns[4].Milestone)
		assert.Equal(t, 140, game.Turns[4].X01.Score)
		assert.Equal(t, "180", game.Turns[6].Milestone)

		bust := game.Turns[8]
		assert.True(t, bust.Bust)
		assert.Equal(t, 0, bust.X01.Score)
		assert.Equal(t, 45, bust.X01.Remaining)
		assert.Equal(t, 3, bust.Darts)
		assert.Equal(t, "100", game.Turns[9].Milestone)
	})

	t.Run("malformed line is skipped without disturbing the leg", func(t *testing.T) {
		lines := append([]string{}, x01Leg[:3]...)
		lines = append(lines, "Tony Massimiani\tabc\t??\tDerek Fess")
		lines = append(lines, x01Leg[3:]...)

		clean, _ := parser.ParseX01Leg(x01Meta(), toLines(x01Leg...), known)
		game, warnings := parser.ParseX01Leg(x01Meta(), toLines(lines...), known)
		require.NotNil(t, game)

		require.Len(t, warnings, 1)
		assert.Equal(t, parser.WarningLine, warnings[0].Kind)
		assert.Equal(t, 4, warnings[0].Line)
		assert.Equal(t, clean.Turns, game.Turns)
		assert.Equal(t, clean.Winner, game.Winner)
	})

	t.Run("away checkout on a round-first line", func(t *testing.T) {
		game, warnings := parser.ParseX01Leg(x01Meta(), toLines(
			"Tony Massimiani\t60\t81\t14\t32\t100\tDerek Fess",
			"Tony Massimiani\t41\t40\t15",
			"15\t0\t32\tDerek Fess",
		), known)
		require.NotNil(t, game)
		assert.Empty(t, warnings)
		assert.Equal(t, match.SideAway, game.Winner)
		assert.Equal(t, 32, game.CheckoutValue)
		last := game.Turns[len(game.Turns)-1]
		assert.Equal(t, 15, last.Round)
		assert.Equal(t, match.SideAway, last.Side)
		assert.True(t, last.X01.Checkout)
	})

	t.Run("lines after the checkout produce no turns", func(t *testing.T) {
		game, _ := parser.ParseX01Leg(x01Meta(), toLines(
			"Tony Massimiani\t32\t0\t15",
			"Tony Massimiani\t20\t12\t16\t40\t20\tDerek Fess",
		), known)
		require.NotNil(t, game)
		assert.Len(t, game.Turns, 1)
	})

	t.Run("invalid halves are rejected", func(t *testing.T) {
		game, warnings := parser.ParseX01Leg(x01Meta(), toLines(
			"Tony Massimiani\t60\t441\t1\t441\t60\tDerek Fess",
			"Tony Massimiani\t440\t1\t2\t381\t60\tDerek Fess",
			"Tony Massimiani\t60\t381\t3\t440\t190\tDerek Fess",
			"Tony Massimiani\t60\t321\t1\t321\t60\tDerek Fess",
		), known)
		require.NotNil(t, game)

		lineWarnings := warningsOfKind(warnings, parser.WarningLine)
		require.Len(t, lineWarnings, 3)
		assert.Contains(t, lineWarnings[0].Message, "home")
		assert.Contains(t, lineWarnings[1].Message, "away")
		assert.Contains(t, lineWarnings[2].Message, "round number decreases")
		// round 1 both halves, round 2 away only, round 3 home only
		assert.Len(t, game.Turns, 4)
	})

	t.Run("leg without turns is skipped", func(t *testing.T) {
		game, warnings := parser.ParseX01Leg(x01Meta(), toLines("Player\tTurn\tRnd", "3 Dart Avg\t0"), known)
		assert.Nil(t, game)
		require.Len(t, warnings, 1)
		assert.Equal(t, parser.WarningStructure, warnings[0].Kind)
	})

	t.Run("two names on one side marks the leg as doubles", func(t *testing.T) {
		game, _ := parser.ParseX01Leg(x01Meta(), toLines(
			"Tony Massimiani\t60\t441\t1\t441\t60\tDerek Fess",
			"Jim Smith\t60\t381\t2\t381\t60\tBob Jones",
		), known)
		require.NotNil(t, game)
		assert.True(t, game.Doubles)
		assert.Equal(t, []string{"Tony Massimiani", "Jim Smith"}, game.HomePlayers)
	})
}
