package parser_test

import (
	"testing"

	"github.com/mauv0809/dartledger/internal/match"
	"github.com/mauv0809/dartledger/internal/parser"
	"github.com/stretchr/testify/assert"
)

func TestIsPlayerName(t *testing.T) {
	known := parser.NewKnownNames("Madonna", "  ", "Jo Ann Smith")

	testCases := []struct {
		name  string
		input string
		want  bool
	}{
		{"first and last name", "Derek Fess", true},
		{"abbreviated last name", "Tony M", true},
		{"abbreviated with period", "Tony M.", true},
		{"known single name", "Madonna", true},
		{"known name any case", "madonna", true},
		{"unknown single name", "Tony", false},
		{"lowercase words", "derek fess", false},
		{"number", "501", false},
		{"reserved phrase", "Dart Avg", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parser.IsPlayerName(tc.input, known))
		})
	}
	assert.Equal(t, 2, known.Len())
}

func TestClassify(t *testing.T) {
	known := parser.NewKnownNames()

	testCases := []struct {
		name      string
		input     string
		format    match.Format
		wantKind  parser.Kind
		wantValue int
	}{
		{"integer", "465", match.FormatX01, parser.KindInteger, 465},
		{"bust", "X", match.FormatX01, parser.KindBust, 0},
		{"empty visit in cricket", "X", match.FormatCricket, parser.KindMarkNotation, 0},
		{"checkout marker", "DO (2)", match.FormatX01, parser.KindCheckoutDarts, 2},
		{"compact checkout marker", "DO(1)", match.FormatX01, parser.KindCheckoutDarts, 1},
		{"start", "Start", match.FormatCricket, parser.KindStart, 0},
		{"mark notation", "T20, S19x2", match.FormatCricket, parser.KindMarkNotation, 0},
		{"bull notation", "DBx2", match.FormatCricket, parser.KindMarkNotation, 0},
		{"no hit in cricket", "∅", match.FormatCricket, parser.KindMarkNotation, 0},
		{"no hit in x01", "∅", match.FormatX01, parser.KindInteger, 0},
		{"mark notation outside cricket", "T20", match.FormatX01, parser.KindUnknown, 0},
		{"marks milestone", "5M", match.FormatCricket, parser.KindMilestone, 0},
		{"bulls milestone", "3B", match.FormatCricket, parser.KindMilestone, 0},
		{"player", "Derek Fess", match.FormatX01, parser.KindPlayerName, 0},
		{"unknown", "71.5", match.FormatX01, parser.KindUnknown, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tok := parser.Classify(tc.input, tc.format, known)
			assert.Equal(t, tc.wantKind, tok.Kind, "kind was %s", tok.Kind)
			assert.Equal(t, tc.wantValue, tok.Value)
		})
	}
}

func TestTokenize(t *testing.T) {
	known := parser.NewKnownNames()

	t.Run("leading highlight before a name becomes a milestone", func(t *testing.T) {
		toks := parser.Tokenize("180\tTony Massimiani\t180\t45\t4\t283\t85\tDerek Fess", match.FormatX01, known)
		assert.Len(t, toks, 8)
		assert.Equal(t, parser.KindMilestone, toks[0].Kind)
		assert.Equal(t, parser.KindInteger, toks[2].Kind, "the score field keeps its kind")
	})

	t.Run("away score before the away name stays an integer", func(t *testing.T) {
		toks := parser.Tokenize("Tony Massimiani\t36\t465\t1\t473\t100\tDerek Fess", match.FormatX01, known)
		for _, tok := range toks {
			assert.NotEqual(t, parser.KindMilestone, tok.Kind)
		}
	})

	t.Run("leading round number is not a milestone", func(t *testing.T) {
		toks := parser.Tokenize("15\t0\t32\tDerek Fess", match.FormatX01, known)
		assert.Equal(t, parser.KindInteger, toks[0].Kind)
	})

	t.Run("empty fields are dropped", func(t *testing.T) {
		toks := parser.Tokenize("\tTony M\t\t36\t", match.FormatX01, known)
		assert.Len(t, toks, 2)
	})
}
