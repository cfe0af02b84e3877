package parser

import (
	"strings"

	"github.com/mauv0809/dartledger/internal/match"
)

// minDataTokens is the shortest token run that can carry a turn.
const minDataTokens = 3

type lineClass int

const (
	lineData lineClass = iota
	lineHeader
	lineTrailer
)

var trailerMarkers = []string{"Dart Avg", "Darts:", "MPR", "PPD", "Avg:"}

// classifyLine separates column headers and summary trailers from lines
// that may carry turns.
func classifyLine(text string) lineClass {
	for _, marker := range trailerMarkers {
		if strings.Contains(text, marker) {
			return lineTrailer
		}
	}
	if doublesPattern.MatchString(text) || strings.Contains(text, "!") {
		return lineHeader
	}
	if strings.Contains(text, "Player") {
		for _, col := range []string{"Turn", "Rnd", "Score", "Marks", "Remaining"} {
			if strings.Contains(text, col) {
				return lineHeader
			}
		}
	}
	return lineData
}

// legState accumulates one leg's turns and diagnostics.
type legState struct {
	meta      LegMeta
	known     KnownNames
	game      *match.Game
	warnings  []Warning
	lastRound int
	// trailer is set when a summary line follows the last recorded turn.
	trailer bool
}

func newLegState(meta LegMeta, known KnownNames, format match.Format) *legState {
	return &legState{
		meta:  meta,
		known: known,
		game: &match.Game{
			SetNumber:     meta.Set,
			GameNumber:    meta.Game,
			LegNumber:     meta.Leg,
			Format:        format,
			Variant:       meta.Variant,
			StartingScore: meta.StartingScore,
			Doubles:       meta.Doubles,
			HomePlayers:   []string{},
			AwayPlayers:   []string{},
			Turns:         []match.Turn{},
		},
	}
}

func (l *legState) warn(kind WarningKind, line Line, format string, args ...any) {
	l.warnings = append(l.warnings, legWarning(kind, l.meta, line, format, args...))
}

func (l *legState) addPlayer(side match.Side, name string) {
	roster := &l.game.HomePlayers
	if side == match.SideAway {
		roster = &l.game.AwayPlayers
	}
	for _, n := range *roster {
		if n == name {
			return
		}
	}
	*roster = append(*roster, name)
}

func (l *legState) record(turn match.Turn) {
	l.addPlayer(turn.Side, turn.Player)
	l.game.Turns = append(l.game.Turns, turn)
	l.lastRound = turn.Round
	l.trailer = false
}

// checkRound validates a round number against the leg's sequencing.
func (l *legState) checkRound(round int) string {
	switch {
	case round < 1:
		return "round must start at 1"
	case round < l.lastRound:
		return "round number decreases"
	}
	return ""
}

// finish returns the game or nil when the leg produced no turns.
func (l *legState) finish() (*match.Game, []Warning) {
	if len(l.game.Turns) == 0 {
		l.warn(WarningStructure, l.meta.Header, "leg has no parsable turns, skipped")
		return nil, l.warnings
	}
	if len(l.game.HomePlayers) > 1 || len(l.game.AwayPlayers) > 1 {
		l.game.Doubles = true
	}
	return l.game, l.warnings
}

// lastRoundOneSided reports whether only one side threw in the final round
// and, if so, which.
func (l *legState) lastRoundOneSided() (match.Side, bool) {
	turns := l.game.Turns
	if len(turns) == 0 {
		return match.SideNone, false
	}
	last := turns[len(turns)-1]
	sides := make(map[match.Side]bool)
	for i := len(turns) - 1; i >= 0 && turns[i].Round == last.Round; i-- {
		sides[turns[i].Side] = true
	}
	if len(sides) != 1 {
		return match.SideNone, false
	}
	return last.Side, true
}
