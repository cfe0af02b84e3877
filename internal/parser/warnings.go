package parser

import "fmt"

// WarningKind classifies a recoverable problem found while parsing.
type WarningKind string

const (
	// WarningStructure is raised for malformed boundaries and empty legs.
	WarningStructure WarningKind = "structure"
	// WarningLine is raised for a data line that matches no turn shape.
	WarningLine WarningKind = "line"
	// WarningUnresolvedWinner is raised when a leg ends without evidence of
	// who won it.
	WarningUnresolvedWinner WarningKind = "unresolved_winner"
)

// Warning is a non-fatal diagnostic attached to a parse result.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Match   int         `json:"match,omitempty"`
	Set     int         `json:"set,omitempty"`
	Game    int         `json:"game,omitempty"`
	Leg     int         `json:"leg,omitempty"`
	Line    int         `json:"line,omitempty"`
	Text    string      `json:"text,omitempty"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	loc := ""
	if w.Match > 1 {
		loc = fmt.Sprintf(" match %d", w.Match)
	}
	if w.Game > 0 {
		loc += fmt.Sprintf(" set %d game %d.%d", w.Set, w.Game, w.Leg)
	}
	if w.Line > 0 {
		loc += fmt.Sprintf(" line %d", w.Line)
	}
	return fmt.Sprintf("%s%s: %s", w.Kind, loc, w.Message)
}

func legWarning(kind WarningKind, meta LegMeta, line Line, format string, args ...any) Warning {
	return Warning{
		Kind:    kind,
		Match:   meta.Section + 1,
		Set:     meta.Set,
		Game:    meta.Game,
		Leg:     meta.Leg,
		Line:    line.Number,
		Text:    line.Text,
		Message: fmt.Sprintf(format, args...),
	}
}
