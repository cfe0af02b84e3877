package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mauv0809/dartledger/internal/match"
	"github.com/mauv0809/dartledger/internal/rtf"
)

// Kind is the lexical class of a single tab-separated token.
type Kind int

const (
	KindUnknown Kind = iota
	KindPlayerName
	KindInteger
	KindBust
	KindCheckoutDarts
	KindMarkNotation
	KindMilestone
	KindStart
)

var kindNames = map[Kind]string{
	KindUnknown:       "Unknown",
	KindPlayerName:    "PlayerName",
	KindInteger:       "Integer",
	KindBust:          "Bust",
	KindCheckoutDarts: "CheckoutDarts",
	KindMarkNotation:  "MarkNotation",
	KindMilestone:     "MilestoneScore",
	KindStart:         "Start",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Token is one classified field of a transcript line.
type Token struct {
	Text string
	Kind Kind
	// Value holds the integer for Integer tokens and the dart count for
	// CheckoutDarts tokens.
	Value int
}

var (
	integerPattern   = regexp.MustCompile(`^\d+$`)
	checkoutPattern  = regexp.MustCompile(`^DO(?:\s*\((\d)\))?$`)
	markMilestone    = regexp.MustCompile(`^\d+[MB]$`)
	markSegment      = regexp.MustCompile(`^(?:[TDS]\d{1,2}|[DS]B)(?:x\d+)?$`)
	markSeparator    = regexp.MustCompile(`[,\s]+`)
	fullNamePattern  = regexp.MustCompile(`^[A-Z][a-zA-Z'\-]+(?:\s+[A-Z][a-zA-Z'\-]+)+$`)
	shortNamePattern = regexp.MustCompile(`^[A-Z][a-zA-Z'\-]+\s+[A-Z]\.?$`)
)

// Phrases the exporter prints that look like names but never are.
var reservedPhrases = map[string]bool{
	"dart avg":      true,
	"game detail":   true,
	"select report": true,
	"all games":     true,
	"player turn":   true,
	"learn more":    true,
}

// KnownNames is the set of roster names a transcript is checked against.
type KnownNames struct {
	names map[string]bool
}

// NewKnownNames builds a case-insensitive name set.
func NewKnownNames(names ...string) KnownNames {
	k := KnownNames{names: make(map[string]bool, len(names))}
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			k.names[strings.ToLower(n)] = true
		}
	}
	return k
}

// Contains reports whether name is in the set.
func (k KnownNames) Contains(name string) bool {
	return k.names[strings.ToLower(strings.TrimSpace(name))]
}

// Len returns the number of names in the set.
func (k KnownNames) Len() int {
	return len(k.names)
}

// IsPlayerName reports whether a token looks like a player name: either a
// known roster name or a capitalised "First Last" / "First L" pattern.
func IsPlayerName(text string, known KnownNames) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if known.Contains(text) {
		return true
	}
	if reservedPhrases[strings.ToLower(text)] {
		return false
	}
	return fullNamePattern.MatchString(text) || shortNamePattern.MatchString(text)
}

// IsMarkNotation reports whether text is a cricket hit list such as
// "T20, S19x2", or an empty visit written as the no-hit symbol or X.
func IsMarkNotation(text string) bool {
	text = strings.TrimSpace(text)
	if text == rtf.NoHit || text == "X" {
		return true
	}
	if text == "" {
		return false
	}
	for _, seg := range markSeparator.Split(text, -1) {
		if seg == "" {
			continue
		}
		if !markSegment.MatchString(seg) {
			return false
		}
	}
	return true
}

// Classify assigns a base kind to a single token. Context-dependent
// reclassification, such as leading highlight scores, happens in Tokenize.
func Classify(text string, format match.Format, known KnownNames) Token {
	text = strings.TrimSpace(text)
	tok := Token{Text: text, Kind: KindUnknown}

	switch {
	case integerPattern.MatchString(text):
		if v, err := strconv.Atoi(text); err == nil {
			tok.Kind = KindInteger
			tok.Value = v
		}
	case text == "X" && format == match.FormatCricket:
		// an empty cricket visit, never a bust
		tok.Kind = KindMarkNotation
	case text == "X":
		tok.Kind = KindBust
	case text == "Start":
		tok.Kind = KindStart
	case checkoutPattern.MatchString(text):
		tok.Kind = KindCheckoutDarts
		if m := checkoutPattern.FindStringSubmatch(text); m[1] != "" {
			tok.Value, _ = strconv.Atoi(m[1])
		}
	case markMilestone.MatchString(text):
		tok.Kind = KindMilestone
	case text == rtf.NoHit && format == match.FormatX01:
		// a visit with no scoring darts
		tok.Kind = KindInteger
	case format == match.FormatCricket && IsMarkNotation(text):
		tok.Kind = KindMarkNotation
	case IsPlayerName(text, known):
		tok.Kind = KindPlayerName
	}
	return tok
}

// Tokenize splits a line on tabs and classifies each non-empty field. A
// bare integer in [50,180] that leads the line and is immediately followed
// by a player name is a highlight annotation, not a score field.
func Tokenize(line string, format match.Format, known KnownNames) []Token {
	var toks []Token
	for _, field := range strings.Split(line, "\t") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		toks = append(toks, Classify(field, format, known))
	}

	for i := 0; i+1 < len(toks); i++ {
		t := toks[i]
		if t.Kind == KindMilestone || t.Kind == KindCheckoutDarts {
			continue
		}
		if t.Kind != KindInteger || t.Value < 50 || t.Value > 180 || toks[i+1].Kind != KindPlayerName {
			break
		}
		toks[i].Kind = KindMilestone
	}
	return toks
}
