package parser

import (
	"github.com/mauv0809/dartledger/internal/match"
	"github.com/mauv0809/dartledger/internal/rtf"
)

// Parser turns transcripts into matches. It holds no state between calls
// and is safe for concurrent use.
type Parser struct {
	known KnownNames
}

// Result is the matches parsed from one transcript plus every recoverable
// problem met on the way. Matches always holds at least one match.
type Result struct {
	Matches  []*match.Match `json:"matches"`
	Warnings []Warning      `json:"warnings"`
}

// Legs returns every parsed leg across all matches in transcript order.
func (r *Result) Legs() []*match.Game {
	var legs []*match.Game
	for _, m := range r.Matches {
		legs = append(legs, m.Legs()...)
	}
	return legs
}

// New creates a Parser that checks player names against known.
func New(known KnownNames) *Parser {
	return &Parser{known: known}
}

// Parse normalizes a raw transcript and parses it. Only a transcript that
// cannot be decoded returns an error; everything else is reported as
// warnings on the result.
func (p *Parser) Parse(raw []byte) (*Result, error) {
	text, err := rtf.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return p.ParseText(text), nil
}

// ParseText parses already-normalized transcript text.
func (p *Parser) ParseText(text string) *Result {
	scan := ScanLines(rtf.Lines(text))
	res := &Result{Warnings: append([]Warning{}, scan.Warnings...)}

	matches := make([]*match.Match, len(scan.Sections))
	for i, sec := range scan.Sections {
		date := sec.Date
		if date == "" {
			date = scan.Date
		}
		matches[i] = &match.Match{Date: date, HomeTeam: sec.HomeTeam, AwayTeam: sec.AwayTeam, Sets: []match.Set{}}
	}

	type legKey struct{ section, set, game, leg int }
	seen := map[legKey]bool{}
	for _, batch := range scan.Batches {
		meta := batch.Meta
		key := legKey{meta.Section, meta.Set, meta.Game, meta.Leg}
		if seen[key] {
			res.Warnings = append(res.Warnings, legWarning(WarningStructure, meta, meta.Header, "repeated set %d game %d.%d, leg skipped", meta.Set, meta.Game, meta.Leg))
			continue
		}
		seen[key] = true

		game, warnings := p.ParseLeg(batch)
		res.Warnings = append(res.Warnings, warnings...)
		if game != nil {
			addGame(matches[meta.Section], *game)
		}
	}

	for _, m := range matches {
		if len(m.Sets) > 0 {
			res.Matches = append(res.Matches, m)
		}
	}
	if len(res.Matches) == 0 {
		res.Matches = []*match.Match{matches[0]}
	}
	return res
}

// ParseLeg dispatches one leg batch to the parser for its format.
func (p *Parser) ParseLeg(batch LegBatch) (*match.Game, []Warning) {
	if batch.Meta.Format == match.FormatCricket {
		return ParseCricketLeg(batch.Meta, batch.Lines, p.known)
	}
	return ParseX01Leg(batch.Meta, batch.Lines, p.known)
}

// addGame appends the game to its set, creating the set on first use.
func addGame(m *match.Match, g match.Game) {
	for i := range m.Sets {
		if m.Sets[i].Number == g.SetNumber {
			m.Sets[i].Games = append(m.Sets[i].Games, g)
			return
		}
	}
	m.Sets = append(m.Sets, match.Set{Number: g.SetNumber, Games: []match.Game{g}})
}
