package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mauv0809/dartledger/internal/match"
)

var (
	setPattern     = regexp.MustCompile(`^Set\s+(\d+)\b`)
	setLoose       = regexp.MustCompile(`^Set\b`)
	gamePattern    = regexp.MustCompile(`(?i)^Game\s+(\d+)\.(\d+)\s*[-–—]\s*(\d{3}|Cricket)\b\s*(\(Doubles\))?\s*([SDM]I[SDM]O\b)?`)
	gameLoose      = regexp.MustCompile(`^Game\s+\d`)
	datePattern    = regexp.MustCompile(`^Date:\s*([^\t\n]+)`)
	doublesPattern = regexp.MustCompile(`(?i)\(Doubles\)`)
	sectionPattern = regexp.MustCompile(`(?i)^More\s*Darts\s*!`)
)

// Line is one normalized transcript line with its 1-based line number.
type Line struct {
	Number int
	Text   string
}

// LegMeta is what the scanner knows about a leg from its boundary line.
type LegMeta struct {
	// Section is the 0-based index of the match within the transcript.
	Section       int
	Set           int
	Game          int
	Leg           int
	Format        match.Format
	StartingScore int
	Variant       string
	Doubles       bool
	Header        Line
}

// LegBatch is the raw lines collected for one leg.
type LegBatch struct {
	Meta  LegMeta
	Lines []Line
}

type scanState int

const (
	scanningForBoundary scanState = iota
	collectingLegLines
	scanEnd
)

// Section is one match of a transcript. An exporter writes several
// matches into one file separated by a "More Darts!" line.
type Section struct {
	Date     string
	HomeTeam string
	AwayTeam string
	// preamble holds the lines of the section outside any leg, where the
	// team summary table lives.
	preamble []Line
}

// Scan is the outcome of bucketing lines into legs. Date is the first date
// header of the transcript; Batches holds the legs of every section in
// transcript order.
type Scan struct {
	Date     string
	Sections []Section
	Batches  []LegBatch
	Warnings []Warning
}

type scanner struct {
	state   scanState
	set     int
	section int
	current *LegBatch
	out     Scan
}

// ScanLines walks normalized lines top to bottom and groups the lines
// between boundary markers into one batch per leg. It recognises only the
// Date, Set, Game and "More Darts!" lines; everything else is bucketed
// untouched. Lines outside any leg are kept per match to find team names.
func ScanLines(lines []string) Scan {
	s := &scanner{set: 1, out: Scan{Sections: []Section{{}}}}
	for i, text := range lines {
		s.feed(Line{Number: i + 1, Text: text})
	}
	s.finish()
	for i := range s.out.Sections {
		sec := &s.out.Sections[i]
		sec.HomeTeam, sec.AwayTeam = extractTeams(sec.preamble)
		sec.preamble = nil
	}
	return s.out
}

func (s *scanner) feed(line Line) {
	trimmed := strings.TrimSpace(line.Text)
	sec := &s.out.Sections[s.section]

	if sec.Date == "" {
		if m := datePattern.FindStringSubmatch(trimmed); m != nil {
			sec.Date = strings.TrimSpace(m[1])
			if s.out.Date == "" {
				s.out.Date = sec.Date
			}
			return
		}
	}

	switch {
	case sectionPattern.MatchString(trimmed):
		s.dispatch()
		s.section++
		s.set = 1
		s.out.Sections = append(s.out.Sections, Section{})
		s.state = scanningForBoundary
	case setLoose.MatchString(trimmed):
		s.dispatch()
		if m := setPattern.FindStringSubmatch(trimmed); m != nil {
			s.set, _ = strconv.Atoi(m[1])
		} else {
			s.out.Warnings = append(s.out.Warnings, Warning{
				Kind:    WarningStructure,
				Match:   s.section + 1,
				Line:    line.Number,
				Text:    line.Text,
				Message: "malformed set boundary",
			})
		}
		s.state = scanningForBoundary
	case gameLoose.MatchString(trimmed):
		s.dispatch()
		meta, ok := s.parseGameHeader(line, trimmed)
		if !ok {
			s.out.Warnings = append(s.out.Warnings, Warning{
				Kind:    WarningStructure,
				Match:   s.section + 1,
				Set:     s.set,
				Line:    line.Number,
				Text:    line.Text,
				Message: "malformed game boundary, leg skipped",
			})
			s.state = scanningForBoundary
			return
		}
		s.current = &LegBatch{Meta: meta}
		s.state = collectingLegLines
	case s.state == collectingLegLines:
		if trimmed == "" {
			return
		}
		s.current.Lines = append(s.current.Lines, line)
	case trimmed != "":
		sec.preamble = append(sec.preamble, line)
	}
}

func (s *scanner) parseGameHeader(line Line, trimmed string) (LegMeta, bool) {
	m := gamePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return LegMeta{}, false
	}
	game, _ := strconv.Atoi(m[1])
	leg, _ := strconv.Atoi(m[2])
	meta := LegMeta{
		Section: s.section,
		Set:     s.set,
		Game:    game,
		Leg:     leg,
		Variant: strings.ToUpper(m[5]),
		Doubles: m[4] != "" || doublesPattern.MatchString(trimmed),
		Header:  line,
	}
	if strings.EqualFold(m[3], "cricket") {
		meta.Format = match.FormatCricket
	} else {
		meta.Format = match.FormatX01
		meta.StartingScore, _ = strconv.Atoi(m[3])
	}
	return meta, true
}

func (s *scanner) dispatch() {
	if s.current == nil {
		return
	}
	batch := *s.current
	s.current = nil
	if len(batch.Lines) == 0 {
		s.out.Warnings = append(s.out.Warnings, legWarning(WarningStructure, batch.Meta, batch.Meta.Header, "leg has no lines, skipped"))
		return
	}
	s.out.Batches = append(s.out.Batches, batch)
}

func (s *scanner) finish() {
	s.dispatch()
	s.state = scanEnd
}
