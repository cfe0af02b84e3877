package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mauv0809/dartledger/internal/rtf"
)

var hitPattern = regexp.MustCompile(`^([TDS])(\d{1,2}|B)(?:x(\d+))?$`)

// cricketTargets are the numbers a side must close to finish a leg.
var cricketTargets = []string{"15", "16", "17", "18", "19", "20", "B"}

// Hit is one segment of a cricket hit list, e.g. "S19x2".
type Hit struct {
	Target string
	Marks  int
}

// ParseHits splits a hit list into its segments with marks already
// multiplied out. "Start" and the no-hit symbol yield no hits.
func ParseHits(notation string) ([]Hit, error) {
	notation = strings.TrimSpace(notation)
	if notation == "" || notation == rtf.NoHit || notation == "X" || notation == "Start" {
		return nil, nil
	}

	var hits []Hit
	for _, seg := range markSeparator.Split(notation, -1) {
		if seg == "" {
			continue
		}
		m := hitPattern.FindStringSubmatch(seg)
		if m == nil || (m[1] == "T" && m[2] == "B") {
			return nil, fmt.Errorf("invalid hit %q in %q", seg, notation)
		}

		var marks int
		switch m[1] {
		case "T":
			marks = 3
		case "D":
			marks = 2
		case "S":
			marks = 1
		}

		count := 1
		if m[3] != "" {
			n, err := strconv.Atoi(m[3])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid multiplier in %q", seg)
			}
			count = n
		}
		hits = append(hits, Hit{Target: m[2], Marks: marks * count})
	}
	return hits, nil
}

// DecodeMarks returns the number of cricket marks a hit list is worth. A
// triple is three marks, a double two and a single one; a double bull is
// two and a single bull one. An "xN" suffix multiplies the hit. "Start"
// and the no-hit symbol are worth zero.
func DecodeMarks(notation string) (int, error) {
	hits, err := ParseHits(notation)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, h := range hits {
		total += h.Marks
	}
	return total, nil
}
