package parser

import (
	"regexp"
	"strings"
)

var (
	summaryNoise = []string{
		"All Games", "AGP", "Opponents", "Score", "Select Report", "Game Detail",
		"Disclaimer", "Date:", "Start:", "End:", "Learn More", "Summary",
	}
	statCell   = regexp.MustCompile(`^[\d,]+$`)
	digitsOnly = regexp.MustCompile(`^\d+$`)
)

// extractTeams finds the home and away names in the lines of a match that
// sit outside any leg. The summary table lists each side as a name followed
// by numeric columns, home first. Failing that, the two names listed under a
// bare "WIN" heading are used. Either name may come back empty.
func extractTeams(lines []Line) (home, away string) {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line.Text)
		if containsAny(trimmed, summaryNoise) {
			continue
		}
		cells := splitCells(trimmed)
		if len(cells) < 3 || !looksLikeName(cells[0]) {
			continue
		}
		if strings.Contains(cells[0], "Game") || strings.Contains(cells[0], "WIN") || strings.Contains(cells[0], ":") {
			continue
		}
		numeric := false
		for _, c := range cells[1:] {
			if statCell.MatchString(c) {
				numeric = true
				break
			}
		}
		if !numeric {
			continue
		}
		switch {
		case home == "":
			home = cells[0]
		case cells[0] != home:
			return home, cells[0]
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line.Text) != "WIN" {
			continue
		}
		var found []string
		for j := i + 1; j < len(lines) && j < i+10 && len(found) < 2; j++ {
			name := strings.TrimSpace(lines[j].Text)
			if name == "" || strings.Contains(name, "Game") || strings.Contains(name, "-") ||
				digitsOnly.MatchString(name) || !looksLikeName(name) {
				continue
			}
			found = append(found, name)
		}
		if len(found) > 0 && home == "" {
			home = found[0]
		}
		if len(found) > 1 && away == "" {
			away = found[1]
		}
		break
	}
	return home, away
}

func splitCells(s string) []string {
	var cells []string
	for _, c := range strings.Split(s, "\t") {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

func looksLikeName(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
