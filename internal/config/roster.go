package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mauv0809/dartledger/internal/league"
	"gopkg.in/yaml.v3"
)

// Roster is the league's registered players grouped by team.
//
//	teams:
//	  - name: Bullseyes
//	    players:
//	      - name: Tony M
//	        aliases: [Tony, T. M]
type Roster struct {
	Teams []Team `yaml:"teams"`
}

type Team struct {
	Name    string              `yaml:"name"`
	Players []league.PlayerInfo `yaml:"players"`
}

// LoadRoster reads and validates a YAML roster file.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster %s: %w", path, err)
	}
	r, err := ParseRoster(data)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	return r, nil
}

// ParseRoster decodes a roster and rejects empty names and any name or
// alias claimed by two players.
func ParseRoster(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid roster yaml: %w", err)
	}

	owner := make(map[string]string)
	claim := func(name, player string) error {
		key := strings.ToLower(strings.TrimSpace(name))
		if prev, ok := owner[key]; ok && prev != player {
			return fmt.Errorf("name %q is used by both %q and %q", name, prev, player)
		}
		owner[key] = player
		return nil
	}
	for _, team := range r.Teams {
		for _, p := range team.Players {
			if strings.TrimSpace(p.Name) == "" {
				return nil, fmt.Errorf("team %q has a player without a name", team.Name)
			}
			if err := claim(p.Name, p.Name); err != nil {
				return nil, err
			}
			for _, alias := range p.Aliases {
				if err := claim(alias, p.Name); err != nil {
					return nil, err
				}
			}
		}
	}
	return &r, nil
}

// Players flattens the roster, stamping each player with its team name.
func (r *Roster) Players() []league.PlayerInfo {
	var out []league.PlayerInfo
	for _, team := range r.Teams {
		for _, p := range team.Players {
			if p.Team == "" {
				p.Team = team.Name
			}
			out = append(out, p)
		}
	}
	return out
}

// Names returns every player name and alias on the roster.
func (r *Roster) Names() []string {
	var out []string
	for _, p := range r.Players() {
		out = append(out, p.Name)
		out = append(out, p.Aliases...)
	}
	return out
}
