package match

// Legs returns every leg in the match in transcript order.
func (m *Match) Legs() []*Game {
	var legs []*Game
	for i := range m.Sets {
		for j := range m.Sets[i].Games {
			legs = append(legs, &m.Sets[i].Games[j])
		}
	}
	return legs
}

// Players returns the distinct player names across all legs, home roster
// names first in order of appearance.
func (m *Match) Players() []string {
	seen := make(map[string]bool)
	var names []string
	for _, g := range m.Legs() {
		for _, n := range append(append([]string{}, g.HomePlayers...), g.AwayPlayers...) {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

// Roster returns the player names for one side of the leg.
func (g *Game) Roster(side Side) []string {
	if side == SideAway {
		return g.AwayPlayers
	}
	return g.HomePlayers
}

// SideOf reports which side a player threw for in this leg.
func (g *Game) SideOf(player string) (Side, bool) {
	for _, n := range g.HomePlayers {
		if n == player {
			return SideHome, true
		}
	}
	for _, n := range g.AwayPlayers {
		if n == player {
			return SideAway, true
		}
	}
	return SideNone, false
}

// TurnsFor returns the turns thrown by one side, in order.
func (g *Game) TurnsFor(side Side) []Turn {
	var turns []Turn
	for _, t := range g.Turns {
		if t.Side == side {
			turns = append(turns, t)
		}
	}
	return turns
}

// Resolved reports whether the leg has a winner.
func (g *Game) Resolved() bool {
	return g.Winner == SideHome || g.Winner == SideAway
}
