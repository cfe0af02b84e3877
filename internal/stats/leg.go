package stats

import "github.com/mauv0809/dartledger/internal/match"

const (
	first9Turns    = 3
	maxCheckout    = 170
	fiveMarkRound  = 5
	tonThreshold   = 100
	ton40Threshold = 140
	ton80Score     = 180
)

// bogeys are the totals at or below 170 that cannot be finished in three
// darts with a double.
var bogeys = map[int]bool{169: true, 168: true, 166: true, 165: true, 163: true, 162: true, 159: true}

// LegStats sums each player's turns within one leg, in roster order.
func LegStats(g *match.Game) []PlayerLegStats {
	var out []PlayerLegStats
	index := make(map[string]int)
	for _, side := range []match.Side{match.SideHome, match.SideAway} {
		for _, name := range g.Roster(side) {
			index[name] = len(out)
			out = append(out, PlayerLegStats{
				Player: name,
				Side:   side,
				Format: g.Format,
				Won:    g.Resolved() && g.Winner == side,
			})
		}
	}

	for _, turn := range g.Turns {
		i, ok := index[turn.Player]
		if !ok {
			continue
		}
		ls := &out[i]
		ls.Darts += turn.Darts

		switch {
		case turn.X01 != nil:
			ls.addX01(turn)
		case turn.Cricket != nil:
			ls.addCricket(turn)
		}
		ls.Rounds++
	}
	return out
}

func (ls *PlayerLegStats) addX01(turn match.Turn) {
	score := turn.X01.Score
	if ls.Rounds < first9Turns {
		ls.First9Darts += turn.Darts
		ls.First9Points += score
	}
	ls.Points += score

	switch {
	case score == ton80Score:
		ls.Ton80s++
	case score >= ton40Threshold:
		ls.Ton40s++
	case score >= tonThreshold:
		ls.Tons++
	}

	before := turn.X01.Remaining + score
	if before >= 2 && before <= maxCheckout && !bogeys[before] {
		ls.CheckoutOpportunities++
	}

	if turn.X01.Checkout {
		ls.CheckoutValue = score
		ls.CheckoutDarts = turn.Darts
		return
	}
	if score > ls.HighTurn {
		ls.HighTurn = score
	}
}

func (ls *PlayerLegStats) addCricket(turn match.Turn) {
	marks := turn.Cricket.Marks
	ls.Marks += marks
	if marks > ls.HighMarkRound {
		ls.HighMarkRound = marks
	}
	if marks >= fiveMarkRound {
		ls.FiveMarkRounds++
	}
}

// Record converts one leg's totals into a single-leg cumulative record.
func (ls PlayerLegStats) Record() Record {
	r := Record{Player: ls.Player}
	won := 0
	if ls.Won {
		won = 1
	}

	switch ls.Format {
	case match.FormatX01:
		r.X01LegsPlayed = 1
		r.X01LegsWon = won
		r.X01TotalDarts = ls.Darts
		r.X01TotalPoints = ls.Points
		r.X01First9Darts = ls.First9Darts
		r.X01First9Points = ls.First9Points
		r.X01Tons = ls.Tons
		r.X01Ton40s = ls.Ton40s
		r.X01Ton80s = ls.Ton80s
		r.X01HighTurn = ls.HighTurn
		r.X01CheckoutOpportunities = ls.CheckoutOpportunities
		if ls.CheckoutValue > 0 {
			r.X01HighCheckout = ls.CheckoutValue
			r.X01CheckoutsHit = 1
			r.X01CheckoutTotals = ls.CheckoutValue
			r.X01CheckoutDarts = ls.CheckoutDarts
		}
	case match.FormatCricket:
		r.CricketLegsPlayed = 1
		r.CricketLegsWon = won
		r.CricketTotalDarts = ls.Darts
		r.CricketTotalMarks = ls.Marks
		r.CricketTotalRounds = ls.Rounds
		r.CricketHighMarkRound = ls.HighMarkRound
		r.CricketFiveMarkRounds = ls.FiveMarkRounds
	}
	return r
}
