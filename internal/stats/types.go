package stats

import "github.com/mauv0809/dartledger/internal/match"

// Record is a player's cumulative, mergeable statistics. It holds only
// counts, sums and maxima; rates are derived on read.
type Record struct {
	Player string `json:"player"`

	X01LegsPlayed            int `json:"x01_legs_played"`
	X01LegsWon               int `json:"x01_legs_won"`
	X01TotalDarts            int `json:"x01_total_darts"`
	X01TotalPoints           int `json:"x01_total_points"`
	X01First9Darts           int `json:"x01_first9_darts"`
	X01First9Points          int `json:"x01_first9_points"`
	X01Tons                  int `json:"x01_tons"`
	X01Ton40s                int `json:"x01_ton40s"`
	X01Ton80s                int `json:"x01_ton80s"`
	X01HighTurn              int `json:"x01_high_turn"`
	X01HighCheckout          int `json:"x01_high_checkout"`
	X01CheckoutsHit          int `json:"x01_checkouts_hit"`
	X01CheckoutTotals        int `json:"x01_checkout_totals"`
	X01CheckoutDarts         int `json:"x01_checkout_darts"`
	X01CheckoutOpportunities int `json:"x01_checkout_opportunities"`

	CricketLegsPlayed     int `json:"cricket_legs_played"`
	CricketLegsWon        int `json:"cricket_legs_won"`
	CricketTotalDarts     int `json:"cricket_total_darts"`
	CricketTotalMarks     int `json:"cricket_total_marks"`
	CricketTotalRounds    int `json:"cricket_total_rounds"`
	CricketHighMarkRound  int `json:"cricket_high_mark_round"`
	CricketFiveMarkRounds int `json:"cricket_five_mark_rounds"`
}

// PlayerLegStats is one player's totals within a single leg.
type PlayerLegStats struct {
	Player string       `json:"player"`
	Side   match.Side   `json:"side"`
	Format match.Format `json:"format"`
	Won    bool         `json:"won"`

	Darts  int `json:"darts"`
	Points int `json:"points,omitempty"`
	Marks  int `json:"marks,omitempty"`
	Rounds int `json:"rounds"`

	First9Darts           int `json:"first9_darts,omitempty"`
	First9Points          int `json:"first9_points,omitempty"`
	HighTurn              int `json:"high_turn,omitempty"`
	Tons                  int `json:"tons,omitempty"`
	Ton40s                int `json:"ton40s,omitempty"`
	Ton80s                int `json:"ton80s,omitempty"`
	CheckoutValue         int `json:"checkout,omitempty"`
	CheckoutDarts         int `json:"checkout_darts,omitempty"`
	CheckoutOpportunities int `json:"checkout_opportunities,omitempty"`

	HighMarkRound  int `json:"high_mark_round,omitempty"`
	FiveMarkRounds int `json:"five_mark_rounds,omitempty"`
}
