package stats

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/mauv0809/dartledger/internal/match"
)

// Aggregate folds every leg of a parsed match into per-player records keyed
// by player name. Unresolved legs count as played but won by nobody.
func Aggregate(m *match.Match) map[string]Record {
	out := make(map[string]Record)
	for _, g := range m.Legs() {
		for _, ls := range LegStats(g) {
			out[ls.Player] = Merge(out[ls.Player], ls.Record())
		}
	}
	return out
}

// Merge combines two records of the same player: counts and sums add,
// maxima take the larger value. It is associative and commutative.
func Merge(a, b Record) Record {
	player := a.Player
	if player == "" {
		player = b.Player
	}
	return Record{
		Player: player,

		X01LegsPlayed:            a.X01LegsPlayed + b.X01LegsPlayed,
		X01LegsWon:               a.X01LegsWon + b.X01LegsWon,
		X01TotalDarts:            a.X01TotalDarts + b.X01TotalDarts,
		X01TotalPoints:           a.X01TotalPoints + b.X01TotalPoints,
		X01First9Darts:           a.X01First9Darts + b.X01First9Darts,
		X01First9Points:          a.X01First9Points + b.X01First9Points,
		X01Tons:                  a.X01Tons + b.X01Tons,
		X01Ton40s:                a.X01Ton40s + b.X01Ton40s,
		X01Ton80s:                a.X01Ton80s + b.X01Ton80s,
		X01HighTurn:              max(a.X01HighTurn, b.X01HighTurn),
		X01HighCheckout:          max(a.X01HighCheckout, b.X01HighCheckout),
		X01CheckoutsHit:          a.X01CheckoutsHit + b.X01CheckoutsHit,
		X01CheckoutTotals:        a.X01CheckoutTotals + b.X01CheckoutTotals,
		X01CheckoutDarts:         a.X01CheckoutDarts + b.X01CheckoutDarts,
		X01CheckoutOpportunities: a.X01CheckoutOpportunities + b.X01CheckoutOpportunities,

		CricketLegsPlayed:     a.CricketLegsPlayed + b.CricketLegsPlayed,
		CricketLegsWon:        a.CricketLegsWon + b.CricketLegsWon,
		CricketTotalDarts:     a.CricketTotalDarts + b.CricketTotalDarts,
		CricketTotalMarks:     a.CricketTotalMarks + b.CricketTotalMarks,
		CricketTotalRounds:    a.CricketTotalRounds + b.CricketTotalRounds,
		CricketHighMarkRound:  max(a.CricketHighMarkRound, b.CricketHighMarkRound),
		CricketFiveMarkRounds: a.CricketFiveMarkRounds + b.CricketFiveMarkRounds,
	}
}

// MergeAll merges next into a copy of prev and returns the new snapshot.
// Neither input is modified.
func MergeAll(prev, next map[string]Record) map[string]Record {
	out := make(map[string]Record, len(prev)+len(next))
	for k, r := range prev {
		out[k] = r
	}
	for k, r := range next {
		out[k] = Merge(out[k], r)
	}
	return out
}

// Sorted returns the records ordered by player name.
func Sorted(records map[string]Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Player < out[j].Player
	})
	return out
}

// LegsPlayed returns legs played across both formats.
func (r Record) LegsPlayed() int {
	return r.X01LegsPlayed + r.CricketLegsPlayed
}

// ThreeDartAverage is points per dart times three.
func (r Record) ThreeDartAverage() float64 {
	return ratio(r.X01TotalPoints*3, r.X01TotalDarts)
}

// First9Average is the three-dart average over each leg's first nine darts.
func (r Record) First9Average() float64 {
	return ratio(r.X01First9Points*3, r.X01First9Darts)
}

// AverageFinish is the mean checkout value.
func (r Record) AverageFinish() float64 {
	return ratio(r.X01CheckoutTotals, r.X01CheckoutsHit)
}

// CheckoutPercentage is checkouts hit per finishable visit, as a percentage.
func (r Record) CheckoutPercentage() float64 {
	return ratio(r.X01CheckoutsHit*100, r.X01CheckoutOpportunities)
}

// MarksPerRound is cricket marks per turn.
func (r Record) MarksPerRound() float64 {
	return ratio(r.CricketTotalMarks, r.CricketTotalRounds)
}

// MarshalJSON adds the derived rates to the stored fields.
func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	return json.Marshal(struct {
		plain
		ThreeDartAverage   float64 `json:"x01_three_dart_avg"`
		First9Average      float64 `json:"x01_first9_avg"`
		AverageFinish      float64 `json:"x01_avg_finish"`
		CheckoutPercentage float64 `json:"x01_checkout_pct"`
		MarksPerRound      float64 `json:"cricket_mpr"`
	}{
		plain:              plain(r),
		ThreeDartAverage:   round2(r.ThreeDartAverage()),
		First9Average:      round2(r.First9Average()),
		AverageFinish:      round2(r.AverageFinish()),
		CheckoutPercentage: round2(r.CheckoutPercentage()),
		MarksPerRound:      round2(r.MarksPerRound()),
	})
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
