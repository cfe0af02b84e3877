package league

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/mauv0809/dartledger/internal/stats"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// statsColumns are the player_stats columns in stats.Record field order.
var statsColumns = []string{
	"x01_legs_played",
	"x01_legs_won",
	"x01_total_darts",
	"x01_total_points",
	"x01_first9_darts",
	"x01_first9_points",
	"x01_tons",
	"x01_ton40s",
	"x01_ton80s",
	"x01_high_turn",
	"x01_high_checkout",
	"x01_checkouts_hit",
	"x01_checkout_totals",
	"x01_checkout_darts",
	"x01_checkout_opportunities",
	"cricket_legs_played",
	"cricket_legs_won",
	"cricket_total_darts",
	"cricket_total_marks",
	"cricket_total_rounds",
	"cricket_high_mark_round",
	"cricket_five_mark_rounds",
}

func statsValues(r stats.Record) []any {
	return []any{
		r.X01LegsPlayed,
		r.X01LegsWon,
		r.X01TotalDarts,
		r.X01TotalPoints,
		r.X01First9Darts,
		r.X01First9Points,
		r.X01Tons,
		r.X01Ton40s,
		r.X01Ton80s,
		r.X01HighTurn,
		r.X01HighCheckout,
		r.X01CheckoutsHit,
		r.X01CheckoutTotals,
		r.X01CheckoutDarts,
		r.X01CheckoutOpportunities,
		r.CricketLegsPlayed,
		r.CricketLegsWon,
		r.CricketTotalDarts,
		r.CricketTotalMarks,
		r.CricketTotalRounds,
		r.CricketHighMarkRound,
		r.CricketFiveMarkRounds,
	}
}

func statsDest(r *stats.Record) []any {
	return []any{
		&r.X01LegsPlayed,
		&r.X01LegsWon,
		&r.X01TotalDarts,
		&r.X01TotalPoints,
		&r.X01First9Darts,
		&r.X01First9Points,
		&r.X01Tons,
		&r.X01Ton40s,
		&r.X01Ton80s,
		&r.X01HighTurn,
		&r.X01HighCheckout,
		&r.X01CheckoutsHit,
		&r.X01CheckoutTotals,
		&r.X01CheckoutDarts,
		&r.X01CheckoutOpportunities,
		&r.CricketLegsPlayed,
		&r.CricketLegsWon,
		&r.CricketTotalDarts,
		&r.CricketTotalMarks,
		&r.CricketTotalRounds,
		&r.CricketHighMarkRound,
		&r.CricketFiveMarkRounds,
	}
}

// statsSelect returns the stats columns qualified with alias. With coalesce
// set, missing rows of a LEFT JOIN read as zero.
func statsSelect(alias string, coalesce bool) []string {
	out := make([]string, len(statsColumns))
	for i, c := range statsColumns {
		if coalesce {
			out[i] = fmt.Sprintf("COALESCE(%s.%s, 0)", alias, c)
		} else {
			out[i] = alias + "." + c
		}
	}
	return out
}

// upsertSuffix overwrites every column with the inserted value on a key conflict.
func upsertSuffix(key string, columns []string) string {
	sets := make([]string, len(columns))
	for i, c := range columns {
		sets[i] = fmt.Sprintf("%s = excluded.%s", c, c)
	}
	return fmt.Sprintf("ON CONFLICT(%s) DO UPDATE SET %s", key, strings.Join(sets, ", "))
}

// ParseStatsOrder validates a leaderboard ordering; empty selects OrderByName.
func ParseStatsOrder(s string) (StatsOrder, error) {
	switch o := StatsOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OrderByName, nil
	case OrderByName, OrderByLegsWon, OrderByAverage, OrderByMarksPerRound:
		return o, nil
	default:
		return "", fmt.Errorf("unknown stats order %q", s)
	}
}

func orderClauses(order StatsOrder) []string {
	switch order {
	case OrderByLegsWon:
		return []string{"(ps.x01_legs_won + ps.cricket_legs_won) DESC", "p.name"}
	case OrderByAverage:
		return []string{"CAST(ps.x01_total_points AS REAL) / NULLIF(ps.x01_total_darts, 0) DESC", "p.name"}
	case OrderByMarksPerRound:
		return []string{"CAST(ps.cricket_total_marks AS REAL) / NULLIF(ps.cricket_total_rounds, 0) DESC", "p.name"}
	default:
		return []string{"p.name"}
	}
}
