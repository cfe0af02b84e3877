package parser

import (
	"fmt"

	"github.com/mauv0809/dartledger/internal/match"
)

const (
	defaultStartingScore = 501
	defaultCheckoutDarts = 3
	maxVisitScore        = 180
	maxCheckout          = 170
)

// x01Half is one side's tuple on an x01 line.
type x01Half struct {
	player    string
	score     int
	remaining int
	bust      bool
	milestone string
}

// ParseX01Leg rebuilds a countdown leg from its raw lines. It returns nil
// when no line yields a turn.
func ParseX01Leg(meta LegMeta, lines []Line, known KnownNames) (*match.Game, []Warning) {
	l := newLegState(meta, known, match.FormatX01)
	if l.game.StartingScore == 0 {
		l.game.StartingScore = defaultStartingScore
	}
	checkoutDarts := legCheckoutDarts(lines, known)

	for _, line := range lines {
		switch classifyLine(line.Text) {
		case lineHeader:
			continue
		case lineTrailer:
			l.trailer = true
			continue
		}
		if l.game.Resolved() {
			continue
		}
		toks := Tokenize(line.Text, match.FormatX01, known)
		if len(toks) < minDataTokens {
			continue
		}
		l.parseX01Line(line, toks, checkoutDarts)
	}

	game, warnings := l.finish()
	if game != nil && !game.Resolved() {
		warnings = append(warnings, legWarning(WarningUnresolvedWinner, meta, meta.Header, "no checkout found"))
	}
	return game, warnings
}

// legCheckoutDarts finds the leg's single DO(n) marker. Without one the
// finishing visit is assumed to use all three darts.
func legCheckoutDarts(lines []Line, known KnownNames) int {
	for _, line := range lines {
		for _, tok := range Tokenize(line.Text, match.FormatX01, known) {
			if tok.Kind == KindCheckoutDarts && tok.Value >= 1 && tok.Value <= 3 {
				return tok.Value
			}
		}
	}
	return defaultCheckoutDarts
}

func (l *legState) parseX01Line(line Line, toks []Token, checkoutDarts int) {
	c := NewCursor(toks)
	lead := skipAnnotations(c)

	var round int
	home, hasHome := acceptX01Home(c, &round)
	if !hasHome {
		mark := c.Mark()
		tok, ok := c.Accept(KindInteger)
		if !ok || !c.PeekKind(KindInteger) {
			c.Reset(mark)
			l.warn(WarningLine, line, "line matches neither home nor away tuple")
			return
		}
		round = tok.Value
	} else {
		home.milestone = lead
	}
	away, hasAway := acceptX01Away(c)
	if hasAway {
		away.milestone = trailingX01Milestone(c)
	}

	if !hasHome && !hasAway {
		l.warn(WarningLine, line, "line matches neither home nor away tuple")
		return
	}
	if msg := l.checkRound(round); msg != "" {
		l.warn(WarningLine, line, "%s (round %d after %d)", msg, round, l.lastRound)
		return
	}

	if hasHome {
		if msg := l.checkX01Half(home); msg != "" {
			l.warn(WarningLine, line, "home: %s", msg)
		} else {
			l.recordX01(match.SideHome, home, round, checkoutDarts)
			if l.game.Resolved() {
				return
			}
		}
	}
	if hasAway {
		if msg := l.checkX01Half(away); msg != "" {
			l.warn(WarningLine, line, "away: %s", msg)
		} else {
			l.recordX01(match.SideAway, away, round, checkoutDarts)
		}
	}
}

// skipAnnotations consumes leading highlight and checkout markers and
// returns the last highlight seen.
func skipAnnotations(c *Cursor) string {
	var milestone string
	for {
		if tok, ok := c.Accept(KindMilestone); ok {
			milestone = tok.Text
			continue
		}
		if _, ok := c.Accept(KindCheckoutDarts); ok {
			continue
		}
		return milestone
	}
}

// acceptX01Home matches (PlayerName, Score|X, Remaining, Round).
func acceptX01Home(c *Cursor, round *int) (x01Half, bool) {
	mark := c.Mark()
	name, ok := c.Accept(KindPlayerName)
	if !ok {
		return x01Half{}, false
	}
	score, ok := c.Accept(KindInteger, KindBust)
	if !ok {
		c.Reset(mark)
		return x01Half{}, false
	}
	remaining, ok := c.Accept(KindInteger)
	if !ok {
		c.Reset(mark)
		return x01Half{}, false
	}
	rnd, ok := c.Accept(KindInteger)
	if !ok {
		c.Reset(mark)
		return x01Half{}, false
	}
	*round = rnd.Value
	return newX01Half(name, score, remaining), true
}

// acceptX01Away matches (Remaining, Score|X, PlayerName).
func acceptX01Away(c *Cursor) (x01Half, bool) {
	mark := c.Mark()
	remaining, ok := c.Accept(KindInteger)
	if !ok {
		return x01Half{}, false
	}
	score, ok := c.Accept(KindInteger, KindBust)
	if !ok {
		c.Reset(mark)
		return x01Half{}, false
	}
	name, ok := c.Accept(KindPlayerName)
	if !ok {
		c.Reset(mark)
		return x01Half{}, false
	}
	return newX01Half(name, score, remaining), true
}

func newX01Half(name, score, remaining Token) x01Half {
	h := x01Half{player: name.Text, remaining: remaining.Value}
	if score.Kind == KindBust {
		h.bust = true
	} else {
		h.score = score.Value
	}
	return h
}

// trailingX01Milestone reads a highlight score printed after the away name.
func trailingX01Milestone(c *Cursor) string {
	var milestone string
	for !c.Done() {
		tok, _ := c.Next()
		if tok.Kind == KindInteger && tok.Value >= 50 && tok.Value <= maxVisitScore {
			milestone = tok.Text
		}
	}
	return milestone
}

func (l *legState) checkX01Half(h x01Half) string {
	switch {
	case h.score > maxVisitScore:
		return fmt.Sprintf("score %d exceeds %d", h.score, maxVisitScore)
	case h.remaining > l.game.StartingScore:
		return fmt.Sprintf("remaining %d exceeds starting score %d", h.remaining, l.game.StartingScore)
	case h.remaining == 1 && !h.bust:
		return "remaining cannot be 1 without a bust"
	case h.remaining == 0 && h.bust:
		return "bust cannot finish the leg"
	case h.remaining == 0 && h.score > maxCheckout:
		return fmt.Sprintf("checkout %d exceeds %d", h.score, maxCheckout)
	}
	return ""
}

func (l *legState) recordX01(side match.Side, h x01Half, round, checkoutDarts int) {
	turn := match.Turn{
		Round:     round,
		Side:      side,
		Player:    h.player,
		Darts:     3,
		X01:       &match.X01Turn{Score: h.score, Remaining: h.remaining},
		Milestone: h.milestone,
		Bust:      h.bust,
	}
	if h.remaining == 0 {
		turn.X01.Checkout = true
		turn.Darts = checkoutDarts
		l.game.Winner = side
		l.game.CheckoutValue = h.score
		l.game.CheckoutDarts = checkoutDarts
	}
	l.record(turn)
}
