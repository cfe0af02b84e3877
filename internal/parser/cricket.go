package parser

import (
	"slices"

	"github.com/mauv0809/dartledger/internal/match"
)

// closedMarks is the number of marks that closes a cricket target.
const closedMarks = 3

type cricketHalf struct {
	player    string
	notation  string
	points    int
	milestone string
}

type cricketLeg struct {
	*legState
	// board tracks marks per target for each side.
	board map[match.Side]map[string]int
	// closer is the side that closed every target while not trailing.
	closer match.Side
}

// ParseCricketLeg rebuilds a cricket leg from its raw lines. Running point
// totals are taken from the transcript as printed. It returns nil when no
// line yields a turn.
func ParseCricketLeg(meta LegMeta, lines []Line, known KnownNames) (*match.Game, []Warning) {
	k := &cricketLeg{
		legState: newLegState(meta, known, match.FormatCricket),
		board: map[match.Side]map[string]int{
			match.SideHome: {},
			match.SideAway: {},
		},
	}

	for _, line := range lines {
		switch classifyLine(line.Text) {
		case lineHeader:
			continue
		case lineTrailer:
			k.trailer = true
			continue
		}
		if k.closer != match.SideNone {
			continue
		}
		toks := Tokenize(line.Text, match.FormatCricket, known)
		if len(toks) < minDataTokens {
			continue
		}
		k.parseCricketLine(line, toks)
	}

	game, warnings := k.finish()
	if game == nil {
		return nil, warnings
	}
	if !k.resolve() {
		warnings = append(warnings, legWarning(WarningUnresolvedWinner, meta, meta.Header, "leg ends without a side closing out"))
	}
	return game, warnings
}

func (k *cricketLeg) parseCricketLine(line Line, toks []Token) {
	c := NewCursor(toks)
	lead := skipAnnotations(c)

	var round int
	home, hasHome := acceptCricketHome(c, &round)
	if !hasHome {
		mark := c.Mark()
		tok, ok := c.Accept(KindInteger)
		if !ok || !c.PeekKind(KindInteger, KindStart) {
			c.Reset(mark)
			k.warn(WarningLine, line, "line matches neither home nor away tuple")
			return
		}
		round = tok.Value
	} else {
		home.milestone = lead
	}
	away, hasAway := acceptCricketAway(c)
	if hasAway {
		away.milestone = trailingCricketMilestone(c)
	}

	if !hasHome && !hasAway {
		k.warn(WarningLine, line, "line matches neither home nor away tuple")
		return
	}
	if msg := k.checkRound(round); msg != "" {
		k.warn(WarningLine, line, "%s (round %d after %d)", msg, round, k.lastRound)
		return
	}

	if hasHome {
		if err := k.recordCricket(match.SideHome, home, round); err != nil {
			k.warn(WarningLine, line, "home: %v", err)
		} else if k.closer != match.SideNone {
			return
		}
	}
	if hasAway {
		if err := k.recordCricket(match.SideAway, away, round); err != nil {
			k.warn(WarningLine, line, "away: %v", err)
		}
	}
}

// acceptCricketHome matches (PlayerName, Marks, Points|Start, Round).
func acceptCricketHome(c *Cursor, round *int) (cricketHalf, bool) {
	mark := c.Mark()
	name, ok := c.Accept(KindPlayerName)
	if !ok {
		return cricketHalf{}, false
	}
	notation, ok := c.Accept(KindMarkNotation)
	if !ok {
		c.Reset(mark)
		return cricketHalf{}, false
	}
	points, ok := c.Accept(KindInteger, KindStart)
	if !ok {
		c.Reset(mark)
		return cricketHalf{}, false
	}
	rnd, ok := c.Accept(KindInteger)
	if !ok {
		c.Reset(mark)
		return cricketHalf{}, false
	}
	*round = rnd.Value
	return cricketHalf{player: name.Text, notation: notation.Text, points: points.Value}, true
}

// acceptCricketAway matches (Points|Start, Marks, PlayerName).
func acceptCricketAway(c *Cursor) (cricketHalf, bool) {
	mark := c.Mark()
	points, ok := c.Accept(KindInteger, KindStart)
	if !ok {
		return cricketHalf{}, false
	}
	notation, ok := c.Accept(KindMarkNotation)
	if !ok {
		c.Reset(mark)
		return cricketHalf{}, false
	}
	name, ok := c.Accept(KindPlayerName)
	if !ok {
		c.Reset(mark)
		return cricketHalf{}, false
	}
	return cricketHalf{player: name.Text, notation: notation.Text, points: points.Value}, true
}

func trailingCricketMilestone(c *Cursor) string {
	var milestone string
	for !c.Done() {
		if tok, _ := c.Next(); tok.Kind == KindMilestone {
			milestone = tok.Text
		}
	}
	return milestone
}

func (k *cricketLeg) recordCricket(side match.Side, h cricketHalf, round int) error {
	hits, err := ParseHits(h.notation)
	if err != nil {
		return err
	}
	marks := 0
	for _, hit := range hits {
		marks += hit.Marks
		if slices.Contains(cricketTargets, hit.Target) {
			k.board[side][hit.Target] += hit.Marks
		}
	}

	k.record(match.Turn{
		Round:  round,
		Side:   side,
		Player: h.player,
		Darts:  3,
		Cricket: &match.CricketTurn{
			Notation: h.notation,
			Marks:    marks,
			Points:   h.points,
		},
		Milestone: h.milestone,
	})

	if side == match.SideHome {
		k.game.HomePoints = h.points
	} else {
		k.game.AwayPoints = h.points
	}
	if k.closedAll(side) && k.points(side) >= k.points(side.Opponent()) {
		k.closer = side
	}
	return nil
}

func (k *cricketLeg) closedAll(side match.Side) bool {
	for _, target := range cricketTargets {
		if k.board[side][target] < closedMarks {
			return false
		}
	}
	return true
}

func (k *cricketLeg) points(side match.Side) int {
	if side == match.SideAway {
		return k.game.AwayPoints
	}
	return k.game.HomePoints
}

// resolve sets the winner from the final running points, provided the
// transcript shows the leg actually finished: a side closed out, a summary
// line follows the last turn, or only one side threw in the final round.
// Ties go to the side that threw last in a one-sided round, else home.
func (k *cricketLeg) resolve() bool {
	if k.closer != match.SideNone {
		k.game.Winner = k.closer
		return true
	}
	lastSide, oneSided := k.lastRoundOneSided()
	if !k.trailer && !oneSided {
		return false
	}
	switch {
	case k.game.HomePoints > k.game.AwayPoints:
		k.game.Winner = match.SideHome
	case k.game.AwayPoints > k.game.HomePoints:
		k.game.Winner = match.SideAway
	case oneSided:
		k.game.Winner = lastSide
	default:
		k.game.Winner = match.SideHome
	}
	return true
}
