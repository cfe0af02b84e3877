package match

// Format is the game format of a single leg.
type Format string

const (
	// FormatX01 is a countdown game (301, 501, 701).
	FormatX01 Format = "x01"
	// FormatCricket is a marks game on 15-20 and the bull.
	FormatCricket Format = "cricket"
)

// Side identifies the home or away half of a leg.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	// SideNone marks a leg whose winner could not be determined.
	SideNone Side = ""
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	switch s {
	case SideHome:
		return SideAway
	case SideAway:
		return SideHome
	}
	return SideNone
}

// Match is one match of a transcript. Most transcripts hold a single match;
// multi-match exports hold one per "More Darts!" section.
type Match struct {
	Date     string `json:"date,omitempty"`
	HomeTeam string `json:"home_team,omitempty"`
	AwayTeam string `json:"away_team,omitempty"`
	Sets     []Set  `json:"sets"`
}

// Set groups the legs played under one "Set N" heading.
type Set struct {
	Number int    `json:"number"`
	Games  []Game `json:"games"`
}

// Game is one leg, identified by its set, game and leg numbers.
type Game struct {
	SetNumber     int    `json:"set"`
	GameNumber    int    `json:"game"`
	LegNumber     int    `json:"leg"`
	Format        Format `json:"format"`
	Variant       string `json:"variant,omitempty"`
	StartingScore int    `json:"starting_score,omitempty"`
	Doubles       bool   `json:"doubles,omitempty"`

	HomePlayers []string `json:"home_players"`
	AwayPlayers []string `json:"away_players"`
	Winner      Side     `json:"winner,omitempty"`
	Turns       []Turn   `json:"turns"`

	// X01 only.
	CheckoutValue int `json:"checkout,omitempty"`
	CheckoutDarts int `json:"checkout_darts,omitempty"`

	// Cricket only: last running point totals per side.
	HomePoints int `json:"home_points,omitempty"`
	AwayPoints int `json:"away_points,omitempty"`
}

// Turn is one half-round: a single player's visit to the board.
type Turn struct {
	Round  int    `json:"round"`
	Side   Side   `json:"side"`
	Player string `json:"player"`
	Darts  int    `json:"darts"`

	X01     *X01Turn     `json:"x01,omitempty"`
	Cricket *CricketTurn `json:"cricket,omitempty"`

	// Milestone holds an inline highlight the exporter printed beside the
	// turn, e.g. "180" or "5M".
	Milestone string `json:"milestone,omitempty"`
	Bust      bool   `json:"bust,omitempty"`
}

// X01Turn is the countdown payload of a turn.
type X01Turn struct {
	Score     int  `json:"score"`
	Remaining int  `json:"remaining"`
	Checkout  bool `json:"checkout,omitempty"`
}

// CricketTurn is the marks payload of a turn.
type CricketTurn struct {
	Notation string `json:"notation"`
	Marks    int    `json:"marks"`
	Points   int    `json:"points"`
}
