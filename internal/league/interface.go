package league

import "github.com/mauv0809/dartledger/internal/stats"

// Store defines the interface for the league's persisted state: the player
// directory, the cumulative stats snapshot and the imported matches.
type Store interface {
	AddPlayer(playerID, name, team string, aliases ...string) (string, error)
	UpsertPlayers(players []PlayerInfo) error
	GetAllPlayers() ([]PlayerInfo, error)
	KnownNames() ([]string, error)
	ResolvePlayer(name string) (*PlayerInfo, error)
	MergePlayerStats(matchID string, records map[string]stats.Record) error
	GetPlayerStats(order StatsOrder) ([]PlayerStats, error)
	GetPlayerStatsByName(playerName string) (*PlayerStats, error)
	SaveMatch(m *ImportedMatch) error
	HasDigest(digest string) (bool, error)
	GetMatch(matchID string) (*ImportedMatch, error)
	GetAllMatches() ([]ImportedMatch, error)
	Clear() error
	ClearMatch(matchID string) error
}
