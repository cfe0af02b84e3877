package processor

import (
	"github.com/mauv0809/dartledger/internal/league"
	"github.com/mauv0809/dartledger/internal/stats"
)

// Store defines the database operations required by the processor.
type Store interface {
	KnownNames() ([]string, error)
	ResolvePlayer(name string) (*league.PlayerInfo, error)
	AddPlayer(playerID, name, team string, aliases ...string) (string, error)
	MergePlayerStats(matchID string, records map[string]stats.Record) error
	SaveMatch(m *league.ImportedMatch) error
	HasDigest(digest string) (bool, error)
	ClearMatch(matchID string) error
}
