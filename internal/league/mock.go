package league

import (
	"sync"

	"github.com/mauv0809/dartledger/internal/stats"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	AddPlayerFunc            func(playerID, name, team string, aliases ...string) (string, error)
	UpsertPlayersFunc        func(players []PlayerInfo) error
	GetAllPlayersFunc        func() ([]PlayerInfo, error)
	KnownNamesFunc           func() ([]string, error)
	ResolvePlayerFunc        func(name string) (*PlayerInfo, error)
	MergePlayerStatsFunc     func(matchID string, records map[string]stats.Record) error
	GetPlayerStatsFunc       func(order StatsOrder) ([]PlayerStats, error)
	GetPlayerStatsByNameFunc func(playerName string) (*PlayerStats, error)
	SaveMatchFunc            func(m *ImportedMatch) error
	HasDigestFunc            func(digest string) (bool, error)
	GetMatchFunc             func(matchID string) (*ImportedMatch, error)
	GetAllMatchesFunc        func() ([]ImportedMatch, error)
	ClearFunc                func() error
	ClearMatchFunc           func(matchID string) error

	// Call records
	AddPlayerCalls        []PlayerInfo
	UpsertPlayersCalls    [][]PlayerInfo
	ResolvePlayerCalls    []string
	MergePlayerStatsCalls []map[string]stats.Record
	GetPlayerStatsCalls   []StatsOrder
	SaveMatchCalls        []*ImportedMatch
	ClearCalls            int
	ClearMatchCalls       []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = nil
	m.UpsertPlayersCalls = nil
	m.ResolvePlayerCalls = nil
	m.MergePlayerStatsCalls = nil
	m.GetPlayerStatsCalls = nil
	m.SaveMatchCalls = nil
	m.ClearCalls = 0
	m.ClearMatchCalls = nil
}

func (m *MockStore) AddPlayer(playerID, name, team string, aliases ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, PlayerInfo{ID: playerID, Name: name, Team: team, Aliases: aliases})
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(playerID, name, team, aliases...)
	}
	if playerID == "" {
		playerID = "player-" + name
	}
	return playerID, nil
}

func (m *MockStore) UpsertPlayers(players []PlayerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) GetAllPlayers() ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) KnownNames() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.KnownNamesFunc != nil {
		return m.KnownNamesFunc()
	}
	return nil, nil
}

func (m *MockStore) ResolvePlayer(name string) (*PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResolvePlayerCalls = append(m.ResolvePlayerCalls, name)
	if m.ResolvePlayerFunc != nil {
		return m.ResolvePlayerFunc(name)
	}
	return nil, ErrNotFound
}

func (m *MockStore) MergePlayerStats(matchID string, records map[string]stats.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MergePlayerStatsCalls = append(m.MergePlayerStatsCalls, records)
	if m.MergePlayerStatsFunc != nil {
		return m.MergePlayerStatsFunc(matchID, records)
	}
	return nil
}

func (m *MockStore) GetPlayerStats(order StatsOrder) ([]PlayerStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayerStatsCalls = append(m.GetPlayerStatsCalls, order)
	if m.GetPlayerStatsFunc != nil {
		return m.GetPlayerStatsFunc(order)
	}
	return nil, nil
}

func (m *MockStore) GetPlayerStatsByName(playerName string) (*PlayerStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerStatsByNameFunc != nil {
		return m.GetPlayerStatsByNameFunc(playerName)
	}
	return nil, ErrNotFound
}

func (m *MockStore) SaveMatch(im *ImportedMatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveMatchCalls = append(m.SaveMatchCalls, im)
	if m.SaveMatchFunc != nil {
		return m.SaveMatchFunc(im)
	}
	if im.ID == "" {
		im.ID = "match-" + im.Digest
	}
	return nil
}

func (m *MockStore) HasDigest(digest string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.HasDigestFunc != nil {
		return m.HasDigestFunc(digest)
	}
	return false, nil
}

func (m *MockStore) GetMatch(matchID string) (*ImportedMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetAllMatches() ([]ImportedMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	return nil
}

func (m *MockStore) ClearMatch(matchID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearMatchCalls = append(m.ClearMatchCalls, matchID)
	if m.ClearMatchFunc != nil {
		return m.ClearMatchFunc(matchID)
	}
	return nil
}
