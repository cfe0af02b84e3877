package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	transcriptsParsed int
	transcriptsFailed int
	legsParsed        map[string]int
	parseWarnings     map[string]int
	parseDurations    []float64
	statsMerged       int
	unresolvedPlayers int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		legsParsed:     make(map[string]int),
		parseWarnings:  make(map[string]int),
		parseDurations: make([]float64, 0),
	}
}

func (m *Mock) IncTranscriptsParsed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcriptsParsed++
}

func (m *Mock) IncTranscriptsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcriptsFailed++
}

func (m *Mock) IncLegsParsed(format string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.legsParsed[format]++
}

func (m *Mock) IncParseWarnings(kind string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parseWarnings[kind] += n
}

func (m *Mock) ObserveParseDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parseDurations = append(m.parseDurations, duration)
}

func (m *Mock) IncStatsMerged(players int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsMerged += players
}

func (m *Mock) IncUnresolvedPlayers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unresolvedPlayers++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// TranscriptsParsed returns the number of times IncTranscriptsParsed was called.
func (m *Mock) TranscriptsParsed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transcriptsParsed
}

// TranscriptsFailed returns the number of times IncTranscriptsFailed was called.
func (m *Mock) TranscriptsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transcriptsFailed
}

// LegsParsed returns the number of legs counted for format.
func (m *Mock) LegsParsed(format string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.legsParsed[format]
}

// ParseWarnings returns the number of warnings counted for kind.
func (m *Mock) ParseWarnings(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.parseWarnings[kind]
}

// ParseDurations returns the number of observed parse durations.
func (m *Mock) ParseDurations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.parseDurations)
}

// StatsMerged returns the total passed to IncStatsMerged.
func (m *Mock) StatsMerged() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statsMerged
}

// UnresolvedPlayers returns the number of times IncUnresolvedPlayers was called.
func (m *Mock) UnresolvedPlayers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unresolvedPlayers
}
