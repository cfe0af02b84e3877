package metrics

// Metrics defines the interface for collecting application metrics.
type Metrics interface {
	IncTranscriptsParsed()
	IncTranscriptsFailed()
	IncLegsParsed(format string)
	IncParseWarnings(kind string, n int)
	ObserveParseDuration(duration float64)
	IncStatsMerged(players int)
	IncUnresolvedPlayers()
	SetStartupTime(duration float64)
}

// MetricsStore persists running counters so they survive restarts.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
