package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	TranscriptsParsed  prometheus.Counter
	TranscriptsFailed  prometheus.Counter
	LegsParsed         *prometheus.CounterVec
	ParseWarnings      *prometheus.CounterVec
	ParseDuration      prometheus.Histogram
	StatsMerged        prometheus.Counter
	UnresolvedPlayers  prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
