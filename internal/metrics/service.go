package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		TranscriptsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "darts_transcripts_parsed_total",
			Help: "The total number of transcripts parsed successfully.",
		}),
		TranscriptsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "darts_transcripts_failed_total",
			Help: "The total number of transcripts rejected during normalization or import.",
		}),
		LegsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "darts_legs_parsed_total",
			Help: "The total number of legs parsed, by game format.",
		}, []string{"format"}),
		ParseWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "darts_parse_warnings_total",
			Help: "The total number of non-fatal parse warnings, by kind.",
		}, []string{"kind"}),
		ParseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "darts_transcript_parse_duration_seconds",
			Help:    "The duration of parsing a single transcript.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		StatsMerged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "darts_player_stats_merged_total",
			Help: "The total number of player records merged into the stats snapshot.",
		}),
		UnresolvedPlayers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "darts_unresolved_players_total",
			Help: "The total number of transcript names that matched no registered player.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "darts_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.TranscriptsParsed,
		s.TranscriptsFailed,
		s.LegsParsed,
		s.ParseWarnings,
		s.ParseDuration,
		s.StatsMerged,
		s.UnresolvedPlayers,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncTranscriptsParsed() {
	s.TranscriptsParsed.Inc()
}

func (s *Service) IncTranscriptsFailed() {
	s.TranscriptsFailed.Inc()
}

func (s *Service) IncLegsParsed(format string) {
	s.LegsParsed.WithLabelValues(format).Inc()
}

func (s *Service) IncParseWarnings(kind string, n int) {
	s.ParseWarnings.WithLabelValues(kind).Add(float64(n))
}

func (s *Service) ObserveParseDuration(duration float64) {
	s.ParseDuration.Observe(duration)
}

func (s *Service) IncStatsMerged(players int) {
	s.StatsMerged.Add(float64(players))
}

func (s *Service) IncUnresolvedPlayers() {
	s.UnresolvedPlayers.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
