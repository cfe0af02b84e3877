package http

import (
	"net/http"

	"github.com/mauv0809/dartledger/internal/config"
	"github.com/mauv0809/dartledger/internal/league"
	"github.com/mauv0809/dartledger/internal/metrics"
	"github.com/mauv0809/dartledger/internal/processor"
	"github.com/mauv0809/dartledger/internal/pubsub"
)

// NewServer wires the API routes. pubsub may be nil when stats merges run inline.
func NewServer(store league.Store, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/import", Chain(s.ImportHandler(), paramsMiddleware, allowMethods(http.MethodPost), limitBody(maxTranscriptBytes)))
	s.Router.Handle("/stats", Chain(s.LeaderboardHandler(), paramsMiddleware, allowMethods(http.MethodGet)))
	s.Router.Handle("/stats/player", Chain(s.PlayerStatsHandler(), paramsMiddleware, allowMethods(http.MethodGet)))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware, allowMethods(http.MethodGet)))
	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware, allowMethods(http.MethodGet)))
	s.Router.Handle("/matches/get", Chain(s.GetMatchHandler(), paramsMiddleware, allowMethods(http.MethodGet)))
	s.Router.Handle("/pubsub/"+string(pubsub.EventMergePlayerStats), Chain(s.MergePlayerStatsHandler(), paramsMiddleware, allowMethods(http.MethodPost)))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware, allowMethods(http.MethodPost)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
