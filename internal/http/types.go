package http

import (
	"net/http"

	"github.com/mauv0809/dartledger/internal/config"
	"github.com/mauv0809/dartledger/internal/league"
	"github.com/mauv0809/dartledger/internal/metrics"
	"github.com/mauv0809/dartledger/internal/processor"
	"github.com/mauv0809/dartledger/internal/pubsub"
)

type Server struct {
	Store          league.Store
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// pushEnvelope is the JSON body of a Pub/Sub push delivery.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"` // base64-encoded msgpack payload
	} `json:"message"`
}

// errorResponse is the JSON body of every failed API call.
type errorResponse struct {
	Error string `json:"error"`
}
