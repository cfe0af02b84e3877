package processor

import (
	"errors"
	"sync"

	"github.com/mauv0809/dartledger/internal/match"
	"github.com/mauv0809/dartledger/internal/metrics"
	"github.com/mauv0809/dartledger/internal/parser"
	"github.com/mauv0809/dartledger/internal/pubsub"
	"github.com/mauv0809/dartledger/internal/stats"
)

// ErrDuplicateTranscript is returned when the same transcript bytes were
// imported before.
var ErrDuplicateTranscript = errors.New("transcript already imported")

// Processor runs the import pipeline: normalize, parse, aggregate, then
// resolve players and merge their stats into the league snapshot.
type Processor struct {
	store        Store
	pubsub       pubsub.PubSubClient
	metrics      metrics.Metrics
	counters     metrics.MetricsStore
	autoRegister bool
	workers      int

	// commitMu serializes the duplicate check, match save and stats merge
	// of concurrent imports.
	commitMu sync.Mutex
}

// Options tunes a Processor.
type Options struct {
	// Counters persists import counters; nil disables them.
	Counters metrics.MetricsStore
	// AutoRegister adds players that match no registered name or alias.
	AutoRegister bool
	// Workers bounds parallel parsing in ImportBatch. Values below one mean one.
	Workers int
}

// Transcript is a named raw transcript.
type Transcript struct {
	Name string
	Data []byte
}

// ImportResult describes one imported (or dry-run) transcript.
type ImportResult struct {
	MatchID  string                   `json:"match_id,omitempty"`
	Source   string                   `json:"source"`
	Digest   string                   `json:"digest"`
	DryRun   bool                     `json:"dry_run,omitempty"`
	Matches  []*match.Match           `json:"matches"`
	Warnings []parser.Warning         `json:"warnings"`
	Records  []stats.Record           `json:"records"`
	Legs     [][]stats.PlayerLegStats `json:"legs"`
}

// BatchItem is the outcome of one transcript in a batch import.
type BatchItem struct {
	Name   string        `json:"name"`
	Result *ImportResult `json:"result,omitempty"`
	Err    error         `json:"-"`
}

// MergePlayerStatsEvent carries one import's per-player records, keyed by
// transcript name, to the stats merge.
type MergePlayerStatsEvent struct {
	MatchID string         `json:"match_id"`
	Records []stats.Record `json:"records"`
}
