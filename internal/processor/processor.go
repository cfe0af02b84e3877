package processor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/dartledger/internal/league"
	"github.com/mauv0809/dartledger/internal/metrics"
	"github.com/mauv0809/dartledger/internal/parser"
	"github.com/mauv0809/dartledger/internal/pubsub"
	"github.com/mauv0809/dartledger/internal/stats"
	"golang.org/x/sync/errgroup"
)

// New creates a new Processor. With a nil pubsub client the stats merge runs
// inline at the end of each import.
func New(store Store, metrics metrics.Metrics, pubsub pubsub.PubSubClient, opts Options) *Processor {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		store:        store,
		pubsub:       pubsub,
		metrics:      metrics,
		counters:     opts.Counters,
		autoRegister: opts.AutoRegister,
		workers:      workers,
	}
}

type parsed struct {
	name   string
	digest string
	result *parser.Result
	err    error
}

// Import parses a single transcript and, unless dryRun is set, records the
// match and merges its stats.
func (p *Processor) Import(ctx context.Context, name string, raw []byte, dryRun bool) (*ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	known, err := p.knownNames()
	if err != nil {
		return nil, err
	}
	pr := p.parse(name, raw, known)
	if pr.err != nil {
		return nil, pr.err
	}
	return p.commit(pr, dryRun)
}

// ImportBatch parses transcripts in parallel and commits them one at a time
// in input order. A failing transcript does not stop the batch; only a
// cancelled context does.
func (p *Processor) ImportBatch(ctx context.Context, transcripts []Transcript, dryRun bool) ([]BatchItem, error) {
	known, err := p.knownNames()
	if err != nil {
		return nil, err
	}

	results := make([]parsed, len(transcripts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, t := range transcripts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.parse(t.Name, t.Data, known)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info("Parsed transcript batch", "count", len(transcripts), "workers", p.workers)

	items := make([]BatchItem, len(results))
	for i, pr := range results {
		if err := ctx.Err(); err != nil {
			return items[:i], err
		}
		items[i] = BatchItem{Name: pr.name, Err: pr.err}
		if pr.err != nil {
			continue
		}
		items[i].Result, items[i].Err = p.commit(pr, dryRun)
	}
	return items, nil
}

func (p *Processor) knownNames() (parser.KnownNames, error) {
	names, err := p.store.KnownNames()
	if err != nil {
		return parser.KnownNames{}, fmt.Errorf("failed to load known player names: %w", err)
	}
	return parser.NewKnownNames(names...), nil
}

func (p *Processor) parse(name string, raw []byte, known parser.KnownNames) parsed {
	sum := sha256.Sum256(raw)
	pr := parsed{name: name, digest: hex.EncodeToString(sum[:])}

	start := time.Now()
	res, err := parser.New(known).Parse(raw)
	if err != nil {
		log.Error("Failed to parse transcript", "source", name, "error", err)
		p.metrics.IncTranscriptsFailed()
		p.increment(metrics.KeyTranscriptsRejected)
		pr.err = fmt.Errorf("failed to parse %s: %w", name, err)
		return pr
	}
	p.metrics.ObserveParseDuration(time.Since(start).Seconds())
	p.metrics.IncTranscriptsParsed()

	legs := res.Legs()
	for _, g := range legs {
		p.metrics.IncLegsParsed(string(g.Format))
	}
	byKind := make(map[parser.WarningKind]int)
	for _, w := range res.Warnings {
		byKind[w.Kind]++
		log.Debug("Parse warning", "source", name, "warning", w.String())
	}
	for kind, n := range byKind {
		p.metrics.IncParseWarnings(string(kind), n)
	}

	log.Info("Parsed transcript", "source", name, "matches", len(res.Matches), "legs", len(legs), "warnings", len(res.Warnings))
	pr.result = res
	return pr
}

func (p *Processor) commit(pr parsed, dryRun bool) (*ImportResult, error) {
	matches := pr.result.Matches
	records := map[string]stats.Record{}
	for _, m := range matches {
		records = stats.MergeAll(records, stats.Aggregate(m))
	}
	legs := pr.result.Legs()
	result := &ImportResult{
		Source:   pr.name,
		Digest:   pr.digest,
		DryRun:   dryRun,
		Matches:  matches,
		Warnings: pr.result.Warnings,
		Records:  stats.Sorted(records),
		Legs:     [][]stats.PlayerLegStats{},
	}
	for _, g := range legs {
		result.Legs = append(result.Legs, stats.LegStats(g))
	}

	p.commitMu.Lock()
	defer p.commitMu.Unlock()

	seen, err := p.store.HasDigest(pr.digest)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate transcript: %w", err)
	}
	if seen {
		log.Warn("Transcript already imported", "source", pr.name, "digest", pr.digest)
		p.increment(metrics.KeyDuplicateImports)
		return nil, fmt.Errorf("%s: %w", pr.name, ErrDuplicateTranscript)
	}

	if dryRun {
		log.Info("[Dry Run] Would import transcript", "source", pr.name, "players", len(records))
		return result, nil
	}

	im := &league.ImportedMatch{
		SourceName: pr.name,
		Digest:     pr.digest,
		Date:       matches[0].Date,
		Legs:       len(legs),
		Warnings:   len(pr.result.Warnings),
		Matches:    matches,
	}
	if err := p.store.SaveMatch(im); err != nil {
		if errors.Is(err, league.ErrDuplicateMatch) {
			return nil, fmt.Errorf("%s: %w", pr.name, ErrDuplicateTranscript)
		}
		return nil, fmt.Errorf("failed to save match: %w", err)
	}
	result.MatchID = im.ID

	event := MergePlayerStatsEvent{MatchID: im.ID, Records: result.Records}
	if p.pubsub != nil {
		err := p.pubsub.SendMessage(pubsub.EventMergePlayerStats, event)
		if err == nil {
			log.Info("Queued player stats merge", "matchID", im.ID, "players", len(event.Records))
			p.increment(metrics.KeyTranscriptsImported)
			return result, nil
		}
		log.Warn("Failed to queue player stats merge, merging inline", "matchID", im.ID, "error", err)
	}
	if err := p.mergeLocked(event); err != nil {
		// Forget the match so the same transcript can be imported again.
		if clearErr := p.store.ClearMatch(im.ID); clearErr != nil {
			log.Error("Failed to forget match after failed stats merge", "matchID", im.ID, "error", clearErr)
		}
		return nil, err
	}
	p.increment(metrics.KeyTranscriptsImported)
	return result, nil
}

// MergePlayerStats resolves each record's transcript name to a registered
// player and merges the records into the stored snapshot. Unknown names are
// registered when auto-registration is on and skipped otherwise.
func (p *Processor) MergePlayerStats(event MergePlayerStatsEvent) error {
	p.commitMu.Lock()
	defer p.commitMu.Unlock()
	return p.mergeLocked(event)
}

func (p *Processor) mergeLocked(event MergePlayerStatsEvent) error {
	byID := make(map[string]stats.Record, len(event.Records))
	for _, r := range event.Records {
		id, err := p.resolve(r.Player)
		if err != nil {
			return err
		}
		if id == "" {
			continue
		}
		byID[id] = stats.Merge(byID[id], r)
	}
	if len(byID) == 0 {
		log.Info("No player stats to merge", "matchID", event.MatchID)
		return nil
	}

	err := p.store.MergePlayerStats(event.MatchID, byID)
	switch {
	case errors.Is(err, league.ErrAlreadyMerged):
		log.Warn("Player stats already merged, skipping", "matchID", event.MatchID)
		return nil
	case errors.Is(err, league.ErrNotFound) && event.MatchID != "":
		log.Warn("Match no longer exists, skipping stats merge", "matchID", event.MatchID)
		return nil
	case err != nil:
		return fmt.Errorf("failed to merge player stats for match %s: %w", event.MatchID, err)
	}
	p.metrics.IncStatsMerged(len(byID))
	log.Info("Merged player stats", "matchID", event.MatchID, "players", len(byID))
	return nil
}

// resolve returns the player ID for a transcript name, or "" when the name
// is unknown and auto-registration is off.
func (p *Processor) resolve(name string) (string, error) {
	info, err := p.store.ResolvePlayer(name)
	if err == nil {
		return info.ID, nil
	}
	if !errors.Is(err, league.ErrNotFound) {
		return "", fmt.Errorf("failed to resolve player %q: %w", name, err)
	}

	p.metrics.IncUnresolvedPlayers()
	if !p.autoRegister {
		log.Warn("Skipping stats for unknown player", "player", name)
		return "", nil
	}
	id, err := p.store.AddPlayer("", name, "")
	if err != nil {
		return "", fmt.Errorf("failed to register player %q: %w", name, err)
	}
	p.increment(metrics.KeyPlayersRegistered)
	log.Info("Discovered and registered new player", "playerID", id, "name", name)
	return id, nil
}

func (p *Processor) increment(key string) {
	if p.counters != nil {
		p.counters.Increment(key)
	}
}
