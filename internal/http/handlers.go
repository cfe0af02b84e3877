package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/dartledger/internal/export"
	"github.com/mauv0809/dartledger/internal/league"
	"github.com/mauv0809/dartledger/internal/processor"
	"github.com/mauv0809/dartledger/internal/pubsub"
	"github.com/mauv0809/dartledger/internal/rtf"
	"github.com/mauv0809/dartledger/internal/stats"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// ImportHandler parses the request body as a transcript and records it.
// The optional 'name' query parameter labels the source.
func (s *Server) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "transcript too large")
				return
			}
			log.Error("Failed to read request body", "error", err)
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		if len(body) == 0 {
			writeError(w, http.StatusBadRequest, "empty transcript")
			return
		}

		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			name = "upload-" + time.Now().UTC().Format("20060102T150405")
		}
		isDryRun := isDryRunFromContext(r)

		result, err := s.Processor.Import(r.Context(), name, body, isDryRun)
		if err != nil {
			var normErr *rtf.NormalizationError
			switch {
			case errors.Is(err, processor.ErrDuplicateTranscript):
				writeError(w, http.StatusConflict, err.Error())
			case errors.As(err, &normErr):
				writeError(w, http.StatusUnprocessableEntity, err.Error())
			case result != nil:
				// The match was saved but its stats merge failed.
				log.Error("Imported transcript without merging stats", "source", name, "error", err)
				writeError(w, http.StatusInternalServerError, err.Error())
			default:
				log.Error("Failed to import transcript", "source", name, "error", err)
				writeError(w, http.StatusInternalServerError, "failed to import transcript")
			}
			return
		}

		status := http.StatusCreated
		if isDryRun {
			status = http.StatusOK
		}
		writeJSON(w, status, result)
	}
}

// LeaderboardHandler serves the player statistics leaderboard as JSON, or as
// a workbook with 'format=xlsx'. 'order' selects the ranking.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := league.ParseStatsOrder(r.URL.Query().Get("order"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		board, err := s.Store.GetPlayerStats(order)
		if err != nil {
			log.Error("Failed to get player stats from store", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to get player stats")
			return
		}

		switch format := r.URL.Query().Get("format"); format {
		case "", "json":
			writeJSON(w, http.StatusOK, board)
		case "xlsx":
			records := make([]stats.Record, len(board))
			for i, ps := range board {
				records[i] = ps.Stats
			}
			w.Header().Set("Content-Type", xlsxContentType)
			w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
			if err := export.WriteLeaderboard(w, records); err != nil {
				log.Error("Failed to write leaderboard workbook", "error", err)
			}
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", format))
		}
	}
}

func (s *Server) PlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			writeError(w, http.StatusBadRequest, "missing 'name' parameter")
			return
		}
		ps, err := s.Store.GetPlayerStatsByName(name)
		if errors.Is(err, league.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to get player stats")
			return
		}
		writeJSON(w, http.StatusOK, ps)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetAllPlayers()
		if err != nil {
			log.Error("Failed to get players from store", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to get players")
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.GetAllMatches()
		if err != nil {
			log.Error("Failed to get matches from store", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to get matches")
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing 'id' parameter")
			return
		}
		m, err := s.Store.GetMatch(id)
		if errors.Is(err, league.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			log.Error("Failed to get match", "matchID", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to get match")
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

// MergePlayerStatsHandler receives Pub/Sub push deliveries of the
// merge-player-stats event. A non-2xx reply makes Pub/Sub redeliver.
func (s *Server) MergePlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received merge player stats message", "bytes", len(bodyBytes))

		var envelope pushEnvelope
		if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		decode := pubsub.Decode
		if s.pubsub != nil {
			decode = s.pubsub.ProcessMessage
		}
		var event processor.MergePlayerStatsEvent
		if err := decode(rawData, &event); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would merge player stats", "matchID", event.MatchID, "players", len(event.Records))
			w.Write([]byte("OK"))
			return
		}
		if err := s.Processor.MergePlayerStats(event); err != nil {
			log.Error("Failed to merge player stats", "matchID", event.MatchID, "messageID", envelope.Message.ID, "error", err)
			http.Error(w, "Failed to merge player stats", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// ClearStoreHandler forgets one imported match ('matchID') or resets all
// imported matches and stats.
func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			err := s.Store.ClearMatch(matchID)
			if errors.Is(err, league.ErrNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to clear match")
				return
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
			return
		}

		log.Info("Received request to clear entire store")
		if err := s.Store.Clear(); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to clear store")
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
