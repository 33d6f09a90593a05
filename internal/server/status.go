package server

import (
	"context"
	"encoding/json"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/middleware"
	"lol-tracker/internal/tracker"
	"net/http"

	"github.com/rs/zerolog"
)

type OutcomeLister interface {
	ListBySummoner(ctx context.Context, summonerID string, limit int) ([]domain.OutcomeRecord, error)
}

// StatusServer exposes read-only views of the tracked players.
type StatusServer struct {
	trackers map[string]*tracker.Tracker
	order    []string
	outcomes OutcomeLister
	logger   zerolog.Logger
}

func NewStatusServer(trackers []*tracker.Tracker, outcomes OutcomeLister, logger zerolog.Logger) *StatusServer {
	s := &StatusServer{
		trackers: make(map[string]*tracker.Tracker, len(trackers)),
		outcomes: outcomes,
		logger:   logger,
	}
	for _, tr := range trackers {
		s.trackers[tr.SummonerID()] = tr
		s.order = append(s.order, tr.SummonerID())
	}
	return s
}

type PlayerResponse struct {
	SummonerID  string `json:"summoner_id"`
	Handle      string `json:"handle"`
	Name        string `json:"name"`
	Tier        string `json:"tier"`
	Division    string `json:"division"`
	Points      int    `json:"points"`
	LastMatchID string `json:"last_match_id"`
	TotalRank   string `json:"total_rank"`
}

type OutcomeResponse struct {
	MatchID   string `json:"match_id"`
	Result    string `json:"result"`
	Dimension string `json:"dimension,omitempty"`
	Before    string `json:"before"`
	After     string `json:"after"`
	Champion  string `json:"champion,omitempty"`
	Score     string `json:"score,omitempty"`
	CreatedAt string `json:"created_at"`
}

func (s *StatusServer) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /players", s.listPlayers)
	mux.HandleFunc("GET /players/{summonerID}/outcomes", s.listOutcomes)
	return mux
}

func (s *StatusServer) listPlayers(w http.ResponseWriter, r *http.Request) {
	players := make([]PlayerResponse, 0, len(s.order))
	for _, id := range s.order {
		tr := s.trackers[id]
		players = append(players, toPlayerResponse(tr.Snapshot(), tr.TotalRank()))
	}
	writeJSON(w, http.StatusOK, players)
}

func (s *StatusServer) listOutcomes(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("summonerID")
	if _, ok := s.trackers[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "player not tracked"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
	defer cancel()

	records, err := s.outcomes.ListBySummoner(ctx, id, constants.OutcomeHistoryLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("request_id", middleware.GetRequestID(r.Context())).Str("summoner_id", id).Msg("failed to list outcomes")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list outcomes"})
		return
	}

	out := make([]OutcomeResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, OutcomeResponse{
			MatchID:   rec.MatchID,
			Result:    rec.Result,
			Dimension: rec.Dimension,
			Before:    rec.Before.String(),
			After:     rec.After.String(),
			Champion:  rec.Champion,
			Score:     rec.Score,
			CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func toPlayerResponse(p domain.TrackedPlayer, totalRank string) PlayerResponse {
	return PlayerResponse{
		SummonerID:  p.SummonerID,
		Handle:      p.Handle,
		Name:        p.Name,
		Tier:        p.Rank.Tier.String(),
		Division:    p.Rank.Division.String(),
		Points:      p.Rank.Points,
		LastMatchID: p.LastMatchID,
		TotalRank:   totalRank,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
