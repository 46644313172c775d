package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
	"github.com/denisok6893-rgb/property-matchmaking/internal/records"
)

type MatchRequest struct {
	Client   map[string]any `json:"client"`
	Property map[string]any `json:"property"`
	MinScore *float64       `json:"min_score"`
	Limit    *int           `json:"limit"`
}

type MatchResponse struct {
	Count   int                  `json:"count"`
	Results []domain.MatchResult `json:"results"`
}

func newMatchResponse(results []domain.MatchResult) MatchResponse {
	if results == nil {
		results = []domain.MatchResult{}
	}
	return MatchResponse{Count: len(results), Results: results}
}

func (s *Server) thresholds(minScore *float64, limit *int) (float64, int) {
	ms, l := s.opts.MinScore, s.opts.Limit
	if minScore != nil {
		ms = *minScore
	}
	if limit != nil && *limit > 0 {
		l = *limit
	}
	return ms, l
}

func (s *Server) queryThresholds(r *http.Request) (float64, int) {
	var minScore *float64
	var limit *int
	q := r.URL.Query()
	if v, err := strconv.ParseFloat(q.Get("min_score"), 64); err == nil {
		minScore = &v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		limit = &v
	}
	return s.thresholds(minScore, limit)
}

func decodeMatchRequest(r *http.Request) (MatchRequest, bool) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, false
	}
	return req, true
}

// handleMatch scores a single client/property pair given inline.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMatchRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Client == nil || req.Property == nil {
		writeError(w, http.StatusBadRequest, "client_and_property_required")
		return
	}
	c, err := records.DecodeClient(req.Client)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_client")
		return
	}
	p, err := records.DecodeProperty(req.Property)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_property")
		return
	}
	writeJSON(w, http.StatusOK, s.engine.CalculateMatchScore(c, p))
}

// handleMatchProperties ranks stored properties for an inline client.
func (s *Server) handleMatchProperties(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMatchRequest(r)
	if !ok || req.Client == nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	c, err := records.DecodeClient(req.Client)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_client")
		return
	}
	props, err := s.repo.AllProperties(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	minScore, limit := s.thresholds(req.MinScore, req.Limit)
	writeJSON(w, http.StatusOK, newMatchResponse(s.engine.FindMatchingProperties(c, props, minScore, limit)))
}

// handleMatchClients ranks stored clients for an inline property.
func (s *Server) handleMatchClients(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMatchRequest(r)
	if !ok || req.Property == nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	p, err := records.DecodeProperty(req.Property)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_property")
		return
	}
	clients, err := s.repo.AllClients(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	minScore, limit := s.thresholds(req.MinScore, req.Limit)
	writeJSON(w, http.StatusOK, newMatchResponse(s.engine.FindMatchingClients(p, clients, minScore, limit)))
}

// handleMatchBatch scores every stored client against every stored property
// and keeps the pairs at or above min_score, client-major.
func (s *Server) handleMatchBatch(w http.ResponseWriter, r *http.Request) {
	// The body is optional here.
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	clients, err := s.repo.AllClients(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	props, err := s.repo.AllProperties(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	results, err := s.engine.ParallelBatch(r.Context(), clients, props, s.opts.Workers)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	minScore, _ := s.thresholds(req.MinScore, nil)
	kept := results[:0]
	for _, res := range results {
		if res.OverallScore >= minScore {
			kept = append(kept, res)
		}
	}
	writeJSON(w, http.StatusOK, newMatchResponse(kept))
}

func (s *Server) handleClientMatches(w http.ResponseWriter, r *http.Request) {
	c, found, err := s.repo.GetClient(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	props, err := s.repo.AllProperties(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	minScore, limit := s.queryThresholds(r)
	writeJSON(w, http.StatusOK, newMatchResponse(s.engine.FindMatchingProperties(c, props, minScore, limit)))
}

func (s *Server) handlePropertyMatches(w http.ResponseWriter, r *http.Request) {
	p, found, err := s.repo.GetProperty(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	clients, err := s.repo.AllClients(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	minScore, limit := s.queryThresholds(r)
	writeJSON(w, http.StatusOK, newMatchResponse(s.engine.FindMatchingClients(p, clients, minScore, limit)))
}
