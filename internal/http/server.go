package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/denisok6893-rgb/property-matchmaking/internal/matching"
)

// Options are the defaults applied when a request leaves them out.
type Options struct {
	MinScore float64
	Limit    int
	Workers  int
}

type Server struct {
	engine *matching.Engine
	repo   Repository
	logger *zap.Logger
	opts   Options
}

func NewServer(engine *matching.Engine, repo Repository, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Limit <= 0 {
		opts.Limit = matching.DefaultLimit
	}
	return &Server{engine: engine, repo: repo, logger: logger, opts: opts}
}

func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/weights", s.handleWeights).Methods(http.MethodGet)

	r.HandleFunc("/match", s.handleMatch).Methods(http.MethodPost)
	r.HandleFunc("/match/properties", s.handleMatchProperties).Methods(http.MethodPost)
	r.HandleFunc("/match/clients", s.handleMatchClients).Methods(http.MethodPost)
	r.HandleFunc("/match/batch", s.handleMatchBatch).Methods(http.MethodPost)

	r.HandleFunc("/properties", s.handlePropertiesList).Methods(http.MethodGet)
	r.HandleFunc("/properties", s.handlePropertiesCreate).Methods(http.MethodPost)
	r.HandleFunc("/properties/{id}", s.handlePropertyGet).Methods(http.MethodGet)
	r.HandleFunc("/properties/{id}", s.handlePropertyDelete).Methods(http.MethodDelete)
	r.HandleFunc("/properties/{id}/matches", s.handlePropertyMatches).Methods(http.MethodGet)

	r.HandleFunc("/clients", s.handleClientsList).Methods(http.MethodGet)
	r.HandleFunc("/clients", s.handleClientsCreate).Methods(http.MethodPost)
	r.HandleFunc("/clients/{id}", s.handleClientGet).Methods(http.MethodGet)
	r.HandleFunc("/clients/{id}", s.handleClientDelete).Methods(http.MethodDelete)
	r.HandleFunc("/clients/{id}/matches", s.handleClientMatches).Methods(http.MethodGet)

	r.Use(s.logRequests)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type WeightsResponse struct {
	Weights matching.Weights `json:"weights"`
	Sum     float64          `json:"sum"`
	Valid   bool             `json:"valid"`
	Problem string           `json:"problem,omitempty"`
}

func (s *Server) handleWeights(w http.ResponseWriter, r *http.Request) {
	weights := s.engine.Weights()
	resp := WeightsResponse{Weights: weights, Sum: weights.Sum(), Valid: true}
	if err := weights.Validate(); err != nil {
		resp.Valid = false
		resp.Problem = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func parseLimitOffset(r *http.Request, defLimit, defOffset int) (int, int) {
	q := r.URL.Query()

	limit := defLimit
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = defLimit
	}
	// safety cap
	if limit > 200 {
		limit = 200
	}

	offset := defOffset
	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = defOffset
	}

	return limit, offset
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// internalError logs err and answers 500 without leaking details. A request
// whose client has gone away gets no answer and is not a server failure.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		s.logger.Debug("request abandoned", zap.String("path", r.URL.Path), zap.Error(err))
		return
	}
	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal")
}
