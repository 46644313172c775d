package matching

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
)

// Engine scores client/property pairs. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	weights Weights
	logger  *zap.Logger
	now     func() time.Time
}

// NewEngine builds an engine for w. Weights that do not sum to 100 are logged
// as a warning and used as configured.
func NewEngine(w Weights, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := w.Validate(); err != nil {
		logger.Warn("criterion weights misconfigured, overall scores may leave the 0-100 range",
			zap.Error(err),
			zap.Float64("weight_sum", w.Sum()),
		)
	}
	return &Engine{weights: w, logger: logger, now: time.Now}
}

func (e *Engine) Weights() Weights { return e.weights }

// CalculateMatchScore runs every criterion for c and p and sums the weighted
// contributions into the overall score.
func (e *Engine) CalculateMatchScore(c domain.Client, p domain.Property) domain.MatchResult {
	return e.score(c.ID, ExtractPreferences(c), p)
}

func (e *Engine) score(clientID string, prefs Preferences, p domain.Property) domain.MatchResult {
	breakdown := make([]domain.CriterionScore, 0, len(scorers))
	var overall float64
	matched := 0

	for _, s := range scorers {
		v := s.score(prefs, p)
		score := round2(clampScore(v.Score))
		weight := e.weights.For(s.criterion)
		weighted := score * weight / 100
		overall += weighted

		ok := v.Matched || score >= matchedThreshold
		if ok {
			matched++
		}
		breakdown = append(breakdown, domain.CriterionScore{
			Criterion:     s.criterion,
			Weight:        weight,
			Score:         score,
			WeightedScore: round2(weighted),
			Matched:       ok,
			Reason:        v.Reason,
		})
	}

	overall = round2(overall)
	return domain.MatchResult{
		ClientID:        clientID,
		PropertyID:      p.ID,
		OverallScore:    overall,
		Quality:         Classify(overall),
		Breakdown:       breakdown,
		MatchedCriteria: matched,
		TotalCriteria:   len(breakdown),
		CalculatedAt:    e.now().UTC(),
	}
}

// CalculateBatchMatches scores the full cross product, client-major.
func (e *Engine) CalculateBatchMatches(clients []domain.Client, properties []domain.Property) []domain.MatchResult {
	out := make([]domain.MatchResult, 0, len(clients)*len(properties))
	for _, c := range clients {
		prefs := ExtractPreferences(c)
		for _, p := range properties {
			out = append(out, e.score(c.ID, prefs, p))
		}
	}
	e.logger.Debug("batch matches calculated",
		zap.Int("clients", len(clients)),
		zap.Int("properties", len(properties)),
		zap.Int("results", len(out)),
	)
	return out
}

// ParallelBatch is CalculateBatchMatches spread over workers goroutines, one
// client at a time. The result order is the same. It stops early and returns
// ctx.Err() when ctx is cancelled.
func (e *Engine) ParallelBatch(ctx context.Context, clients []domain.Client, properties []domain.Property, workers int) ([]domain.MatchResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]domain.MatchResult, len(clients)*len(properties))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				prefs := ExtractPreferences(clients[i])
				base := i * len(properties)
				for j, p := range properties {
					out[base+j] = e.score(clients[i].ID, prefs, p)
				}
			}
		}()
	}

feed:
	for i := range clients {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.logger.Debug("parallel batch matches calculated",
		zap.Int("clients", len(clients)),
		zap.Int("properties", len(properties)),
		zap.Int("workers", workers),
	)
	return out, nil
}

// FindMatchingProperties returns the properties scoring at least minScore for
// c, best first. Equal scores are ordered by property id. A positive limit
// truncates the result.
func (e *Engine) FindMatchingProperties(c domain.Client, properties []domain.Property, minScore float64, limit int) []domain.MatchResult {
	prefs := ExtractPreferences(c)
	var out []domain.MatchResult
	for _, p := range properties {
		if r := e.score(c.ID, prefs, p); r.OverallScore >= minScore {
			out = append(out, r)
		}
	}
	return rank(out, limit, func(r domain.MatchResult) string { return r.PropertyID })
}

// FindMatchingClients returns the clients for whom p scores at least
// minScore, best first. Equal scores are ordered by client id.
func (e *Engine) FindMatchingClients(p domain.Property, clients []domain.Client, minScore float64, limit int) []domain.MatchResult {
	var out []domain.MatchResult
	for _, c := range clients {
		if r := e.CalculateMatchScore(c, p); r.OverallScore >= minScore {
			out = append(out, r)
		}
	}
	return rank(out, limit, func(r domain.MatchResult) string { return r.ClientID })
}

func rank(results []domain.MatchResult, limit int, id func(domain.MatchResult) string) []domain.MatchResult {
	sort.Slice(results, func(i, j int) bool {
		if results[i].OverallScore != results[j].OverallScore {
			return results[i].OverallScore > results[j].OverallScore
		}
		return id(results[i]) < id(results[j])
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
