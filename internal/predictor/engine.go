package predictor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitch-predictor/internal/config"
	"github.com/yourusername/pitch-predictor/internal/logger"
	"github.com/yourusername/pitch-predictor/internal/metrics"
	"github.com/yourusername/pitch-predictor/internal/models"
	"github.com/yourusername/pitch-predictor/internal/stats"
)

// Request identifies the hypothetical contest to score. Codes are expected
// pre-validated by the caller: non-empty, distinct, uppercased, format
// drawn from the table's allowed set.
type Request struct {
	Team1  string `json:"team1"`
	Team2  string `json:"team2"`
	Format string `json:"format"`
}

// Breakdown carries the per-side stats that produced a prediction.
type Breakdown struct {
	Team1               models.TeamStats `json:"team1"`
	Team1HeadToHeadUsed bool             `json:"team1_head_to_head_used"`
	Team1FallbackUsed   bool             `json:"team1_fallback_used"`
	Team2               models.TeamStats `json:"team2"`
	Team2HeadToHeadUsed bool             `json:"team2_head_to_head_used"`
	Team2FallbackUsed   bool             `json:"team2_fallback_used"`
}

// Result is the full prediction output consumed by the presentation layer.
type Result struct {
	PredictionID     uuid.UUID        `json:"prediction_id"`
	Team1            string           `json:"team1"`
	Team2            string           `json:"team2"`
	Format           string           `json:"format"`
	Team1Prob        float64          `json:"t1_prob"`
	Team2Prob        float64          `json:"t2_prob"`
	Team1Odds        *decimal.Decimal `json:"t1_implied_odds,omitempty"`
	Team2Odds        *decimal.Decimal `json:"t2_implied_odds,omitempty"`
	Stats            Breakdown        `json:"stats"`
	InsufficientData bool             `json:"insufficient_data"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// Engine computes predictions against the current canonical table
// generation. The table pointer is swapped atomically on reload, so any
// number of predictions may run concurrently without locking; each one
// sees a single consistent generation throughout.
type Engine struct {
	cfg    config.PredictionConfig
	table  atomic.Pointer[stats.Table]
	cache  *cache.Cache
	logger *logrus.Logger
	audit  *logger.PredictionAuditLogger
}

// NewEngine creates a prediction engine over an initial table generation.
func NewEngine(cfg config.PredictionConfig, table *stats.Table, log *logrus.Logger) *Engine {
	e := &Engine{
		cfg:    cfg,
		logger: log,
		audit:  logger.NewPredictionAuditLogger(log),
	}
	e.table.Store(table)

	if cfg.CacheEnabled {
		ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
		e.cache = cache.New(ttl, 2*ttl)
	}

	return e
}

// Table returns the current canonical table generation.
func (e *Engine) Table() *stats.Table {
	return e.table.Load()
}

// SwapTable atomically replaces the table generation and flushes the
// prediction cache, which was computed against the previous one. Returns
// the row count of the generation that was replaced.
func (e *Engine) SwapTable(t *stats.Table) int {
	prev := e.table.Swap(t)
	if e.cache != nil {
		e.cache.Flush()
	}
	if prev == nil {
		return 0
	}
	return prev.Len()
}

// Predict computes the win-probability pair for the requested contest. It
// is a pure computation over the immutable table plus the request: no I/O
// and no shared mutable state beyond the cache.
func (e *Engine) Predict(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table := e.table.Load()
	if table == nil {
		return nil, models.ErrTableUnavailable
	}

	cacheKey := fmt.Sprintf("%s|%s|%s", req.Team1, req.Team2, req.Format)
	if e.cache != nil {
		if cached, found := e.cache.Get(cacheKey); found {
			metrics.PredictionCacheHitsTotal.Inc()
			return cached.(*Result), nil
		}
		metrics.PredictionCacheMissesTotal.Inc()
	}

	start := time.Now()
	defer func() {
		metrics.PredictionLatency.Observe(time.Since(start).Seconds())
	}()

	side1 := e.evaluateSide(table, req.Team1, req.Team2, req.Format)
	side2 := e.evaluateSide(table, req.Team2, req.Team1, req.Format)

	s1 := Score(side1.stats)
	s2 := Score(side2.stats)

	applyCap := side1.stats.Total < e.cfg.MinMatches || side2.stats.Total < e.cfg.MinMatches
	p1, p2 := Calibrate(s1, s2, applyCap, e.cfg.CapMin, e.cfg.CapMax)

	insufficient := side1.stats.Total < 1 || side2.stats.Total < 1

	result := &Result{
		PredictionID: uuid.New(),
		Team1:        req.Team1,
		Team2:        req.Team2,
		Format:       req.Format,
		Team1Prob:    p1,
		Team2Prob:    p2,
		Team1Odds:    impliedOdds(p1),
		Team2Odds:    impliedOdds(p2),
		Stats: Breakdown{
			Team1:               side1.stats,
			Team1HeadToHeadUsed: side1.h2hTotal >= e.cfg.MinMatches,
			Team1FallbackUsed:   side1.fallbackUsed,
			Team2:               side2.stats,
			Team2HeadToHeadUsed: side2.h2hTotal >= e.cfg.MinMatches,
			Team2FallbackUsed:   side2.fallbackUsed,
		},
		InsufficientData: insufficient,
		GeneratedAt:      time.Now().UTC(),
	}

	metrics.PredictionsTotal.Inc()
	if side1.fallbackUsed {
		metrics.PredictionFallbacksTotal.WithLabelValues("team1").Inc()
	}
	if side2.fallbackUsed {
		metrics.PredictionFallbacksTotal.WithLabelValues("team2").Inc()
	}
	if insufficient {
		metrics.PredictionsInsufficientTotal.Inc()
	}

	e.audit.LogPrediction(
		result.PredictionID.String(), req.Team1, req.Team2, req.Format,
		side1.stats.Total, side1.h2hTotal, side2.stats.Total, side2.h2hTotal,
		side1.fallbackUsed, side2.fallbackUsed,
		p1, p2, insufficient,
	)

	if e.cache != nil {
		if e.cfg.CacheMaxSize > 0 && e.cache.ItemCount() >= e.cfg.CacheMaxSize {
			e.cache.DeleteExpired()
		}
		e.cache.SetDefault(cacheKey, result)
	}

	return result, nil
}

type sideEvaluation struct {
	stats        models.TeamStats
	h2hTotal     int
	fallbackUsed bool
}

// evaluateSide applies the fallback policy for one competitor: trust
// head-to-head history when it has at least MinMatches games, otherwise
// substitute recent form over a doubled lookback window.
func (e *Engine) evaluateSide(table *stats.Table, team, opponent, format string) sideEvaluation {
	h2h := table.TeamStats(stats.Query{
		Team:     team,
		Opponent: opponent,
		Format:   format,
		Lookback: e.cfg.Lookback,
	})

	ev := sideEvaluation{stats: h2h, h2hTotal: h2h.Total}
	if h2h.Total < e.cfg.MinMatches {
		ev.stats = table.TeamStats(stats.Query{
			Team:     team,
			Format:   format,
			Lookback: e.cfg.Lookback * 2,
		})
		ev.fallbackUsed = true
	}

	return ev
}
