// Package service coordinates the dataset pipeline: fetching raw rows,
// normalizing them and swapping the live table generation.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitch-predictor/internal/dataset"
	"github.com/yourusername/pitch-predictor/internal/logger"
	"github.com/yourusername/pitch-predictor/internal/metrics"
	"github.com/yourusername/pitch-predictor/internal/normalizer"
	"github.com/yourusername/pitch-predictor/internal/predictor"
)

// ReloadService rebuilds the match table from the configured source and
// installs it in the prediction engine.
type ReloadService struct {
	source dataset.Source
	norm   *normalizer.RecordNormalizer
	engine *predictor.Engine
	logger *logrus.Entry
	audit  *logger.PredictionAuditLogger
}

// NewReloadService creates a reload service.
func NewReloadService(
	source dataset.Source,
	norm *normalizer.RecordNormalizer,
	engine *predictor.Engine,
	log *logrus.Logger,
	audit *logger.PredictionAuditLogger,
) *ReloadService {
	return &ReloadService{
		source: source,
		norm:   norm,
		engine: engine,
		logger: logger.NewComponentLogger(log, "reload"),
		audit:  audit,
	}
}

// Reload fetches raw rows, normalizes them and swaps the engine table.
// Predictions served during a reload keep using the previous generation;
// the swap is atomic and the prediction cache is flushed with it.
func (s *ReloadService) Reload(ctx context.Context) error {
	start := time.Now()

	rows, err := s.source.FetchRows(ctx)
	if err != nil {
		metrics.DatasetReloadsTotal.WithLabelValues("failure").Inc()
		return fmt.Errorf("dataset fetch from %s failed: %w", s.source.Name(), err)
	}

	table := s.norm.Normalize(rows)
	if table.Len() == 0 {
		metrics.DatasetReloadsTotal.WithLabelValues("failure").Inc()
		return fmt.Errorf("dataset from %s normalized to zero rows", s.source.Name())
	}

	prevRows := s.engine.SwapTable(table)

	metrics.DatasetReloadsTotal.WithLabelValues("success").Inc()
	metrics.DatasetRowsLoaded.Set(float64(table.Len()))
	metrics.DatasetRowsDropped.Set(float64(len(rows) - table.Len()))
	metrics.DatasetLastLoadTimestamp.SetToCurrentTime()

	if s.audit != nil {
		s.audit.LogTableSwap(prevRows, table.Len(), s.source.Name())
	}

	s.logger.WithFields(logrus.Fields{
		"source":   s.source.Name(),
		"rows_raw": len(rows),
		"rows":     table.Len(),
		"teams":    len(table.Teams()),
		"duration": time.Since(start).String(),
	}).Info("Dataset reloaded")

	return nil
}
