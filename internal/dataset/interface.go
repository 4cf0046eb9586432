// Package dataset provides the historical match record sources feeding the
// normalizer: a local CSV file, a remote CSV endpoint, or a Postgres table.
package dataset

import (
	"context"

	"github.com/yourusername/pitch-predictor/internal/models"
)

// Source defines the interface for fetching raw match rows from a backend.
// Sources return rows exactly as stored; all canonicalization belongs to
// the normalizer.
type Source interface {
	// FetchRows retrieves every raw match row the backend holds.
	FetchRows(ctx context.Context) ([]models.RawMatchRow, error)

	// Name returns the name of the source, used in logs and metrics.
	Name() string
}
