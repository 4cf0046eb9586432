package dataset

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitch-predictor/internal/config"
	"github.com/yourusername/pitch-predictor/internal/database"
	"github.com/yourusername/pitch-predictor/internal/models"
)

// New constructs the dataset source selected by cfg.Dataset.Source.
// db may be nil unless the source is "postgres".
func New(cfg *config.Config, db *database.DB, logger *logrus.Logger) (Source, error) {
	log := logger.WithField("component", "dataset")

	switch cfg.Dataset.Source {
	case "file":
		return NewFileSource(cfg.Dataset.Path), nil
	case "http":
		client := NewRateLimitedHTTPClient(DefaultHTTPClientConfig(), log)
		return NewHTTPSource(cfg.Dataset.URL, cfg.Dataset.APIKey, client, log), nil
	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("postgres dataset source requires a database connection")
		}
		return NewPostgresSource(db, cfg.Dataset.Table, log)
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownSource, cfg.Dataset.Source)
	}
}
