package dataset

import (
	"context"
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitch-predictor/internal/database"
	"github.com/yourusername/pitch-predictor/internal/models"
)

// identifierRe validates table names before they are interpolated into
// the query text. Table names cannot be bound as parameters.
var identifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresSource reads the match dataset from a database table.
type PostgresSource struct {
	db     *database.DB
	table  string
	logger *logrus.Entry
}

// NewPostgresSource creates a source backed by the given table.
func NewPostgresSource(db *database.DB, table string, logger *logrus.Entry) (*PostgresSource, error) {
	if !identifierRe.MatchString(table) {
		return nil, fmt.Errorf("invalid dataset table name: %q", table)
	}
	return &PostgresSource{
		db:     db,
		table:  table,
		logger: logger,
	}, nil
}

// FetchRows loads all match rows from the configured table.
func (s *PostgresSource) FetchRows(ctx context.Context) ([]models.RawMatchRow, error) {
	query := fmt.Sprintf(`
		SELECT team, opponent, format, start_date, result, COALESCE(margin, '')
		FROM %s
		ORDER BY start_date DESC`, s.table)

	rows, err := s.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset table: %w", err)
	}
	defer rows.Close()

	var out []models.RawMatchRow
	for rows.Next() {
		var r models.RawMatchRow
		if err := rows.Scan(&r.Team, &r.Opponent, &r.Format, &r.StartDate, &r.Result, &r.Margin); err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading dataset rows: %w", err)
	}

	if len(out) == 0 {
		return nil, models.ErrDatasetEmpty
	}

	s.logger.WithFields(logrus.Fields{
		"table": s.table,
		"rows":  len(out),
	}).Debug("Fetched dataset from database")

	return out, nil
}

// Name returns the source identifier.
func (s *PostgresSource) Name() string {
	return "postgres"
}
