package dataset

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitch-predictor/internal/models"
)

// HTTPSource fetches the match dataset as CSV from a remote endpoint.
type HTTPSource struct {
	url    string
	apiKey string
	client *RateLimitedHTTPClient
	logger *logrus.Entry
}

// NewHTTPSource creates a source that downloads the dataset from url.
// apiKey is optional; when set it is sent as an X-API-Key header.
func NewHTTPSource(url, apiKey string, client *RateLimitedHTTPClient, logger *logrus.Entry) *HTTPSource {
	return &HTTPSource{
		url:    url,
		apiKey: apiKey,
		client: client,
		logger: logger,
	}
}

// FetchRows downloads and parses the remote CSV dataset.
func (s *HTTPSource) FetchRows(ctx context.Context) ([]models.RawMatchRow, error) {
	headers := http.Header{}
	headers.Set("Accept", "text/csv")
	if s.apiKey != "" {
		headers.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.client.Get(ctx, s.url, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, models.ErrDatasetNotFound
	default:
		return nil, fmt.Errorf("dataset endpoint returned status %d", resp.StatusCode)
	}

	rows, err := parseCSV(resp.Body)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"url":  s.url,
		"rows": len(rows),
	}).Debug("Fetched remote dataset")

	return rows, nil
}

// Name returns the source identifier.
func (s *HTTPSource) Name() string {
	return "http"
}
