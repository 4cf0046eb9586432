package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/yourusername/pitch-predictor/internal/models"
)

// FileSource reads raw match rows from a local CSV file. A missing file is
// the one fatal startup condition: without a dataset there is nothing to
// predict over.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed dataset source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchRows reads and parses the CSV file.
func (s *FileSource) FetchRows(ctx context.Context) ([]models.RawMatchRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrDatasetNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	return parseCSV(f)
}

// Name returns the source name.
func (s *FileSource) Name() string {
	return "file"
}
