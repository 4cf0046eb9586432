package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/yourusername/pitch-predictor/internal/models"
)

// Expected dataset column headers. Matching is case-insensitive and
// ignores stray whitespace; Margin is optional.
const (
	columnTeam      = "team"
	columnOpponent  = "opponent"
	columnFormat    = "format"
	columnStartDate = "start date"
	columnResult    = "result"
	columnMargin    = "margin"
)

// parseCSV reads raw match rows from CSV content. Required columns are
// located by header name; short records are padded rather than rejected so
// a ragged trailing margin column does not lose the row.
func parseCSV(r io.Reader) ([]models.RawMatchRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, models.ErrDatasetEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{columnTeam, columnOpponent, columnFormat, columnStartDate, columnResult} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("dataset is missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []models.RawMatchRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		rows = append(rows, models.RawMatchRow{
			Team:      field(record, columnTeam),
			Opponent:  field(record, columnOpponent),
			Format:    field(record, columnFormat),
			StartDate: field(record, columnStartDate),
			Result:    field(record, columnResult),
			Margin:    field(record, columnMargin),
		})
	}

	if len(rows) == 0 {
		return nil, models.ErrDatasetEmpty
	}

	return rows, nil
}
