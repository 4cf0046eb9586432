package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pitch-predictor/internal/models"
)

const sampleCSV = `Team,Opponent,Format,Start Date,Result,Margin
IND,Australia,ODI,15-Mar-23,Won,30 runs
AUS,India,ODI,15-Mar-23,Lost,
IND,England,Test,2022-07-01,Lost,5 wkts
`

func TestParseCSV(t *testing.T) {
	rows, err := parseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "IND", rows[0].Team)
	assert.Equal(t, "Australia", rows[0].Opponent)
	assert.Equal(t, "ODI", rows[0].Format)
	assert.Equal(t, "15-Mar-23", rows[0].StartDate)
	assert.Equal(t, "Won", rows[0].Result)
	assert.Equal(t, "30 runs", rows[0].Margin)

	assert.Equal(t, "", rows[1].Margin)
}

func TestParseCSVHeaderCaseInsensitive(t *testing.T) {
	csv := "TEAM, opponent ,FORMAT,START DATE,Result\nIND,Australia,ODI,15-Mar-23,won\n"
	rows, err := parseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "IND", rows[0].Team)
	assert.Equal(t, "", rows[0].Margin, "missing margin column yields empty margins")
}

func TestParseCSVShortRecordPadded(t *testing.T) {
	csv := "Team,Opponent,Format,Start Date,Result,Margin\nIND,Australia,ODI,15-Mar-23,won\n"
	rows, err := parseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Margin)
}

func TestParseCSVMissingRequiredColumn(t *testing.T) {
	csv := "Team,Opponent,Format,Result\nIND,Australia,ODI,won\n"
	_, err := parseCSV(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start date")
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := parseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, models.ErrDatasetEmpty)

	_, err = parseCSV(strings.NewReader("Team,Opponent,Format,Start Date,Result\n"))
	assert.ErrorIs(t, err, models.ErrDatasetEmpty)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	source := NewFileSource(path)
	assert.Equal(t, "file", source.Name())

	rows, err := source.FetchRows(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestFileSourceMissingFile(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "absent.csv"))

	_, err := source.FetchRows(context.Background())
	assert.ErrorIs(t, err, models.ErrDatasetNotFound)
}
