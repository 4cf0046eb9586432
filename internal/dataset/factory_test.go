package dataset

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pitch-predictor/internal/config"
	"github.com/yourusername/pitch-predictor/internal/models"
)

func factoryConfig(source string) *config.Config {
	return &config.Config{
		Dataset: config.DatasetConfig{
			Source: source,
			Path:   "dataset.csv",
			URL:    "https://example.com/matches.csv",
			Table:  "match_results",
		},
	}
}

func factoryLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestFactorySelectsSource(t *testing.T) {
	fileSource, err := New(factoryConfig("file"), nil, factoryLogger())
	require.NoError(t, err)
	assert.Equal(t, "file", fileSource.Name())

	httpSource, err := New(factoryConfig("http"), nil, factoryLogger())
	require.NoError(t, err)
	assert.Equal(t, "http", httpSource.Name())
}

func TestFactoryUnknownSource(t *testing.T) {
	_, err := New(factoryConfig("ftp"), nil, factoryLogger())
	assert.ErrorIs(t, err, models.ErrUnknownSource)
}

func TestFactoryPostgresRequiresDB(t *testing.T) {
	_, err := New(factoryConfig("postgres"), nil, factoryLogger())
	assert.Error(t, err)
}

func TestPostgresSourceRejectsBadTableName(t *testing.T) {
	_, err := NewPostgresSource(nil, "match_results; DROP TABLE x", factoryLogger().WithField("component", "dataset"))
	assert.Error(t, err)

	_, err = NewPostgresSource(nil, "match_results", factoryLogger().WithField("component", "dataset"))
	assert.NoError(t, err)
}
