package predictor

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pitch-predictor/internal/config"
	"github.com/yourusername/pitch-predictor/internal/models"
	"github.com/yourusername/pitch-predictor/internal/stats"
)

func testPredictionConfig() config.PredictionConfig {
	return config.PredictionConfig{
		MinMatches:      5,
		Lookback:        20,
		CapMin:          5.0,
		CapMax:          95.0,
		CacheEnabled:    true,
		CacheTTLSeconds: 60,
		CacheMaxSize:    64,
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// headToHead builds the two mirrored record sets for a played series:
// team1 wins the first team1Wins matches, team2 the rest.
func headToHead(team1, team2, format string, total, team1Wins int) []models.MatchRecord {
	anchor := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	records := make([]models.MatchRecord, 0, 2*total)

	for i := 0; i < total; i++ {
		r1, r2 := models.ResultWon, models.ResultLost
		if i >= team1Wins {
			r1, r2 = models.ResultLost, models.ResultWon
		}
		date := anchor.AddDate(0, 0, -i)
		records = append(records,
			models.MatchRecord{Team: team1, Opponent: team2, OpponentCode: team2, Format: format, StartDate: date, Result: r1},
			models.MatchRecord{Team: team2, Opponent: team1, OpponentCode: team1, Format: format, StartDate: date, Result: r2},
		)
	}
	return records
}

func TestPredictDominantSideWins(t *testing.T) {
	table := stats.NewTable(headToHead("IND", "AUS", "ODI", 10, 7))
	engine := NewEngine(testPredictionConfig(), table, quietLogger())

	result, err := engine.Predict(context.Background(), Request{Team1: "IND", Team2: "AUS", Format: "ODI"})
	require.NoError(t, err)

	assert.Greater(t, result.Team1Prob, result.Team2Prob)
	assert.False(t, result.InsufficientData)
	assert.True(t, result.Stats.Team1HeadToHeadUsed)
	assert.True(t, result.Stats.Team2HeadToHeadUsed)
	assert.False(t, result.Stats.Team1FallbackUsed)
	assert.False(t, result.Stats.Team2FallbackUsed)
	assert.Equal(t, 10, result.Stats.Team1.Total)
	assert.Equal(t, 7, result.Stats.Team1.Wins)
	assert.InDelta(t, 100.0, result.Team1Prob+result.Team2Prob, 0.01)
	assert.NotEqual(t, result.PredictionID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestPredictNoDataIsCoinFlip(t *testing.T) {
	table := stats.NewTable(nil)
	engine := NewEngine(testPredictionConfig(), table, quietLogger())

	result, err := engine.Predict(context.Background(), Request{Team1: "IND", Team2: "AUS", Format: "ODI"})
	require.NoError(t, err)

	assert.Equal(t, 50.0, result.Team1Prob)
	assert.Equal(t, 50.0, result.Team2Prob)
	assert.True(t, result.InsufficientData)
	assert.True(t, result.Stats.Team1FallbackUsed)
	assert.True(t, result.Stats.Team2FallbackUsed)
}

func TestPredictFallbackOnThinHeadToHead(t *testing.T) {
	// Only 2 head-to-head games, below the 5-match threshold, but plenty
	// of recent form against other opponents.
	records := headToHead("IND", "AUS", "ODI", 2, 2)
	records = append(records, headToHead("IND", "ENG", "ODI", 10, 8)...)
	records = append(records, headToHead("AUS", "NZ", "ODI", 10, 4)...)
	table := stats.NewTable(records)
	engine := NewEngine(testPredictionConfig(), table, quietLogger())

	result, err := engine.Predict(context.Background(), Request{Team1: "IND", Team2: "AUS", Format: "ODI"})
	require.NoError(t, err)

	assert.True(t, result.Stats.Team1FallbackUsed)
	assert.True(t, result.Stats.Team2FallbackUsed)
	assert.False(t, result.Stats.Team1HeadToHeadUsed)
	assert.False(t, result.Stats.Team2HeadToHeadUsed)
	// Fallback widens the sample to all ODI games in the doubled window.
	assert.Equal(t, 12, result.Stats.Team1.Total)
	assert.False(t, result.InsufficientData)
	assert.InDelta(t, 100.0, result.Team1Prob+result.Team2Prob, 0.01)
}

func TestPredictThinSampleCompressedIntoBand(t *testing.T) {
	// Two head-to-head games and nothing else: even after fallback each
	// side has 2 matches, below the threshold, so the raw 100/0 split is
	// compressed to the band edges.
	table := stats.NewTable(headToHead("IND", "AUS", "ODI", 2, 2))
	engine := NewEngine(testPredictionConfig(), table, quietLogger())

	result, err := engine.Predict(context.Background(), Request{Team1: "IND", Team2: "AUS", Format: "ODI"})
	require.NoError(t, err)

	assert.Equal(t, 95.0, result.Team1Prob)
	assert.Equal(t, 5.0, result.Team2Prob)
	assert.False(t, result.InsufficientData, "two games is thin but not absent")
	assert.True(t, result.Stats.Team1FallbackUsed)
}

func TestPredictCacheHit(t *testing.T) {
	table := stats.NewTable(headToHead("IND", "AUS", "ODI", 10, 7))
	engine := NewEngine(testPredictionConfig(), table, quietLogger())

	req := Request{Team1: "IND", Team2: "AUS", Format: "ODI"}
	first, err := engine.Predict(context.Background(), req)
	require.NoError(t, err)
	second, err := engine.Predict(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.PredictionID, second.PredictionID, "cache hit must return the same result")
	assert.Same(t, first, second)
}

func TestPredictCacheDisabled(t *testing.T) {
	cfg := testPredictionConfig()
	cfg.CacheEnabled = false
	table := stats.NewTable(headToHead("IND", "AUS", "ODI", 10, 7))
	engine := NewEngine(cfg, table, quietLogger())

	req := Request{Team1: "IND", Team2: "AUS", Format: "ODI"}
	first, err := engine.Predict(context.Background(), req)
	require.NoError(t, err)
	second, err := engine.Predict(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.PredictionID, second.PredictionID)
	assert.Equal(t, first.Team1Prob, second.Team1Prob)
}

func TestSwapTableInvalidatesCache(t *testing.T) {
	engine := NewEngine(testPredictionConfig(), stats.NewTable(headToHead("IND", "AUS", "ODI", 10, 7)), quietLogger())

	req := Request{Team1: "IND", Team2: "AUS", Format: "ODI"}
	before, err := engine.Predict(context.Background(), req)
	require.NoError(t, err)
	assert.Greater(t, before.Team1Prob, before.Team2Prob)

	// New generation flips the dominance.
	prevRows := engine.SwapTable(stats.NewTable(headToHead("IND", "AUS", "ODI", 10, 2)))
	assert.Equal(t, 20, prevRows)

	after, err := engine.Predict(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, before.PredictionID, after.PredictionID, "swap must flush cached predictions")
	assert.Less(t, after.Team1Prob, after.Team2Prob)
}

func TestPredictNilTable(t *testing.T) {
	engine := NewEngine(testPredictionConfig(), nil, quietLogger())

	_, err := engine.Predict(context.Background(), Request{Team1: "IND", Team2: "AUS", Format: "ODI"})
	assert.ErrorIs(t, err, models.ErrTableUnavailable)
}

func TestPredictCancelledContext(t *testing.T) {
	table := stats.NewTable(headToHead("IND", "AUS", "ODI", 10, 7))
	engine := NewEngine(testPredictionConfig(), table, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Predict(ctx, Request{Team1: "IND", Team2: "AUS", Format: "ODI"})
	assert.ErrorIs(t, err, context.Canceled)
}
