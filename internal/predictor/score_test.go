package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/pitch-predictor/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		stats models.TeamStats
		want  float64
	}{
		{
			name:  "zero stats",
			stats: models.TeamStats{},
			want:  0.0,
		},
		{
			name:  "win ratio only",
			stats: models.TeamStats{Total: 10, Wins: 10, WinRatio: 1.0},
			want:  0.7,
		},
		{
			name: "full scales saturate to one",
			stats: models.TeamStats{
				Total:         10,
				Wins:          10,
				WinRatio:      1.0,
				AvgMarginRuns: floatPtr(200),
				AvgMarginWkts: floatPtr(10),
			},
			want: 1.0,
		},
		{
			name: "weighted blend",
			stats: models.TeamStats{
				Total:         10,
				Wins:          5,
				WinRatio:      0.5,
				AvgMarginRuns: floatPtr(100),
				AvgMarginWkts: floatPtr(5),
			},
			// 0.7*0.5 + 0.2*0.5 + 0.1*0.5
			want: 0.5,
		},
		{
			name:  "nil margins contribute zero",
			stats: models.TeamStats{Total: 4, Wins: 2, WinRatio: 0.5},
			want:  0.35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.stats), 1e-9)
		})
	}
}

func TestScoreNonNegative(t *testing.T) {
	s := models.TeamStats{Total: 5, Wins: 0, Losses: 5, WinRatio: 0}
	assert.GreaterOrEqual(t, Score(s), 0.0)
}
