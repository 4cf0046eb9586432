// Package predictor derives win probabilities for a hypothetical contest
// between two competitors from their aggregated match history.
package predictor

import "github.com/yourusername/pitch-predictor/internal/models"

// The score is a fixed, documented heuristic, not a learned model: recent
// win rate carries most of the weight, with secondary credit for dominant
// victory margins. Runs are scaled against a nominal 200-run reference and
// wickets against a nominal 10-wicket reference.
const (
	winRatioWeight  = 0.7
	runMarginWeight = 0.2
	wktMarginWeight = 0.1

	runMarginScale = 200.0
	wktMarginScale = 10.0
)

// Score maps a stats record to a single non-negative scalar. Missing
// margin averages contribute zero.
func Score(s models.TeamStats) float64 {
	var avgRuns, avgWkts float64
	if s.AvgMarginRuns != nil {
		avgRuns = *s.AvgMarginRuns
	}
	if s.AvgMarginWkts != nil {
		avgWkts = *s.AvgMarginWkts
	}

	return winRatioWeight*s.WinRatio +
		runMarginWeight*(avgRuns/runMarginScale) +
		wktMarginWeight*(avgWkts/wktMarginScale)
}
