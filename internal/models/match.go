// Package models defines the data types shared across the prediction pipeline.
package models

import "time"

// RawMatchRow represents one row of the source dataset before normalization.
// Every field is free text exactly as the source provided it, stray
// whitespace included.
type RawMatchRow struct {
	Team      string `json:"team"`
	Opponent  string `json:"opponent"`
	Format    string `json:"format"`
	StartDate string `json:"start_date"`
	Result    string `json:"result"`
	Margin    string `json:"margin"`
}

// MatchRecord is one row of the canonical table produced by the normalizer.
// StartDate is always set; rows whose date cannot be parsed never become
// records. MarginRuns and MarginWkts are mutually exclusive.
type MatchRecord struct {
	Team         string    `json:"team"`
	Opponent     string    `json:"opponent"`
	OpponentNorm string    `json:"opponent_norm"`
	OpponentCode string    `json:"opponent_code"`
	Format       string    `json:"format"`
	StartDate    time.Time `json:"start_date"`
	Result       string    `json:"result"`
	MarginRuns   *int      `json:"margin_runs,omitempty"`
	MarginWkts   *int      `json:"margin_wkts,omitempty"`
}

// Won reports whether the recorded side won the match.
func (m *MatchRecord) Won() bool {
	return m.Result == ResultWon
}

// Lost reports whether the recorded side lost the match.
func (m *MatchRecord) Lost() bool {
	return m.Result == ResultLost
}

// Normalized result text values.
const (
	ResultWon  = "won"
	ResultLost = "lost"
)

// TeamStats is the output of the filtered aggregator: win/loss counts and
// margin averages over the most recent matches in a filter window.
type TeamStats struct {
	Total         int      `json:"total"`
	Wins          int      `json:"wins"`
	Losses        int      `json:"losses"`
	WinRatio      float64  `json:"win_ratio"`
	AvgMarginRuns *float64 `json:"avg_margin_runs"`
	AvgMarginWkts *float64 `json:"avg_margin_wkts"`
}
