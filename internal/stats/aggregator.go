package stats

import (
	"strings"

	"github.com/yourusername/pitch-predictor/internal/models"
)

// DefaultLookback is the recency window applied when a query does not set
// its own: only the most recent N matching rows feed the aggregate.
const DefaultLookback = 20

// Query selects the rows feeding a TeamStats aggregation. Team is required;
// Opponent and Format are optional filters. Format matching is
// case-insensitive. A zero Lookback means DefaultLookback.
type Query struct {
	Team     string
	Opponent string
	Format   string
	Lookback int
}

// TeamStats computes win/loss counts and margin averages over the most
// recent rows matching the query. It is a pure function of the table and
// its arguments: a query matching zero rows returns a zero-valued stats
// record with nil margin averages, never an error.
func (t *Table) TeamStats(q Query) models.TeamStats {
	lookback := q.Lookback
	if lookback <= 0 {
		lookback = DefaultLookback
	}

	var stats models.TeamStats
	var runsSum, wktsSum float64
	var runsN, wktsN int

	// byTeam indices preserve the table's date-descending order, so the
	// first lookback matches are exactly the most recent ones.
	for _, idx := range t.byTeam[q.Team] {
		rec := &t.records[idx]
		if q.Format != "" && !strings.EqualFold(rec.Format, q.Format) {
			continue
		}
		if q.Opponent != "" && rec.OpponentCode != q.Opponent {
			continue
		}

		stats.Total++
		if rec.Won() {
			stats.Wins++
		} else if rec.Lost() {
			stats.Losses++
		}
		if rec.MarginRuns != nil {
			runsSum += float64(*rec.MarginRuns)
			runsN++
		}
		if rec.MarginWkts != nil {
			wktsSum += float64(*rec.MarginWkts)
			wktsN++
		}

		if stats.Total == lookback {
			break
		}
	}

	if stats.Total > 0 {
		stats.WinRatio = float64(stats.Wins) / float64(stats.Total)
	}
	if runsN > 0 {
		avg := runsSum / float64(runsN)
		stats.AvgMarginRuns = &avg
	}
	if wktsN > 0 {
		avg := wktsSum / float64(wktsN)
		stats.AvgMarginWkts = &avg
	}

	return stats
}
