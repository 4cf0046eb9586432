// Package stats provides the canonical match table and the filtered
// aggregator that computes recent-form statistics over it.
package stats

import (
	"sort"
	"strings"

	"github.com/yourusername/pitch-predictor/internal/models"
)

// Table is the canonical match table. It is built once from normalized
// records and never mutated afterwards, so any number of aggregations may
// run against it concurrently without locking.
type Table struct {
	records []models.MatchRecord
	byTeam  map[string][]int
	teams   []string
	formats []string
}

// NewTable builds a Table from canonical records. Records are sorted by
// start date descending once at construction so per-query windows are a
// simple prefix scan. The allowed format set is discovered here and fixed
// for the lifetime of the table.
func NewTable(records []models.MatchRecord) *Table {
	sorted := make([]models.MatchRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})

	t := &Table{
		records: sorted,
		byTeam:  make(map[string][]int),
	}

	teamSet := make(map[string]struct{})
	formatSet := make(map[string]struct{})
	for i, rec := range sorted {
		t.byTeam[rec.Team] = append(t.byTeam[rec.Team], i)
		teamSet[rec.Team] = struct{}{}
		if rec.Format != "" {
			formatSet[rec.Format] = struct{}{}
		}
	}

	for team := range teamSet {
		t.teams = append(t.teams, team)
	}
	sort.Strings(t.teams)

	for format := range formatSet {
		t.formats = append(t.formats, format)
	}
	sort.Strings(t.formats)

	return t
}

// Len returns the number of canonical records.
func (t *Table) Len() int {
	return len(t.records)
}

// Teams returns the sorted competitor codes present in the table.
func (t *Table) Teams() []string {
	out := make([]string, len(t.teams))
	copy(out, t.teams)
	return out
}

// Formats returns the sorted canonical formats present in the table,
// the set the API accepts for prediction requests.
func (t *Table) Formats() []string {
	out := make([]string, len(t.formats))
	copy(out, t.formats)
	return out
}

// HasFormat reports whether the given format is present in the table.
// The check is case-insensitive, matching the aggregator's format filter.
func (t *Table) HasFormat(format string) bool {
	for _, f := range t.formats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// Records returns the records for direct inspection in tests.
func (t *Table) Records() []models.MatchRecord {
	out := make([]models.MatchRecord, len(t.records))
	copy(out, t.records)
	return out
}
