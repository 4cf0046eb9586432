package normalizer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pitch-predictor/internal/models"
)

func newTestNormalizer() *RecordNormalizer {
	return New(models.DefaultCodeMap(), nil)
}

func TestParseMargin(t *testing.T) {
	tests := []struct {
		name  string
		input string
		runs  *int
		wkts  *int
	}{
		{name: "runs margin", input: "120 runs", runs: intPtr(120)},
		{name: "wickets short form", input: "5 wkts", wkts: intPtr(5)},
		{name: "wickets long form", input: "3 wickets", wkts: intPtr(3)},
		{name: "singular run", input: "1 run", runs: intPtr(1)},
		{name: "negative normalized to absolute", input: "-45 runs", runs: intPtr(45)},
		{name: "mixed case", input: "7 WKTS", wkts: intPtr(7)},
		{name: "empty string", input: ""},
		{name: "whitespace only", input: "   "},
		{name: "no digits", input: "by an innings"},
		{name: "digits without keyword", input: "42"},
		{name: "keyword without digits", input: "runs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, wkts := ParseMargin(tt.input)
			assertIntPtr(t, tt.runs, runs, "runs")
			assertIntPtr(t, tt.wkts, wkts, "wkts")
		})
	}
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"odi", "ODI"},
		{" Test ", "TEST"},
		{"T20", "T20I"},
		{"Twenty20", "T20I"},
		{"t 20", "T20I"},
		{"T20I", "T20I"},
		{"100-ball", "100-BALL"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFormat(tt.input))
		})
	}
}

func TestNormalizeFormatIdempotent(t *testing.T) {
	inputs := []string{"odi", "T20", "Twenty20", "test", "T20I"}
	for _, in := range inputs {
		once := NormalizeFormat(in)
		assert.Equal(t, once, NormalizeFormat(once), "second pass must not change %q", in)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Australia", "australia"},
		{"  New   Zealand ", "new zealand"},
		{"India (home)", "india"},
		{"West Indies (away) (day-night)", "west indies"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

func TestParseStartDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		outcome DateOutcome
	}{
		{"short year", "15-Mar-23", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), DateStrictMatch},
		{"full year", "15-Mar-2023", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), DateStrictMatch},
		{"spaced", "15 Mar 2023", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), DateStrictMatch},
		{"iso", "2023-03-15", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), DateStrictMatch},
		{"generic slashes", "2023/03/15", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), DateGenericMatch},
		{"garbage", "not a date", time.Time{}, DateUnparseable},
		{"empty", "", time.Time{}, DateUnparseable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outcome := ParseStartDate(tt.input)
			assert.Equal(t, tt.outcome, outcome)
			if tt.outcome != DateUnparseable {
				assert.True(t, tt.want.Equal(got), "want %v got %v", tt.want, got)
			}
		})
	}
}

func TestNormalizeRow(t *testing.T) {
	n := newTestNormalizer()

	row := models.RawMatchRow{
		Team:      "ind",
		Opponent:  "Australia (home)",
		Format:    "Twenty20",
		StartDate: "15-Mar-23",
		Result:    " Won ",
		Margin:    "5 wkts",
	}

	rec, ok := n.NormalizeRow(&row)
	require.True(t, ok)

	assert.Equal(t, "IND", rec.Team)
	assert.Equal(t, "australia", rec.OpponentNorm)
	assert.Equal(t, "AUS", rec.OpponentCode)
	assert.Equal(t, "T20I", rec.Format)
	assert.Equal(t, "won", rec.Result)
	assert.True(t, rec.Won())
	require.NotNil(t, rec.MarginWkts)
	assert.Equal(t, 5, *rec.MarginWkts)
	assert.Nil(t, rec.MarginRuns)
}

func TestNormalizeRowOpponentCodePassthrough(t *testing.T) {
	n := newTestNormalizer()

	row := models.RawMatchRow{
		Team:      "IND",
		Opponent:  "zim",
		Format:    "ODI",
		StartDate: "2021-06-01",
		Result:    "lost",
	}

	rec, ok := n.NormalizeRow(&row)
	require.True(t, ok)
	// "zim" is not in the name map, so the uppercased original stands in.
	assert.Equal(t, "ZIM", rec.OpponentCode)
}

// Canonical values must survive a second pass unchanged: feeding a
// record's own fields back through each normalization step is a no-op.
func TestNormalizeIdempotent(t *testing.T) {
	n := newTestNormalizer()

	raw := models.RawMatchRow{
		Team:      " ind ",
		Opponent:  "New Zealand (away)",
		Format:    "Twenty20",
		StartDate: "15-Mar-23",
		Result:    "Won",
		Margin:    "12 runs",
	}
	rec, ok := n.NormalizeRow(&raw)
	require.True(t, ok)

	assert.Equal(t, rec.Team, strings.ToUpper(strings.TrimSpace(rec.Team)))
	assert.Equal(t, rec.Format, NormalizeFormat(rec.Format))
	assert.Equal(t, rec.OpponentNorm, NormalizeName(rec.OpponentNorm))
	assert.Equal(t, rec.Result, strings.ToLower(strings.TrimSpace(rec.Result)))

	date, outcome := ParseStartDate(rec.StartDate.Format("2006-01-02"))
	assert.Equal(t, DateStrictMatch, outcome)
	assert.True(t, rec.StartDate.Equal(date))
}

func TestNormalizeDropsUnparseableDates(t *testing.T) {
	n := newTestNormalizer()

	rows := []models.RawMatchRow{
		{Team: "IND", Opponent: "Australia", Format: "ODI", StartDate: "15-Mar-23", Result: "won"},
		{Team: "IND", Opponent: "Australia", Format: "ODI", StartDate: "someday", Result: "won"},
		{Team: "IND", Opponent: "Australia", Format: "ODI", StartDate: "", Result: "lost"},
	}

	table := n.Normalize(rows)
	assert.Equal(t, 1, table.Len())
}

func intPtr(v int) *int { return &v }

func assertIntPtr(t *testing.T, want, got *int, label string) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, label)
		return
	}
	require.NotNil(t, got, label)
	assert.Equal(t, *want, *got, label)
}
