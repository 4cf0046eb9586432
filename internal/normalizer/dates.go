package normalizer

import (
	"strings"
	"time"
)

// DateOutcome classifies how a start date was parsed.
type DateOutcome int

const (
	// DateStrictMatch means one of the known dataset layouts matched.
	DateStrictMatch DateOutcome = iota
	// DateGenericMatch means only the broader best-effort pass matched.
	DateGenericMatch
	// DateUnparseable means no strategy produced a date; the row is dropped.
	DateUnparseable
)

// strictLayouts are the formats the dataset is known to use, tried in
// order: day-month-abbrev-2digit-year, day-month-abbrev-4digit-year,
// day month-abbrev year, ISO.
var strictLayouts = []string{
	"2-Jan-06",
	"2-Jan-2006",
	"2 Jan 2006",
	"2006-01-02",
}

// genericLayouts back the single best-effort pass taken after every strict
// layout has failed.
var genericLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2006/01/02",
}

// ParseStartDate attempts the strict layouts in order, stopping at the
// first success, then falls back to one generic best-effort pass. The
// outcome is explicit so callers can distinguish strict, fallback and
// failed parses.
func ParseStartDate(s string) (time.Time, DateOutcome) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, DateUnparseable
	}

	for _, layout := range strictLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, DateStrictMatch
		}
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, DateGenericMatch
		}
	}

	return time.Time{}, DateUnparseable
}
