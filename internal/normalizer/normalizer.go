// Package normalizer canonicalizes raw match rows into the analysis-ready
// table: team and format codes, opponent resolution, date parsing with
// ordered fallbacks and margin extraction. Malformed rows never abort the
// pipeline; every step degrades to a nil or passthrough value, and only
// rows without a parseable date are dropped.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitch-predictor/internal/models"
	"github.com/yourusername/pitch-predictor/internal/stats"
)

// formatSynonyms collapses common format label variants onto canonical
// codes. Keys are compared after whitespace stripping and uppercasing.
var formatSynonyms = map[string]string{
	"T20":      "T20I",
	"TWENTY20": "T20I",
}

var (
	parentheticalRe = regexp.MustCompile(`\(.*?\)`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// RecordNormalizer converts raw dataset rows to canonical MatchRecords.
type RecordNormalizer struct {
	codes  *models.CodeMap
	logger *logrus.Logger
}

// New creates a record normalizer bound to a competitor code map.
func New(codes *models.CodeMap, logger *logrus.Logger) *RecordNormalizer {
	return &RecordNormalizer{codes: codes, logger: logger}
}

// Normalize canonicalizes raw rows and builds the immutable table. Rows
// whose start date cannot be parsed by any strategy are excluded; this is
// a data-quality filter, not an error.
func (n *RecordNormalizer) Normalize(rows []models.RawMatchRow) *stats.Table {
	records := make([]models.MatchRecord, 0, len(rows))
	dropped := 0

	for i := range rows {
		rec, ok := n.NormalizeRow(&rows[i])
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	if n.logger != nil {
		n.logger.WithFields(logrus.Fields{
			"rows_in":      len(rows),
			"rows_kept":    len(records),
			"rows_dropped": dropped,
		}).Info("Dataset normalized")
	}

	return stats.NewTable(records)
}

// NormalizeRow canonicalizes a single row. The boolean is false only when
// the start date is unparseable.
func (n *RecordNormalizer) NormalizeRow(row *models.RawMatchRow) (models.MatchRecord, bool) {
	date, outcome := ParseStartDate(row.StartDate)
	if outcome == DateUnparseable {
		if n.logger != nil {
			n.logger.WithField("start_date", row.StartDate).Debug("Dropping row with unparseable date")
		}
		return models.MatchRecord{}, false
	}

	opponent := strings.TrimSpace(row.Opponent)
	opponentNorm := NormalizeName(opponent)

	rec := models.MatchRecord{
		Team:         strings.ToUpper(strings.TrimSpace(row.Team)),
		Opponent:     opponent,
		OpponentNorm: opponentNorm,
		OpponentCode: n.resolveOpponentCode(opponent, opponentNorm),
		Format:       NormalizeFormat(row.Format),
		StartDate:    date,
		Result:       strings.ToLower(strings.TrimSpace(row.Result)),
	}
	rec.MarginRuns, rec.MarginWkts = ParseMargin(row.Margin)

	return rec, true
}

// resolveOpponentCode maps the normalized opponent name to a competitor
// code. When the name is not in the map, the opponent field may already be
// a code (e.g. "IND"), so the uppercased trimmed original passes through.
func (n *RecordNormalizer) resolveOpponentCode(opponent, opponentNorm string) string {
	if code, ok := n.codes.CodeFor(opponentNorm); ok {
		return code
	}
	return strings.ToUpper(opponent)
}

// NormalizeFormat strips all whitespace, uppercases and collapses known
// synonyms. Unresolved formats pass through verbatim.
func NormalizeFormat(format string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, format)
	upper := strings.ToUpper(stripped)
	if canonical, ok := formatSynonyms[upper]; ok {
		return canonical
	}
	return upper
}

// NormalizeName produces the normalized opponent display name: strips
// parenthetical substrings, collapses repeated whitespace, lowercases and
// trims.
func NormalizeName(name string) string {
	s := parentheticalRe.ReplaceAllString(name, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}
