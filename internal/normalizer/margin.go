package normalizer

import (
	"strconv"
	"strings"
)

type marginKind int

const (
	marginRuns marginKind = iota
	marginWickets
)

// marginRules classify free-text margins by keyword, checked in order
// against the lowercased input. The runs rule is first so "run" wins when
// a string somehow mentions both.
var marginRules = []struct {
	keyword string
	kind    marginKind
}{
	{"run", marginRuns},
	{"wkt", marginWickets},
	{"wicket", marginWickets},
}

// ParseMargin extracts a victory margin from free text such as "120 runs"
// or "5 wkts". A leading minus sign is kept in the numeric token and the
// absolute value reported. Inputs without digits or without a recognizable
// keyword, and anything that fails to parse, yield (nil, nil) rather than
// an error.
func ParseMargin(margin string) (runs *int, wkts *int) {
	s := strings.ToLower(strings.TrimSpace(margin))
	if s == "" {
		return nil, nil
	}

	var token strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' || ch == '-' {
			token.WriteRune(ch)
		}
	}
	if token.Len() == 0 {
		return nil, nil
	}

	value, err := strconv.Atoi(token.String())
	if err != nil {
		return nil, nil
	}
	if value < 0 {
		value = -value
	}

	for _, rule := range marginRules {
		if !strings.Contains(s, rule.keyword) {
			continue
		}
		switch rule.kind {
		case marginRuns:
			return &value, nil
		case marginWickets:
			return nil, &value
		}
	}

	return nil, nil
}
