// Package normalize parses the date and amount conventions found across
// South African bank CSV exports into canonical values.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date layouts tried in priority order. Bank exports disagree on separator
// and field order; ISO-style wins when both could match.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"02 Jan 2006",
	"02-Jan-2006",
	"2 Jan 2006",
	"2-Jan-2006",
}

// ParseDate parses a statement date in any supported grammar:
// YYYY[-/]MM[-/]DD, DD[-/]MM[-/]YYYY, or DD[ -]Mon[ -]YYYY (English
// three-letter month, case-insensitive). The result carries no time component.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	// time.Parse wants "Jan"; banks emit "JAN" and "jan" too.
	normalized := normalizeMonthCase(s)

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, normalized)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func normalizeMonthCase(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '-' })
	for _, f := range fields {
		if len(f) == 3 && isAlpha(f) {
			proper := strings.ToUpper(f[:1]) + strings.ToLower(f[1:])
			return strings.Replace(s, f, proper, 1)
		}
	}
	return s
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// ParseAmount parses a currency amount, tolerating a currency symbol,
// whitespace, and comma thousands separators. The sign is preserved; callers
// that infer direction from column provenance ignore it.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}

	cleaned = strings.TrimPrefix(cleaned, "R")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.Join(strings.Fields(cleaned), "")

	// Some exports wrap negatives in parentheses.
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unrecognized amount %q", s)
	}
	return d, nil
}
