// Package bank turns heterogeneous bank CSV exports into a canonical
// transaction stream. Each supported institution has an Adapter that owns
// header detection and row extraction for that bank's dialect; a Detector
// tries them in a fixed specificity order and falls back to a generic
// adapter.
package bank

import (
	"regexp"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Currency reported on every adapter-specific parse success.
const Currency = "ZAR"

// headerScanLimit bounds the search for the true header row. Exports often
// carry a few preamble rows (account banner, statement period) before it.
const headerScanLimit = 10

// Adapter is one bank's detection + parsing strategy for its CSV dialect.
type Adapter interface {
	// Name is the institution name reported in ParseResult.BankName.
	Name() string
	// Detect reports whether this adapter should own the file, given the
	// full content and one sampled header-candidate row.
	Detect(content, headerRow string) bool
	// Parse extracts transactions from the full file content. Row-level
	// failures are collected in ParseResult.Errors; the batch succeeds if
	// at least one transaction parsed.
	Parse(content string) model.ParseResult
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// headerIndex returns the index of the first field containing any of the
// given tokens (case-insensitive substring match), or -1. Column positions
// are never fixed; exports reorder and rename columns between app versions.
func headerIndex(fields []string, tokens ...string) int {
	for i, f := range fields {
		lf := strings.ToLower(f)
		for _, tok := range tokens {
			if strings.Contains(lf, tok) {
				return i
			}
		}
	}
	return -1
}

// splitLines splits file content into lines, tolerating CRLF endings.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}

var accountNumberPattern = regexp.MustCompile(`\d{10,}`)

// accountNumberIn returns a 10+-digit run found in the line, or "".
// Preamble rows often carry the account number before the header appears.
func accountNumberIn(line string) string {
	return accountNumberPattern.FindString(line)
}
