package bank

import (
	"errors"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// ErrNoFormat is returned when no adapter, including the generic fallback,
// can extract a single transaction from the file.
var ErrNoFormat = errors.New("could not detect a bank statement format: verify the file is a CSV export from your bank")

// headerSampleLimit is how many leading non-blank lines are offered to each
// adapter as header candidates.
const headerSampleLimit = 5

// adapters in detection priority order: the most distinctive signature
// first, the generic four-token heuristic last. A generic-looking file must
// never be claimed by a specific bank, and a named file must never fall
// through to the generic adapter.
var adapters = []Adapter{
	Capitec{},
	Nedbank{},
	Absa{},
	StandardBank{},
	FNB{},
	Generic{},
}

// Detect routes file content to the owning adapter and parses it. When no
// adapter claims the file, or the claiming adapter extracts nothing, the
// generic adapter is run unconditionally; ErrNoFormat is returned only when
// even that yields zero transactions.
func Detect(content string) (model.ParseResult, error) {
	candidates := sampleHeaderRows(content)

	if a := claim(content, candidates); a != nil {
		if res := a.Parse(content); res.Success {
			return res, nil
		}
	}

	// The claiming adapter produced nothing, or nothing claimed the file.
	if res := (Generic{}).Parse(content); res.Success {
		return res, nil
	}
	return model.ParseResult{BankName: "Unknown"}, ErrNoFormat
}

// claim returns the first adapter whose Detect accepts any candidate row.
func claim(content string, candidates []string) Adapter {
	for _, a := range adapters {
		for _, row := range candidates {
			if a.Detect(content, row) {
				return a
			}
		}
	}
	return nil
}

// ByName returns the adapter for an explicit bank override, or nil.
func ByName(name string) Adapter {
	for _, a := range adapters {
		if strings.EqualFold(a.Name(), name) {
			return a
		}
	}
	return nil
}

// sampleHeaderRows returns the first non-blank lines offered to Detect as
// header candidates.
func sampleHeaderRows(content string) []string {
	var rows []string
	for _, line := range splitLines(content) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
		if len(rows) == headerSampleLimit {
			break
		}
	}
	return rows
}
