package bank

import "github.com/bankfeed-dev/bankfeed/internal/model"

// Generic is the last-resort adapter for unrecognized exports with a plain
// single-amount layout. It is also run unconditionally when no adapter
// claims a file.
type Generic struct{}

func (Generic) Name() string { return "Unknown (Generic)" }

// Detect requires all four of {date, description, amount, balance} in the
// header row. This four-of-four heuristic belongs to the generic adapter
// only; specific banks are matched on more distinctive signals first.
func (Generic) Detect(content, headerRow string) bool {
	return containsFold(headerRow, "date") &&
		containsFold(headerRow, "desc") &&
		containsFold(headerRow, "amount") &&
		containsFold(headerRow, "balance")
}

func (g Generic) Parse(content string) model.ParseResult {
	return parseStatement(content, g.Name(), genericColumns)
}

func genericColumns(fields []string) (layout, bool) {
	cols := layout{
		date:    headerIndex(fields, "date"),
		desc:    headerIndex(fields, "description", "narrative", "details", "desc"),
		amount:  headerIndex(fields, "amount"),
		credit:  -1,
		debit:   -1,
		balance: headerIndex(fields, "balance"),
		ref:     headerIndex(fields, "reference"),
	}
	return cols, cols.date >= 0 && cols.desc >= 0 && cols.amount >= 0 && cols.balance >= 0
}
