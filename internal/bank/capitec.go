package bank

import "github.com/bankfeed-dev/bankfeed/internal/model"

// Capitec parses Capitec exports: separate "Money In" and "Money Out"
// columns, both unsigned.
//
//	Date,Description,Money In,Money Out,Balance
//	15/01/2024,Salary,25000.00,,37000.00
type Capitec struct{}

func (Capitec) Name() string { return "Capitec" }

// Detect matches on the bank name or on the money-in/money-out column pair,
// which no other supported bank uses.
func (Capitec) Detect(content, headerRow string) bool {
	if containsFold(content, "capitec") {
		return true
	}
	return containsFold(headerRow, "money in") && containsFold(headerRow, "money out")
}

func (c Capitec) Parse(content string) model.ParseResult {
	return parseStatement(content, c.Name(), capitecColumns)
}

func capitecColumns(fields []string) (layout, bool) {
	cols := layout{
		date:    headerIndex(fields, "date"),
		desc:    headerIndex(fields, "description", "narrative", "details"),
		amount:  -1,
		credit:  headerIndex(fields, "money in"),
		debit:   headerIndex(fields, "money out"),
		balance: headerIndex(fields, "balance"),
		ref:     headerIndex(fields, "reference"),
	}
	return cols, cols.date >= 0 && cols.desc >= 0 && cols.credit >= 0 && cols.debit >= 0
}
