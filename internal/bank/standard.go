package bank

import "github.com/bankfeed-dev/bankfeed/internal/model"

// StandardBank parses Standard Bank exports: a single signed amount column
// plus a dedicated reference-number column.
//
//	Date,Reference Number,Description,Amount,Balance
//	15 Jan 2024,REF00912344,Netflorist,-320.00,8100.00
type StandardBank struct{}

func (StandardBank) Name() string { return "Standard Bank" }

// Detect matches on the bank name or on the reference-number column no
// other supported bank emits.
func (StandardBank) Detect(content, headerRow string) bool {
	if containsFold(content, "standard bank") {
		return true
	}
	return containsFold(headerRow, "reference number")
}

func (s StandardBank) Parse(content string) model.ParseResult {
	return parseStatement(content, s.Name(), standardBankColumns)
}

func standardBankColumns(fields []string) (layout, bool) {
	cols := layout{
		date:    headerIndex(fields, "date"),
		desc:    headerIndex(fields, "description", "narrative", "details"),
		amount:  headerIndex(fields, "amount"),
		credit:  -1,
		debit:   -1,
		balance: headerIndex(fields, "balance"),
		ref:     headerIndex(fields, "reference"),
	}
	return cols, cols.date >= 0 && cols.desc >= 0 && cols.amount >= 0
}
