package bank

import "github.com/bankfeed-dev/bankfeed/internal/model"

// Nedbank parses Nedbank exports: debit/credit split columns behind a
// preamble banner that carries the account number.
//
//	Account Number : 1140253648001
//	Statement Period: 01 Jan 2024 - 31 Jan 2024
//	Date,Description,Debit,Credit,Balance
//	15 Jan 2024,Garnishee order,,1500.00,9800.00
type Nedbank struct{}

func (Nedbank) Name() string { return "Nedbank" }

// Detect matches on the bank name, or on the debit/credit pair combined with
// the "account number" banner Nedbank exports lead with.
func (Nedbank) Detect(content, headerRow string) bool {
	if containsFold(content, "nedbank") {
		return true
	}
	return containsFold(headerRow, "debit") && containsFold(headerRow, "credit") &&
		containsFold(content, "account number")
}

func (n Nedbank) Parse(content string) model.ParseResult {
	return parseStatement(content, n.Name(), nedbankColumns)
}

func nedbankColumns(fields []string) (layout, bool) {
	cols := layout{
		date:    headerIndex(fields, "date"),
		desc:    headerIndex(fields, "description", "narrative", "details"),
		amount:  -1,
		credit:  headerIndex(fields, "credit"),
		debit:   headerIndex(fields, "debit"),
		balance: headerIndex(fields, "balance"),
		ref:     headerIndex(fields, "reference"),
	}
	return cols, cols.date >= 0 && cols.desc >= 0 && cols.credit >= 0 && cols.debit >= 0
}
