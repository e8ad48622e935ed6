package bank

import "github.com/bankfeed-dev/bankfeed/internal/model"

// Absa parses ABSA exports: separate debit and credit amount columns.
//
//	Transaction Date,Description,Debit Amount,Credit Amount,Balance
//	15-01-2024,Makro Hardware,890.00,,4300.00
type Absa struct{}

func (Absa) Name() string { return "ABSA" }

// Detect matches on the bank name or on the debit/credit column pair.
// Nedbank shares the pair, so the detector must try Nedbank first.
func (Absa) Detect(content, headerRow string) bool {
	if containsFold(content, "absa") {
		return true
	}
	return containsFold(headerRow, "debit") && containsFold(headerRow, "credit")
}

func (a Absa) Parse(content string) model.ParseResult {
	return parseStatement(content, a.Name(), absaColumns)
}

func absaColumns(fields []string) (layout, bool) {
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
