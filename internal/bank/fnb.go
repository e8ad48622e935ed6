package bank

import "github.com/bankfeed-dev/bankfeed/internal/model"

// FNB parses First National Bank exports: a single signed amount column,
// negative for money out.
//
//	Date,Description,Amount,Balance
//	2024/01/15,Woolworths,-450.00,12000.00
type FNB struct{}

func (FNB) Name() string { return "FNB" }

// Detect claims the file only on an explicit bank-name mention. FNB's column
// shape is indistinguishable from the generic four-token layout, so anything
// unnamed is left for the generic adapter.
func (FNB) Detect(content, headerRow string) bool {
	return containsFold(content, "fnb") || containsFold(content, "first national bank")
}

func (f FNB) Parse(content string) model.ParseResult {
	return parseStatement(content, f.Name(), fnbColumns)
}

func fnbColumns(fields []string) (layout, bool) {
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
