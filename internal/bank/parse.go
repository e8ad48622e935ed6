package bank

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/csvline"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/normalize"
)

// layout holds resolved column indices for one statement; -1 means absent.
// Exactly one of two shapes is in play: a single signed amount column, or a
// credit/debit split (money-in/money-out maps onto credit/debit).
type layout struct {
	date    int
	desc    int
	amount  int
	credit  int
	debit   int
	balance int
	ref     int
}

func (l layout) split() bool { return l.amount < 0 }

// resolver inspects one tokenized candidate row and returns the column
// layout when the row is the statement's true header.
type resolver func(fields []string) (layout, bool)

// parseStatement drives the shared extraction loop: bounded header search,
// opportunistic account-number capture from preamble rows, then per-row
// extraction with error continuation. Parsing is a pure function of content.
func parseStatement(content, bankName string, resolve resolver) model.ParseResult {
	res := model.ParseResult{BankName: bankName}
	lines := splitLines(content)

	headerIdx := -1
	var cols layout
	var accountNumber string

	scanned := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if scanned >= headerScanLimit {
			break
		}
		scanned++

		fields := csvline.SplitTrimmed(line)
		if l, ok := resolve(fields); ok {
			headerIdx = i
			cols = l
			break
		}
		if accountNumber == "" {
			accountNumber = accountNumberIn(line)
		}
	}

	if headerIdx < 0 {
		res.Errors = append(res.Errors, "no recognizable header row found in the first lines of the file")
		return res
	}

	for i, line := range lines[headerIdx+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rowNum := headerIdx + i + 2 // 1-based line number in the file

		txn, skip, err := extractRow(csvline.SplitTrimmed(line), cols)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if skip {
			continue
		}
		res.Transactions = append(res.Transactions, txn)
	}

	if len(res.Transactions) > 0 {
		res.Success = true
		res.AccountNumber = accountNumber
		res.Currency = Currency
	}
	return res
}

// extractRow converts one tokenized data row into a transaction. skip=true
// means the row is non-monetary and excluded without an error entry.
func extractRow(fields []string, cols layout) (model.ParsedTransaction, bool, error) {
	var txn model.ParsedTransaction

	if cols.split() {
		// Resolve the populated side first: split exports repeat headers
		// and sprinkle non-monetary rows mid-file, and those must skip
		// silently rather than produce date errors.
		credit := bestEffortAmount(fields, cols.credit)
		debit := bestEffortAmount(fields, cols.debit)

		switch {
		case credit.IsPositive():
			txn.Amount = credit
			txn.Direction = model.DirectionIncome
		case debit.IsPositive():
			txn.Amount = debit.Abs()
			txn.Direction = model.DirectionExpense
		default:
			return txn, true, nil
		}
	} else {
		if cols.amount >= len(fields) {
			return txn, false, fmt.Errorf("missing amount field")
		}
		amount, err := normalize.ParseAmount(fields[cols.amount])
		if err != nil {
			return txn, false, err
		}
		// Sign carries direction only in single-amount exports.
		if amount.IsNegative() {
			txn.Direction = model.DirectionExpense
		} else {
			txn.Direction = model.DirectionIncome
		}
		txn.Amount = amount.Abs()
	}

	if cols.date >= len(fields) {
		return txn, false, fmt.Errorf("missing date field")
	}
	date, err := normalize.ParseDate(fields[cols.date])
	if err != nil {
		return txn, false, err
	}
	txn.Date = date

	if cols.desc >= 0 && cols.desc < len(fields) {
		txn.Description = strings.TrimSpace(fields[cols.desc])
	}
	if txn.Description == "" {
		return txn, false, fmt.Errorf("missing description")
	}

	// Balance and reference are best-effort; their absence never fails a row.
	if cols.balance >= 0 && cols.balance < len(fields) {
		if b, err := normalize.ParseAmount(fields[cols.balance]); err == nil {
			txn.Balance = decimal.NewNullDecimal(b)
		}
	}
	if cols.ref >= 0 && cols.ref < len(fields) {
		txn.Reference = fields[cols.ref]
	}

	return txn, false, nil
}

// bestEffortAmount parses the field at idx, treating absence or garbage as
// an unpopulated column.
func bestEffortAmount(fields []string, idx int) decimal.Decimal {
	if idx < 0 || idx >= len(fields) || fields[idx] == "" {
		return decimal.Zero
	}
	d, err := normalize.ParseAmount(fields[idx])
	if err != nil {
		return decimal.Zero
	}
	return d
}
