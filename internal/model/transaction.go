package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction carries the sign of a transaction, separate from its magnitude.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// ParsedTransaction is one bank statement row after parsing. It has no
// persisted identity until the importer promotes it to a LedgerTransaction.
// Amount is always a non-negative magnitude; sign lives in Direction.
type ParsedTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Direction   Direction
	Reference   string
	Balance     decimal.NullDecimal // bank-reported running balance; advisory only
}

// Signed returns the amount with its sign applied (negative for expenses).
func (t ParsedTransaction) Signed() decimal.Decimal {
	if t.Direction == DirectionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// ParseResult is the outcome of parsing one uploaded statement file. A batch
// with some bad rows and some good rows still has Success=true; Errors holds
// one human-readable message per unparseable row.
type ParseResult struct {
	Success       bool
	Transactions  []ParsedTransaction
	Errors        []string
	BankName      string
	AccountNumber string
	Currency      string
}
