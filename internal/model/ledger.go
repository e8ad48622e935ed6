package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerTransaction is a persisted row in a bank account's ledger. Created by
// import or manual entry; after that only the reconciliation fields change.
type LedgerTransaction struct {
	ID           string // uuid
	AccountID    string
	Date         time.Time
	Description  string
	Amount       decimal.Decimal // non-negative magnitude
	Direction    Direction
	Reference    string
	CategoryID   string
	Reconciled   bool
	ReconciledAt time.Time // zero unless Reconciled
}

// Signed returns the amount with its sign applied (negative for expenses).
func (t LedgerTransaction) Signed() decimal.Decimal {
	if t.Direction == DirectionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// DuplicateKey identifies a transaction for duplicate suppression. Description
// is intentionally excluded: bank re-exports frequently reformat it.
type DuplicateKey struct {
	Date      string // yyyy-mm-dd
	Amount    string // magnitude rounded to 2dp
	Direction Direction
}

// Key returns the duplicate-suppression key for a ledger transaction.
func (t LedgerTransaction) Key() DuplicateKey {
	return DuplicateKey{
		Date:      t.Date.Format("2006-01-02"),
		Amount:    t.Amount.Round(2).StringFixed(2),
		Direction: t.Direction,
	}
}
