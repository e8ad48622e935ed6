package model

import "github.com/shopspring/decimal"

// BankAccount represents one configured bank account a ledger belongs to.
type BankAccount struct {
	ID             string
	Name           string
	Bank           string // institution name, e.g. "FNB"
	LastFour       string
	Currency       string
	OpeningBalance decimal.Decimal
}
