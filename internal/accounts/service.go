// Package accounts provides lookup over the configured bank accounts and
// their current ledger balances.
package accounts

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// BalanceReader reports the signed ledger sum for an account.
type BalanceReader interface {
	Balance(accountID string) (decimal.Decimal, error)
}

// Service provides in-memory lookup over configured bank accounts.
type Service struct {
	accounts []model.BankAccount
	byID     map[string]model.BankAccount
	ledger   BalanceReader
}

// NewService creates a Service from configured accounts and a ledger reader.
func NewService(cfg *config.Config, ledger BalanceReader) (*Service, error) {
	accounts := make([]model.BankAccount, 0, len(cfg.BankAccounts))
	byID := make(map[string]model.BankAccount, len(cfg.BankAccounts))

	for _, ba := range cfg.BankAccounts {
		opening := decimal.Zero
		if ba.OpeningBalance != "" {
			var err error
			opening, err = decimal.NewFromString(ba.OpeningBalance)
			if err != nil {
				return nil, fmt.Errorf("account %s: parsing opening_balance %q: %w", ba.ID, ba.OpeningBalance, err)
			}
		}
		acct := model.BankAccount{
			ID:             ba.ID,
			Name:           ba.Name,
			Bank:           ba.Bank,
			LastFour:       ba.LastFour,
			Currency:       cfg.Currency,
			OpeningBalance: opening,
		}
		accounts = append(accounts, acct)
		byID[acct.ID] = acct
	}

	return &Service{accounts: accounts, byID: byID, ledger: ledger}, nil
}

// All returns all configured accounts.
func (s *Service) All() []model.BankAccount {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.BankAccount, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID is configured.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// CurrentBalance returns opening balance plus the signed ledger sum.
func (s *Service) CurrentBalance(id string) (decimal.Decimal, error) {
	acct, ok := s.byID[id]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("unknown bank account %q", id)
	}
	ledgerSum, err := s.ledger.Balance(id)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("reading ledger balance for %s: %w", id, err)
	}
	return acct.OpeningBalance.Add(ledgerSum), nil
}
