// Package recon matches a user-selected set of ledger rows against an
// externally reported statement balance and commits the reconciliation mark.
package recon

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// epsilon under which a balance difference is reported as balanced.
var epsilon = decimal.NewFromFloat(0.01)

// Ledger is the slice of the ledger store the matcher reads and writes.
type Ledger interface {
	ReadAccount(accountID string) ([]model.LedgerTransaction, error)
	MarkReconciled(accountID string, ids []string, at time.Time) (int, error)
}

// BalanceLookup returns the current balance of a configured bank account.
type BalanceLookup interface {
	Exists(id string) bool
	CurrentBalance(id string) (decimal.Decimal, error)
}

// Service commits reconciliation marks against the ledger.
type Service struct {
	ledger   Ledger
	accounts BalanceLookup
	now      func() time.Time
}

// NewService creates a reconciliation Service.
func NewService(ledger Ledger, accounts BalanceLookup) *Service {
	return &Service{ledger: ledger, accounts: accounts, now: time.Now}
}

// Request selects unreconciled ledger rows to mark against a statement.
// StatementBalance and StatementDate are optional and advisory only.
type Request struct {
	TransactionIDs   []string
	AccountID        string
	StatementBalance decimal.NullDecimal
	StatementDate    time.Time
}

// Result reports a committed reconciliation. Difference and Balanced are set
// only when the request carried a statement balance; an unbalanced outcome
// never blocks the commit.
type Result struct {
	Reconciled    int
	SelectedTotal decimal.Decimal
	Difference    decimal.NullDecimal
	Balanced      bool
}

// Reconcile validates the selected set, computes the advisory balance
// difference, and marks every selected transaction reconciled. Any id that
// belongs to another account or is already reconciled rejects the whole
// request with nothing committed.
func (s *Service) Reconcile(req Request) (Result, error) {
	if !s.accounts.Exists(req.AccountID) {
		return Result{}, fmt.Errorf("unknown bank account %q", req.AccountID)
	}
	if len(req.TransactionIDs) == 0 {
		return Result{}, fmt.Errorf("no transactions selected")
	}

	txns, err := s.ledger.ReadAccount(req.AccountID)
	if err != nil {
		return Result{}, fmt.Errorf("reading ledger: %w", err)
	}

	byID := make(map[string]model.LedgerTransaction, len(txns))
	for _, txn := range txns {
		byID[txn.ID] = txn
	}

	selectedTotal := decimal.Zero
	for _, tid := range req.TransactionIDs {
		txn, ok := byID[tid]
		if !ok {
			return Result{}, fmt.Errorf("transaction %s does not belong to account %s", tid, req.AccountID)
		}
		if txn.Reconciled {
			return Result{}, fmt.Errorf("transaction %s is already reconciled", tid)
		}
		selectedTotal = selectedTotal.Add(txn.Signed())
	}

	result := Result{SelectedTotal: selectedTotal}

	if req.StatementBalance.Valid {
		current, err := s.accounts.CurrentBalance(req.AccountID)
		if err != nil {
			return Result{}, err
		}
		diff := req.StatementBalance.Decimal.Sub(current).Sub(selectedTotal)
		result.Difference = decimal.NewNullDecimal(diff)
		result.Balanced = diff.Abs().LessThan(epsilon)
	}

	// The balance comparison is advisory: reconciliation is a user-asserted
	// action and commits regardless of agreement.
	n, err := s.ledger.MarkReconciled(req.AccountID, req.TransactionIDs, s.now().UTC())
	if err != nil {
		return Result{}, err
	}
	result.Reconciled = n

	return result, nil
}
