// Package importer promotes parsed statement batches into the ledger,
// suppressing duplicates against rows already present.
package importer

import (
	"fmt"

	"github.com/bankfeed-dev/bankfeed/internal/bank"
	"github.com/bankfeed-dev/bankfeed/internal/id"
	"github.com/bankfeed-dev/bankfeed/internal/ledger"
	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Ledger is the slice of the ledger store the importer writes through.
type Ledger interface {
	AppendUnique(accountID string, txns []model.LedgerTransaction, skipDuplicates bool) (inserted, duplicates int, err error)
}

// AccountChecker tests whether a bank account is configured.
type AccountChecker interface {
	Exists(id string) bool
}

// Service orchestrates parse → dedupe → atomic bulk insert.
type Service struct {
	ledger   Ledger
	accounts AccountChecker
}

// NewService creates an import Service.
func NewService(ledger Ledger, accounts AccountChecker) *Service {
	return &Service{ledger: ledger, accounts: accounts}
}

// Request is one import attempt against a single bank account.
type Request struct {
	Content        string // raw CSV text
	AccountID      string
	BankName       string // explicit adapter override; empty = auto-detect
	CategoryID     string // default category applied to every imported row
	SkipDuplicates bool
}

// Summary reports the outcome of a committed import.
type Summary struct {
	Imported   int
	Duplicates int
	Message    string
	Parse      model.ParseResult
}

// Import parses the content, filters duplicates, and inserts the accepted
// subset in one atomic write. Row-level parse errors are carried in the
// summary; a batch that parsed zero transactions is an error.
func (s *Service) Import(req Request) (Summary, error) {
	if !s.accounts.Exists(req.AccountID) {
		return Summary{}, fmt.Errorf("unknown bank account %q", req.AccountID)
	}

	res, err := s.parse(req)
	if err != nil {
		return Summary{}, err
	}

	txns := make([]model.LedgerTransaction, 0, len(res.Transactions))
	for _, p := range res.Transactions {
		ref := p.Reference
		if ref == "" {
			ref = id.ImportReference(res.BankName, p.Date, p.Description)
		}
		txns = append(txns, model.LedgerTransaction{
			ID:          id.NewTransactionID(),
			AccountID:   req.AccountID,
			Date:        p.Date,
			Description: p.Description,
			Amount:      p.Amount,
			Direction:   p.Direction,
			Reference:   ref,
			CategoryID:  req.CategoryID,
		})
	}

	inserted, duplicates, err := s.ledger.AppendUnique(req.AccountID, txns, req.SkipDuplicates)
	if err != nil {
		return Summary{}, fmt.Errorf("inserting transactions: %w", err)
	}

	msg := fmt.Sprintf("Imported %d transactions from %s", inserted, res.BankName)
	if duplicates > 0 {
		msg += fmt.Sprintf(" (%d duplicates skipped)", duplicates)
	}
	if len(res.Errors) > 0 {
		msg += fmt.Sprintf("; %d rows could not be parsed", len(res.Errors))
	}

	return Summary{
		Imported:   inserted,
		Duplicates: duplicates,
		Message:    msg,
		Parse:      res,
	}, nil
}

func (s *Service) parse(req Request) (model.ParseResult, error) {
	if req.BankName != "" {
		adapter := bank.ByName(req.BankName)
		if adapter == nil {
			return model.ParseResult{}, fmt.Errorf("unsupported bank %q", req.BankName)
		}
		res := adapter.Parse(req.Content)
		if !res.Success {
			return model.ParseResult{}, fmt.Errorf("no transactions found in %s statement", adapter.Name())
		}
		return res, nil
	}
	return bank.Detect(req.Content)
}

// ensure the concrete store satisfies the importer's view of it.
var _ Ledger = (*ledger.Store)(nil)
