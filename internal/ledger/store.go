package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Store persists one ledger CSV file per bank account under
// <root>/ledger/<accountID>.csv. Every mutation rewrites the whole file
// through a temp file + rename, so concurrent readers never observe a
// partial write; the mutex serializes check-then-write sequences.
type Store struct {
	mu   sync.Mutex
	root string
}

// NewStore creates a Store rooted at a workspace directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// ValidationError rejects a reconciliation set before any mutation.
type ValidationError struct {
	TransactionID string
	Reason        string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("transaction %s: %s", e.TransactionID, e.Reason)
}

// ReadAccount returns all ledger rows for an account. A missing file is an
// empty ledger, not an error.
func (s *Store) ReadAccount(accountID string) ([]model.LedgerTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(accountID)
}

// AppendUnique inserts txns for an account in one atomic write. When
// skipDuplicates is set, transactions whose duplicate key matches an
// existing row are counted and dropped instead of inserted.
func (s *Store) AppendUnique(accountID string, txns []model.LedgerTransaction, skipDuplicates bool) (inserted, duplicates int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.readLocked(accountID)
	if err != nil {
		return 0, 0, err
	}

	seen := make(map[model.DuplicateKey]bool, len(existing))
	for _, txn := range existing {
		seen[txn.Key()] = true
	}

	merged := existing
	for _, txn := range txns {
		if skipDuplicates && seen[txn.Key()] {
			duplicates++
			continue
		}
		seen[txn.Key()] = true
		merged = append(merged, txn)
		inserted++
	}

	if inserted == 0 {
		return 0, duplicates, nil
	}
	if err := s.writeLocked(accountID, merged); err != nil {
		return 0, 0, err
	}
	return inserted, duplicates, nil
}

// MarkReconciled flips the reconciled flag on every listed transaction in
// one atomic write. Any id that is missing from the account's ledger or
// already reconciled rejects the whole set before mutation.
func (s *Store) MarkReconciled(accountID string, ids []string, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns, err := s.readLocked(accountID)
	if err != nil {
		return 0, err
	}

	byID := make(map[string]int, len(txns))
	for i, txn := range txns {
		byID[txn.ID] = i
	}

	for _, id := range ids {
		i, ok := byID[id]
		if !ok {
			return 0, ValidationError{TransactionID: id, Reason: "not found in account " + accountID}
		}
		if txns[i].Reconciled {
			return 0, ValidationError{TransactionID: id, Reason: "already reconciled"}
		}
	}

	for _, id := range ids {
		i := byID[id]
		txns[i].Reconciled = true
		txns[i].ReconciledAt = at
	}

	if err := s.writeLocked(accountID, txns); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Balance returns the signed sum of all ledger rows for an account.
func (s *Store) Balance(accountID string) (decimal.Decimal, error) {
	txns, err := s.ReadAccount(accountID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	total := decimal.Zero
	for _, txn := range txns {
		total = total.Add(txn.Signed())
	}
	return total, nil
}

func (s *Store) readLocked(accountID string) ([]model.LedgerTransaction, error) {
	path := s.accountPath(accountID)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txns, nil
}

// writeLocked rewrites the account file atomically: full content to a temp
// file in the same directory, then rename over the old file.
func (s *Store) writeLocked(accountID string, txns []model.LedgerTransaction) error {
	path := s.accountPath(accountID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "ledger-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteTransactions(tmp, txns); err != nil {
		tmp.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp ledger: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing ledger %s: %w", path, err)
	}
	return nil
}

func (s *Store) accountPath(accountID string) string {
	return filepath.Join(s.root, "ledger", accountID+".csv")
}
