package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

func txn(id, desc, amount string, dir model.Direction) model.LedgerTransaction {
	return model.LedgerTransaction{
		ID:          id,
		AccountID:   "cheque",
		Date:        date(2024, 1, 15),
		Description: desc,
		Amount:      dec(amount),
		Direction:   dir,
	}
}

func TestAppendUnique_SkipsDuplicates(t *testing.T) {
	store := NewStore(t.TempDir())

	first := []model.LedgerTransaction{
		txn("t1", "Woolworths", "450.00", model.DirectionExpense),
		txn("t2", "Salary", "25000.00", model.DirectionIncome),
	}
	inserted, duplicates, err := store.AppendUnique("cheque", first, true)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Equal(t, 0, duplicates)

	// Re-import of the same batch under new IDs: all suppressed. The
	// duplicate key ignores description, so a reformatted description
	// still counts as the same transaction.
	second := []model.LedgerTransaction{
		txn("t3", "WOOLWORTHS SANDTON", "450.00", model.DirectionExpense),
		txn("t4", "Salary", "25000.00", model.DirectionIncome),
	}
	inserted, duplicates, err = store.AppendUnique("cheque", second, true)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.Equal(t, 2, duplicates)

	all, err := store.ReadAccount("cheque")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAppendUnique_SuppressionDisabled(t *testing.T) {
	store := NewStore(t.TempDir())

	batch := []model.LedgerTransaction{txn("t1", "Woolworths", "450.00", model.DirectionExpense)}
	_, _, err := store.AppendUnique("cheque", batch, false)
	require.NoError(t, err)

	batch[0].ID = "t2"
	inserted, duplicates, err := store.AppendUnique("cheque", batch, false)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 0, duplicates)

	all, err := store.ReadAccount("cheque")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAppendUnique_DuplicateWithinBatch(t *testing.T) {
	store := NewStore(t.TempDir())

	batch := []model.LedgerTransaction{
		txn("t1", "Coffee", "35.00", model.DirectionExpense),
		txn("t2", "Coffee again", "35.00", model.DirectionExpense),
	}
	inserted, duplicates, err := store.AppendUnique("cheque", batch, true)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 1, duplicates)
}

func TestMarkReconciled(t *testing.T) {
	store := NewStore(t.TempDir())

	batch := []model.LedgerTransaction{
		txn("t1", "Woolworths", "450.00", model.DirectionExpense),
		txn("t2", "Salary", "25000.00", model.DirectionIncome),
	}
	_, _, err := store.AppendUnique("cheque", batch, true)
	require.NoError(t, err)

	at := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	n, err := store.MarkReconciled("cheque", []string{"t1"}, at)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := store.ReadAccount("cheque")
	require.NoError(t, err)
	assert.True(t, all[0].Reconciled)
	assert.True(t, all[0].ReconciledAt.Equal(at))
	assert.False(t, all[1].Reconciled)
}

func TestMarkReconciled_RejectsWholeSetOnAnyBadID(t *testing.T) {
	store := NewStore(t.TempDir())

	_, _, err := store.AppendUnique("cheque", []model.LedgerTransaction{
		txn("t1", "Woolworths", "450.00", model.DirectionExpense),
	}, true)
	require.NoError(t, err)

	_, err = store.MarkReconciled("cheque", []string{"t1", "stranger"}, time.Now())
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "stranger", verr.TransactionID)

	// Nothing committed.
	all, err := store.ReadAccount("cheque")
	require.NoError(t, err)
	assert.False(t, all[0].Reconciled)
}

func TestMarkReconciled_RejectsAlreadyReconciled(t *testing.T) {
	store := NewStore(t.TempDir())

	_, _, err := store.AppendUnique("cheque", []model.LedgerTransaction{
		txn("t1", "Woolworths", "450.00", model.DirectionExpense),
	}, true)
	require.NoError(t, err)

	_, err = store.MarkReconciled("cheque", []string{"t1"}, time.Now())
	require.NoError(t, err)

	_, err = store.MarkReconciled("cheque", []string{"t1"}, time.Now())
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "already reconciled")
}

func TestBalance(t *testing.T) {
	store := NewStore(t.TempDir())

	_, _, err := store.AppendUnique("cheque", []model.LedgerTransaction{
		txn("t1", "Salary", "25000.00", model.DirectionIncome),
		txn("t2", "Woolworths", "450.00", model.DirectionExpense),
	}, true)
	require.NoError(t, err)

	balance, err := store.Balance("cheque")
	require.NoError(t, err)
	assert.Equal(t, "24550.00", balance.StringFixed(2))
}

func TestBalance_MissingFileIsEmptyLedger(t *testing.T) {
	store := NewStore(t.TempDir())
	balance, err := store.Balance("nope")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	_, _, err := store.AppendUnique("cheque", []model.LedgerTransaction{
		txn("t1", "Woolworths", "450.00", model.DirectionExpense),
	}, true)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "ledger"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cheque.csv", entries[0].Name())
}
