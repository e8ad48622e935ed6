package recon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/ledger"
	"github.com/bankfeed-dev/bankfeed/internal/model"
)

type fakeAccounts struct {
	balance decimal.Decimal
}

func (f fakeAccounts) Exists(id string) bool { return id == "cheque" }

func (f fakeAccounts) CurrentBalance(id string) (decimal.Decimal, error) {
	return f.balance, nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func seedLedger(t *testing.T) *ledger.Store {
	t.Helper()
	store := ledger.NewStore(t.TempDir())
	txns := []model.LedgerTransaction{
		{
			ID: "t1", AccountID: "cheque",
			Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Description: "Woolworths", Amount: dec("450.00"),
			Direction: model.DirectionExpense,
		},
		{
			ID: "t2", AccountID: "cheque",
			Date:        time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
			Description: "Takealot", Amount: dec("800.00"),
			Direction: model.DirectionExpense,
		},
		{
			ID: "t3", AccountID: "cheque",
			Date:        time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC),
			Description: "Salary", Amount: dec("25000.00"),
			Direction: model.DirectionIncome,
		},
	}
	_, _, err := store.AppendUnique("cheque", txns, false)
	require.NoError(t, err)
	return store
}

func TestReconcile_BalancedStatement(t *testing.T) {
	store := seedLedger(t)
	current := dec("10000.00")
	svc := NewService(store, fakeAccounts{balance: current})

	// Selected rows sum to -1250.00; the statement reports exactly
	// current - 1250.00, so the difference must be zero.
	result, err := svc.Reconcile(Request{
		TransactionIDs:   []string{"t1", "t2"},
		AccountID:        "cheque",
		StatementBalance: decimal.NewNullDecimal(dec("8750.00")),
		StatementDate:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Reconciled)
	assert.Equal(t, "-1250.00", result.SelectedTotal.StringFixed(2))
	require.True(t, result.Difference.Valid)
	assert.Equal(t, "0.00", result.Difference.Decimal.StringFixed(2))
	assert.True(t, result.Balanced)

	// The mark is committed with a timestamp.
	txns, err := store.ReadAccount("cheque")
	require.NoError(t, err)
	assert.True(t, txns[0].Reconciled)
	assert.False(t, txns[0].ReconciledAt.IsZero())
	assert.True(t, txns[1].Reconciled)
	assert.False(t, txns[2].Reconciled)
}

func TestReconcile_UnbalancedStillCommits(t *testing.T) {
	store := seedLedger(t)
	svc := NewService(store, fakeAccounts{balance: dec("10000.00")})

	result, err := svc.Reconcile(Request{
		TransactionIDs:   []string{"t1"},
		AccountID:        "cheque",
		StatementBalance: decimal.NewNullDecimal(dec("9000.00")),
	})
	require.NoError(t, err)
	assert.False(t, result.Balanced)
	assert.Equal(t, 1, result.Reconciled)

	txns, err := store.ReadAccount("cheque")
	require.NoError(t, err)
	assert.True(t, txns[0].Reconciled)
}

func TestReconcile_NoStatementBalance(t *testing.T) {
	store := seedLedger(t)
	svc := NewService(store, fakeAccounts{})

	result, err := svc.Reconcile(Request{
		TransactionIDs: []string{"t3"},
		AccountID:      "cheque",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Reconciled)
	assert.False(t, result.Difference.Valid)
	assert.Equal(t, "25000.00", result.SelectedTotal.StringFixed(2))
}

func TestReconcile_RejectsForeignID(t *testing.T) {
	store := seedLedger(t)
	svc := NewService(store, fakeAccounts{})

	_, err := svc.Reconcile(Request{
		TransactionIDs: []string{"t1", "someone-elses"},
		AccountID:      "cheque",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong to account")

	// Nothing committed, including the valid id in the set.
	txns, err := store.ReadAccount("cheque")
	require.NoError(t, err)
	for _, txn := range txns {
		assert.False(t, txn.Reconciled)
	}
}

func TestReconcile_RejectsAlreadyReconciled(t *testing.T) {
	store := seedLedger(t)
	svc := NewService(store, fakeAccounts{})

	_, err := svc.Reconcile(Request{TransactionIDs: []string{"t1"}, AccountID: "cheque"})
	require.NoError(t, err)

	_, err = svc.Reconcile(Request{TransactionIDs: []string{"t1", "t2"}, AccountID: "cheque"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already reconciled")

	txns, err := store.ReadAccount("cheque")
	require.NoError(t, err)
	assert.False(t, txns[1].Reconciled, "t2 must not be committed when t1 is rejected")
}

func TestReconcile_UnknownAccount(t *testing.T) {
	svc := NewService(seedLedger(t), fakeAccounts{})
	_, err := svc.Reconcile(Request{TransactionIDs: []string{"t1"}, AccountID: "savings"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown bank account")
}

func TestReconcile_EmptySelection(t *testing.T) {
	svc := NewService(seedLedger(t), fakeAccounts{})
	_, err := svc.Reconcile(Request{AccountID: "cheque"})
	require.Error(t, err)
}
