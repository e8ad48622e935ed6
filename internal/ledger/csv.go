package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Header is the CSV header for a per-account ledger file.
const Header = "id,account_id,date,description,amount,direction,reference,category_id,reconciled,reconciled_at"

const (
	numFields       = 10
	dateFormat      = "2006-01-02"
	colID           = 0
	colAccountID    = 1
	colDate         = 2
	colDesc         = 3
	colAmount       = 4
	colDirection    = 5
	colRef          = 6
	colCategory     = 7
	colReconciled   = 8
	colReconciledAt = 9
)

// ReadTransactions reads all ledger rows from r.
func ReadTransactions(r io.Reader) ([]model.LedgerTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.LedgerTransaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes all ledger rows to w, including the header.
func WriteTransactions(w io.Writer, txns []model.LedgerTransaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a LedgerTransaction to a CSV row.
func MarshalTransaction(txn model.LedgerTransaction) []string {
	row := make([]string, numFields)
	row[colID] = txn.ID
	row[colAccountID] = txn.AccountID
	row[colDate] = txn.Date.Format(dateFormat)
	row[colDesc] = txn.Description
	row[colAmount] = txn.Amount.StringFixed(2)
	row[colDirection] = string(txn.Direction)
	row[colRef] = txn.Reference
	row[colCategory] = txn.CategoryID
	if txn.Reconciled {
		row[colReconciled] = "true"
		row[colReconciledAt] = txn.ReconciledAt.UTC().Format(time.RFC3339)
	}
	return row
}

// UnmarshalTransaction converts a CSV row to a LedgerTransaction.
func UnmarshalTransaction(record []string) (model.LedgerTransaction, error) {
	if len(record) != numFields {
		return model.LedgerTransaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.LedgerTransaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.LedgerTransaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	if amount.IsNegative() {
		return model.LedgerTransaction{}, fmt.Errorf("negative amount %q: sign belongs in direction", record[colAmount])
	}

	direction := model.Direction(record[colDirection])
	if direction != model.DirectionIncome && direction != model.DirectionExpense {
		return model.LedgerTransaction{}, fmt.Errorf("unknown direction %q", record[colDirection])
	}

	var reconciledAt time.Time
	reconciled := record[colReconciled] == "true"
	if record[colReconciledAt] != "" {
		reconciledAt, err = time.Parse(time.RFC3339, record[colReconciledAt])
		if err != nil {
			return model.LedgerTransaction{}, fmt.Errorf("parsing reconciled_at %q: %w", record[colReconciledAt], err)
		}
	}

	return model.LedgerTransaction{
		ID:           record[colID],
		AccountID:    record[colAccountID],
		Date:         date,
		Description:  record[colDesc],
		Amount:       amount,
		Direction:    direction,
		Reference:    record[colRef],
		CategoryID:   record[colCategory],
		Reconciled:   reconciled,
		ReconciledAt: reconciledAt,
	}, nil
}
