package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTransactionID(t *testing.T) {
	a := NewTransactionID()
	b := NewTransactionID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestImportReference(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	ref := ImportReference("FNB", date, "Woolworths")
	assert.Equal(t, "fnb_20240115_Woolworths", ref)

	// Long descriptions truncate, punctuation drops.
	ref = ImportReference("Standard Bank", date, "EFT: J. SMITH CONSULTING INVOICE")
	assert.Equal(t, "standardbank_20240115_EFTJSMITHC", ref)

	// Generic fallback label collapses cleanly.
	ref = ImportReference("Unknown (Generic)", date, "x")
	assert.Equal(t, "unknowngeneric_20240115_x", ref)
}
