package id

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewTransactionID returns the stable identity for a ledger transaction.
func NewTransactionID() string {
	return uuid.NewString()
}

// ImportReference creates a fallback reference like fnb_20240115_Woolworths
// for rows whose export carries no bank reference.
func ImportReference(bank string, date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}

	bank = strings.ToLower(strings.Map(func(r rune) rune {
		if r == ' ' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, bank))

	return fmt.Sprintf("%s_%s_%s", bank, date.Format("20060102"), prefix)
}
