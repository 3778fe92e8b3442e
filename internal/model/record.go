package model

import (
	"time"
)

// ExpenseRecord is a persisted ledger entry. Negative amounts are expenses and
// positive amounts are income.
type ExpenseRecord struct {
	OccurredAt time.Time
	ID         string
	Category   string
	Merchant   string
	PayMethod  string
	Remark     string
	Amount     float64
}

// IsExpense reports whether the record debits the ledger.
func (r ExpenseRecord) IsExpense() bool {
	return r.Amount < 0
}
