package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CashAccount is the reserved account name for cash payments. It never has a due date.
const CashAccount = "cash"

// Expense represents a single spending record
type Expense struct {
	ID          string          `json:"id" yaml:"id"`
	Date        time.Time       `json:"date" yaml:"date"`
	Account     string          `json:"account" yaml:"account"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	// IsReimbursable marks spending done on behalf of a third party (e.g. an employer).
	// It is excluded from personal totals.
	IsReimbursable bool `json:"isReimbursable" yaml:"isReimbursable"`
	// IsSettled is set once a reimbursable expense has been paid back.
	IsSettled bool `json:"isSettled" yaml:"isSettled"`
}

// IsCash reports whether the expense was paid with the cash sentinel account
func (e Expense) IsCash() bool {
	return strings.EqualFold(strings.TrimSpace(e.Account), CashAccount)
}

// IsOutstanding reports whether the expense is still owed back to the user
func (e Expense) IsOutstanding() bool {
	return e.IsReimbursable && !e.IsSettled
}

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
