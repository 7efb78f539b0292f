package models

import "github.com/shopspring/decimal"

// MaxDueDay is the largest day-of-month a card can be due on
const MaxDueDay = 31

// DebtAccount is a card or loan the user owes money on
type DebtAccount struct {
	// Name identifies the account and is unique within a ledger
	Name string `json:"name" yaml:"name"`
	// DueDay is the day of month the payment is due, 0 when there is no recurring due date
	DueDay int `json:"dueDay" yaml:"dueDay"`
	// InterestRate is an annual percentage, e.g. 15 for 15%
	InterestRate decimal.Decimal `json:"interestRate" yaml:"interestRate"`
	// Balance is the outstanding amount as last reconciled by the user
	Balance decimal.Decimal `json:"balance" yaml:"balance"`
}

func (a DebtAccount) HasDueDate() bool {
	return a.DueDay > 0
}
