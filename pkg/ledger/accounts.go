package ledger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/vpnda/pocket-ledger/pkg/models"
)

// AddAccount stores a debt account. An account with the same name (case-insensitive)
// is overwritten in place and replaced is true.
func (l *Ledger) AddAccount(a models.DebtAccount) (replaced bool, err error) {
	a.Name = strings.TrimSpace(a.Name)

	if a.Name == "" {
		return false, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if a.DueDay < 0 || a.DueDay > models.MaxDueDay {
		return false, &ValidationError{Field: "due day", Reason: fmt.Sprintf("must be between 0 and %d", models.MaxDueDay)}
	}
	if a.InterestRate.IsNegative() {
		return false, &ValidationError{Field: "interest rate", Reason: "must not be negative"}
	}

	next := slices.Clone(l.accounts)
	if i := l.accountIndex(a.Name); i >= 0 {
		next[i] = a
		replaced = true
	} else {
		next = append(next, a)
	}

	if err := l.commitAccounts("add account", next); err != nil {
		return false, err
	}

	log.Debug().Str("account", a.Name).Bool("replaced", replaced).Msg("account stored")
	return replaced, nil
}

// DeleteAccount removes the account with the given name
func (l *Ledger) DeleteAccount(name string) error {
	i := l.accountIndex(name)
	if i < 0 {
		return fmt.Errorf("account %s: %w", name, ErrNotFound)
	}

	next := slices.Delete(slices.Clone(l.accounts), i, i+1)
	return l.commitAccounts("delete account", next)
}

// UpdateBalance records a manually reconciled balance. The balance is not clamped.
func (l *Ledger) UpdateBalance(name string, balance decimal.Decimal) error {
	i := l.accountIndex(name)
	if i < 0 {
		return fmt.Errorf("account %s: %w", name, ErrNotFound)
	}

	next := slices.Clone(l.accounts)
	next[i].Balance = balance
	return l.commitAccounts("update balance", next)
}

// Accounts returns a copy of the accounts in insertion order
func (l *Ledger) Accounts() []models.DebtAccount {
	return slices.Clone(l.accounts)
}

// Account looks up an account by name (case-insensitive)
func (l *Ledger) Account(name string) (models.DebtAccount, bool) {
	i := l.accountIndex(name)
	if i < 0 {
		return models.DebtAccount{}, false
	}
	return l.accounts[i], true
}

func (l *Ledger) accountIndex(name string) int {
	name = strings.TrimSpace(name)
	return slices.IndexFunc(l.accounts, func(a models.DebtAccount) bool {
		return strings.EqualFold(a.Name, name)
	})
}
