// Package ledger holds the rolling expense and debt-account state of a budget.
//
// A Ledger is not safe for concurrent use. It assumes a single writer: one user
// driving one process against one store.
package ledger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/vpnda/pocket-ledger/db"
	"github.com/vpnda/pocket-ledger/pkg/models"
)

// Ledger holds expenses and debt accounts and persists them through a db.Store
type Ledger struct {
	store    db.Store
	expenses []models.Expense
	accounts []models.DebtAccount
}

// Load reads both record sets from the store
func Load(store db.Store) (*Ledger, error) {
	expenses, err := store.LoadExpenses()
	if err != nil {
		return nil, &StorageError{Op: "load expenses", Err: err}
	}

	accounts, err := store.LoadAccounts()
	if err != nil {
		return nil, &StorageError{Op: "load accounts", Err: err}
	}

	log.Debug().Int("expenses", len(expenses)).Int("accounts", len(accounts)).Msg("ledger loaded")
	return &Ledger{
		store:    store,
		expenses: expenses,
		accounts: accounts,
	}, nil
}

// Save persists both record sets
func (l *Ledger) Save() error {
	if err := l.store.SaveExpenses(l.expenses); err != nil {
		return &StorageError{Op: "save expenses", Err: err}
	}
	if err := l.store.SaveAccounts(l.accounts); err != nil {
		return &StorageError{Op: "save accounts", Err: err}
	}
	return nil
}

// commitExpenses persists next and only then makes it the current state
func (l *Ledger) commitExpenses(op string, next []models.Expense) error {
	if err := l.store.SaveExpenses(next); err != nil {
		return &StorageError{Op: op, Err: err}
	}
	l.expenses = next
	return nil
}

func (l *Ledger) commitAccounts(op string, next []models.DebtAccount) error {
	if err := l.store.SaveAccounts(next); err != nil {
		return &StorageError{Op: op, Err: err}
	}
	l.accounts = next
	return nil
}

// AddExpense validates e, assigns it an id and appends it to the ledger.
// The stored copy is returned.
func (l *Ledger) AddExpense(e models.Expense) (models.Expense, error) {
	e.Description = strings.TrimSpace(e.Description)
	e.Account = strings.TrimSpace(e.Account)

	if e.Description == "" {
		return models.Expense{}, &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if e.Amount.IsNegative() {
		return models.Expense{}, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if e.Date.IsZero() {
		return models.Expense{}, &ValidationError{Field: "date", Reason: "must be set"}
	}

	if e.Account == "" {
		e.Account = models.CashAccount
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	} else if l.expenseIndex(e.ID) >= 0 {
		return models.Expense{}, &ValidationError{Field: "id", Reason: fmt.Sprintf("expense %s already exists", e.ID)}
	}
	e.Date = models.DateOnly(e.Date)
	e.IsSettled = false

	next := append(slices.Clone(l.expenses), e)
	if err := l.commitExpenses("add expense", next); err != nil {
		return models.Expense{}, err
	}

	log.Debug().Str("id", e.ID).Str("account", e.Account).Msg("expense added")
	return e, nil
}

// DeleteExpense removes the expense with the given id
func (l *Ledger) DeleteExpense(id string) error {
	i := l.expenseIndex(id)
	if i < 0 {
		return fmt.Errorf("expense %s: %w", id, ErrNotFound)
	}

	next := slices.Delete(slices.Clone(l.expenses), i, i+1)
	return l.commitExpenses("delete expense", next)
}

// SettleExpense marks a single reimbursable expense as paid back
func (l *Ledger) SettleExpense(id string) error {
	i := l.expenseIndex(id)
	if i < 0 {
		return fmt.Errorf("expense %s: %w", id, ErrNotFound)
	}
	if !l.expenses[i].IsReimbursable {
		return &ValidationError{Field: "id", Reason: fmt.Sprintf("expense %s is not reimbursable", id)}
	}
	if l.expenses[i].IsSettled {
		return nil
	}

	next := slices.Clone(l.expenses)
	next[i].IsSettled = true
	return l.commitExpenses("settle expense", next)
}

// SettleAllReimbursable marks every outstanding reimbursable expense as settled,
// regardless of the period it belongs to. It returns how many records changed.
func (l *Ledger) SettleAllReimbursable() (int, error) {
	next := slices.Clone(l.expenses)
	settled := 0
	for i := range next {
		if next[i].IsOutstanding() {
			next[i].IsSettled = true
			settled++
		}
	}

	if settled == 0 {
		return 0, nil
	}
	if err := l.commitExpenses("settle all", next); err != nil {
		return 0, err
	}
	return settled, nil
}

// Expenses returns a copy of all expenses, newest date first.
// Expenses on the same date keep the most recently added first.
func (l *Ledger) Expenses() []models.Expense {
	out := slices.Clone(l.expenses)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b models.Expense) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// ExpensesIn returns the expenses dated within p, newest first
func (l *Ledger) ExpensesIn(p models.Period) []models.Expense {
	return lo.Filter(l.Expenses(), func(e models.Expense, _ int) bool {
		return p.Contains(e.Date)
	})
}

// Expense looks up a single expense by id
func (l *Ledger) Expense(id string) (models.Expense, bool) {
	i := l.expenseIndex(id)
	if i < 0 {
		return models.Expense{}, false
	}
	return l.expenses[i], true
}

func (l *Ledger) expenseIndex(id string) int {
	return slices.IndexFunc(l.expenses, func(e models.Expense) bool {
		return e.ID == id
	})
}
