package db

import (
	"slices"

	"github.com/vpnda/pocket-ledger/pkg/models"
)

// MockDB is a mock implementation of the Store for testing
type MockDB struct {
	// Mock data storage
	Expenses []models.Expense
	Accounts []models.DebtAccount

	// Number of successful saves per collection
	ExpenseSaves int
	AccountSaves int

	// Error values to return
	LoadExpensesErr error
	SaveExpensesErr error
	LoadAccountsErr error
	SaveAccountsErr error
}

// NewMockDB creates a new mock database
func NewMockDB() *MockDB {
	return &MockDB{
		Expenses: make([]models.Expense, 0),
		Accounts: make([]models.DebtAccount, 0),
	}
}

// LoadExpenses returns a copy of the stored expenses
func (m *MockDB) LoadExpenses() ([]models.Expense, error) {
	if m.LoadExpensesErr != nil {
		return nil, m.LoadExpensesErr
	}
	return slices.Clone(m.Expenses), nil
}

// SaveExpenses replaces the stored expenses
func (m *MockDB) SaveExpenses(expenses []models.Expense) error {
	if m.SaveExpensesErr != nil {
		return m.SaveExpensesErr
	}
	m.Expenses = slices.Clone(expenses)
	m.ExpenseSaves++
	return nil
}

// LoadAccounts returns a copy of the stored accounts
func (m *MockDB) LoadAccounts() ([]models.DebtAccount, error) {
	if m.LoadAccountsErr != nil {
		return nil, m.LoadAccountsErr
	}
	return slices.Clone(m.Accounts), nil
}

// SaveAccounts replaces the stored accounts
func (m *MockDB) SaveAccounts(accounts []models.DebtAccount) error {
	if m.SaveAccountsErr != nil {
		return m.SaveAccountsErr
	}
	m.Accounts = slices.Clone(accounts)
	m.AccountSaves++
	return nil
}

// Initialize is a no-op for the mock database
func (m *MockDB) Initialize() error {
	return nil
}

// Close is a no-op for the mock database
func (m *MockDB) Close() error {
	return nil
}
