package db

import (
	"github.com/vpnda/pocket-ledger/pkg/models"
)

// Store defines the persistence contract of the ledger. Every Save call replaces
// the whole collection; there are no incremental writes.
type Store interface {
	Initialize() error
	Close() error
	LoadExpenses() ([]models.Expense, error)
	SaveExpenses(expenses []models.Expense) error
	LoadAccounts() ([]models.DebtAccount, error)
	SaveAccounts(accounts []models.DebtAccount) error
}

// Ensure DB implements Store
var _ Store = (*DB)(nil)

// Ensure FileStore implements Store
var _ Store = (*FileStore)(nil)

// Ensure MockDB implements Store
var _ Store = (*MockDB)(nil)
