package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
	"github.com/vpnda/pocket-ledger/pkg/models"
)

const (
	expensesFile = "expenses.yaml"
	accountsFile = "accounts.yaml"
)

// FileStore keeps each record set in its own YAML file inside a directory.
// Saves rewrite the whole file through a temp file and a rename.
type FileStore struct {
	dir string
}

type expenseRecord struct {
	ID             string `yaml:"id"`
	Date           string `yaml:"date"`
	Account        string `yaml:"account"`
	Description    string `yaml:"description"`
	Amount         string `yaml:"amount"`
	IsReimbursable bool   `yaml:"isReimbursable"`
	IsSettled      bool   `yaml:"isSettled"`
}

type accountRecord struct {
	Name         string `yaml:"name"`
	DueDay       int    `yaml:"dueDay"`
	InterestRate string `yaml:"interestRate"`
	Balance      string `yaml:"balance"`
}

// NewFileStore creates a store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Initialize ensures the store directory exists
func (f *FileStore) Initialize() error {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

// Close is a no-op for the file store
func (f *FileStore) Close() error {
	return nil
}

func (f *FileStore) LoadExpenses() ([]models.Expense, error) {
	var records []expenseRecord
	if err := f.read(expensesFile, &records); err != nil {
		return nil, err
	}

	expenses := make([]models.Expense, 0, len(records))
	for _, r := range records {
		date, err := parseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date of expense %s: %w", r.ID, err)
		}
		amount, err := parseDecimal(r.Amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount of expense %s: %w", r.ID, err)
		}
		expenses = append(expenses, models.Expense{
			ID:             r.ID,
			Date:           date,
			Account:        r.Account,
			Description:    r.Description,
			Amount:         amount,
			IsReimbursable: r.IsReimbursable,
			IsSettled:      r.IsSettled,
		})
	}
	return expenses, nil
}

func (f *FileStore) SaveExpenses(expenses []models.Expense) error {
	records := make([]expenseRecord, 0, len(expenses))
	for _, e := range expenses {
		records = append(records, expenseRecord{
			ID:             e.ID,
			Date:           formatDate(e.Date),
			Account:        e.Account,
			Description:    e.Description,
			Amount:         e.Amount.String(),
			IsReimbursable: e.IsReimbursable,
			IsSettled:      e.IsSettled,
		})
	}
	if err := f.write(expensesFile, records); err != nil {
		return err
	}
	log.Debug().Int("count", len(expenses)).Str("dir", f.dir).Msg("expenses saved")
	return nil
}

func (f *FileStore) LoadAccounts() ([]models.DebtAccount, error) {
	var records []accountRecord
	if err := f.read(accountsFile, &records); err != nil {
		return nil, err
	}

	accounts := make([]models.DebtAccount, 0, len(records))
	for _, r := range records {
		rate, err := parseDecimal(r.InterestRate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse interest rate of account %s: %w", r.Name, err)
		}
		balance, err := parseDecimal(r.Balance)
		if err != nil {
			return nil, fmt.Errorf("failed to parse balance of account %s: %w", r.Name, err)
		}
		accounts = append(accounts, models.DebtAccount{
			Name:         r.Name,
			DueDay:       r.DueDay,
			InterestRate: rate,
			Balance:      balance,
		})
	}
	return accounts, nil
}

func (f *FileStore) SaveAccounts(accounts []models.DebtAccount) error {
	records := make([]accountRecord, 0, len(accounts))
	for _, a := range accounts {
		records = append(records, accountRecord{
			Name:         a.Name,
			DueDay:       a.DueDay,
			InterestRate: a.InterestRate.String(),
			Balance:      a.Balance.String(),
		})
	}
	if err := f.write(accountsFile, records); err != nil {
		return err
	}
	log.Debug().Int("count", len(accounts)).Str("dir", f.dir).Msg("accounts saved")
	return nil
}

// read decodes name into out. A missing file is an empty collection.
func (f *FileStore) read(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (f *FileStore) write(name string, in any) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(f.dir, "."+name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(f.dir, name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
