package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/vpnda/pocket-ledger/pkg/models"

	_ "github.com/mattn/go-sqlite3"
)

// DB represents the database connection
type DB struct {
	*sql.DB
}

// New creates a new database connection
func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite allows a single writer; this also keeps :memory: databases on one connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Initialize creates the necessary tables if they don't exist
func (db *DB) Initialize() error {
	query := `
	CREATE TABLE IF NOT EXISTS expenses (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		expense_date TEXT NOT NULL,
		account TEXT NOT NULL,
		description TEXT NOT NULL,
		amount TEXT NOT NULL,
		is_reimbursable BOOLEAN NOT NULL DEFAULT 0,
		is_settled BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create expenses table: %w", err)
	}

	return db.createAccountsTable()
}

// LoadExpenses retrieves all expenses in the order they were saved
func (db *DB) LoadExpenses() ([]models.Expense, error) {
	query := `
	SELECT
		id, expense_date, account, description, amount, is_reimbursable, is_settled
	FROM expenses
	ORDER BY position ASC
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		var (
			e            models.Expense
			date, amount string
		)

		err := rows.Scan(
			&e.ID,
			&date,
			&e.Account,
			&e.Description,
			&amount,
			&e.IsReimbursable,
			&e.IsSettled,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		if e.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("failed to parse date of expense %s: %w", e.ID, err)
		}
		if e.Amount, err = parseDecimal(amount); err != nil {
			return nil, fmt.Errorf("failed to parse amount of expense %s: %w", e.ID, err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

// SaveExpenses replaces the stored expenses with the given set in a single transaction
func (db *DB) SaveExpenses(expenses []models.Expense) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM expenses`); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}

	stmt, err := tx.Prepare(`
	INSERT INTO expenses (
		id, position, expense_date, account, description, amount, is_reimbursable, is_settled
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare expense insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range expenses {
		_, err := stmt.Exec(
			e.ID,
			i,
			formatDate(e.Date),
			e.Account,
			e.Description,
			e.Amount.String(),
			e.IsReimbursable,
			e.IsSettled,
		)
		if err != nil {
			return fmt.Errorf("failed to save expense %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expenses: %w", err)
	}

	log.Debug().Int("count", len(expenses)).Msg("expenses saved")
	return nil
}
