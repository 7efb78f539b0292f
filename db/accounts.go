package db

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/vpnda/pocket-ledger/pkg/models"
)

func (db *DB) createAccountsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS debt_accounts (
		name TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		due_day INTEGER NOT NULL DEFAULT 0,
		interest_rate TEXT NOT NULL DEFAULT '0',
		balance TEXT NOT NULL DEFAULT '0',
		balance_updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create debt_accounts table: %w", err)
	}
	return nil
}

// LoadAccounts retrieves all debt accounts in insertion order
func (db *DB) LoadAccounts() ([]models.DebtAccount, error) {
	query := `
	SELECT
		name, due_day, interest_rate, balance
	FROM debt_accounts
	ORDER BY position ASC
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]models.DebtAccount, 0)
	for rows.Next() {
		var (
			account       models.DebtAccount
			rate, balance string
		)
		err := rows.Scan(
			&account.Name,
			&account.DueDay,
			&rate,
			&balance,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		if account.InterestRate, err = parseDecimal(rate); err != nil {
			return nil, fmt.Errorf("failed to parse interest rate of account %s: %w", account.Name, err)
		}
		if account.Balance, err = parseDecimal(balance); err != nil {
			return nil, fmt.Errorf("failed to parse balance of account %s: %w", account.Name, err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over accounts: %w", err)
	}
	return accounts, nil
}

// SaveAccounts replaces the stored debt accounts with the given set
func (db *DB) SaveAccounts(accounts []models.DebtAccount) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM debt_accounts`); err != nil {
		return fmt.Errorf("failed to clear accounts: %w", err)
	}

	query := `
	INSERT INTO debt_accounts (name, position, due_day, interest_rate, balance, balance_updated_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	for i, account := range accounts {
		_, err := tx.Exec(query,
			account.Name,
			i,
			account.DueDay,
			account.InterestRate.String(),
			account.Balance.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to save account %s: %w", account.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit accounts: %w", err)
	}

	log.Debug().Int("count", len(accounts)).Msg("accounts saved")
	return nil
}
