package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/DragosCt10/trading-tracker-sub007/internal/stats"
)

// CreateAccountSettings inserts a new trading account for a user.
func (db *DB) CreateAccountSettings(ctx context.Context, userID, name string, balance float64, currency string) (*stats.AccountSettings, error) {
	account := &stats.AccountSettings{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           name,
		AccountBalance: balance,
		Currency:       currency,
	}

	query := `
		INSERT INTO account_settings (id, user_id, name, account_balance, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := db.Pool.QueryRow(ctx, query,
		account.ID, account.UserID, account.Name, account.AccountBalance, account.Currency).
		Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create account settings: %w", err)
	}
	return account, nil
}

// GetAccountSettings fetches a single account, scoped to its owner.
func (db *DB) GetAccountSettings(ctx context.Context, userID, accountID string) (*stats.AccountSettings, error) {
	query := `
		SELECT id, user_id, name, account_balance, currency, created_at, updated_at
		FROM account_settings WHERE id = $1 AND user_id = $2`

	account := &stats.AccountSettings{}
	err := db.Pool.QueryRow(ctx, query, accountID, userID).Scan(
		&account.ID, &account.UserID, &account.Name,
		&account.AccountBalance, &account.Currency,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account settings: %w", err)
	}
	return account, nil
}

// ListAccountSettings returns all accounts owned by a user.
func (db *DB) ListAccountSettings(ctx context.Context, userID string) ([]stats.AccountSettings, error) {
	query := `
		SELECT id, user_id, name, account_balance, currency, created_at, updated_at
		FROM account_settings WHERE user_id = $1 ORDER BY created_at`

	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list account settings: %w", err)
	}
	defer rows.Close()

	var accounts []stats.AccountSettings
	for rows.Next() {
		var account stats.AccountSettings
		if err := rows.Scan(
			&account.ID, &account.UserID, &account.Name,
			&account.AccountBalance, &account.Currency,
			&account.CreatedAt, &account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account settings: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// UpdateAccountSettings updates the name, balance and currency of an account.
func (db *DB) UpdateAccountSettings(ctx context.Context, account *stats.AccountSettings) error {
	query := `
		UPDATE account_settings
		SET name = $1, account_balance = $2, currency = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4 AND user_id = $5`

	tag, err := db.Pool.Exec(ctx, query,
		account.Name, account.AccountBalance, account.Currency,
		account.ID, account.UserID)
	if err != nil {
		return fmt.Errorf("failed to update account settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAccountSettings removes an account and, via cascade, its trades.
func (db *DB) DeleteAccountSettings(ctx context.Context, userID, accountID string) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM account_settings WHERE id = $1 AND user_id = $2`,
		accountID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete account settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
