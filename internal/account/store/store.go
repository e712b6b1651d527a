package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/nkhandelwal/hisab/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, name, type, role, balance, disabled, created_at
func scanAccount(s scanner) (*account.Account, error) {
	var a account.Account

	var typeStr, roleStr string

	if err := s.Scan(&a.ID, &a.Name, &typeStr, &roleStr, &a.Balance, &a.Disabled, &a.CreatedAt); err != nil {
		return nil, err
	}

	a.Type = account.Type(typeStr)
	a.Role = account.Role(roleStr)

	return &a, nil
}

const selectAccountColumns = `id, name, type, role, balance, disabled, created_at`

func (s *Store) CreateAccount(ctx context.Context, userID string, a *account.Account) error {
	query := `
		INSERT INTO accounts (user_id, name, type, role, balance, disabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		userID,
		a.Name,
		a.Type,
		a.Role,
		a.Balance,
		a.Disabled,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, userID string, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts
		WHERE user_id = $1 AND id = $2`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context, userID string) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return accounts, nil
}

func (s *Store) SetDisabled(ctx context.Context, userID string, id uuid.UUID, disabled bool) error {
	query := `
		UPDATE accounts
		SET disabled = $1
		WHERE user_id = $2 AND id = $3
	`

	_, err := s.db.ExecContext(ctx, query, disabled, userID, id)
	if err != nil {
		return fmt.Errorf("setting account disabled: %w", err)
	}

	return nil
}

// AdjustBalance applies delta as a single atomic increment, so concurrent
// mutations against the same account cannot clobber each other's writes.
// A missing account affects zero rows and is not an error.
func (s *Store) AdjustBalance(ctx context.Context, userID string, id uuid.UUID, delta int64) error {
	query := `
		UPDATE accounts
		SET balance = balance + $1
		WHERE user_id = $2 AND id = $3
	`

	_, err := s.db.ExecContext(ctx, query, delta, userID, id)
	if err != nil {
		return fmt.Errorf("adjusting balance: %w", err)
	}

	return nil
}
