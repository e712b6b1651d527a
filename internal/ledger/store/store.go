package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/nkhandelwal/hisab/internal/account"
	"github.com/nkhandelwal/hisab/internal/ledger"
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

// Expected column order: id, account_id, extra_account_id, type, amount,
// note, account_name, account_type, account_role, created_at
func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var typeStr, accTypeStr, accRoleStr string

	var extraID *uuid.UUID

	if err := s.Scan(
		&tx.ID, &tx.AccountID, &extraID, &typeStr, &tx.Amount,
		&tx.Note, &tx.AccountName, &accTypeStr, &accRoleStr, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = ledger.EntryType(typeStr)
	tx.AccountType = account.Type(accTypeStr)
	tx.AccountRole = account.Role(accRoleStr)
	tx.ExtraAccountID = extraID

	return &tx, nil
}

const selectTransactionColumns = `
	id, account_id, extra_account_id, type, amount,
	note, account_name, account_type, account_role, created_at
`

func (s *Store) CreateTransaction(ctx context.Context, userID string, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, account_id, extra_account_id, type, amount, note, account_name, account_type, account_role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, NOW()))
		RETURNING id, created_at
	`

	var createdAt any
	if !tx.CreatedAt.IsZero() {
		createdAt = tx.CreatedAt
	}

	err := s.db.QueryRowContext(ctx, query,
		userID,
		tx.AccountID,
		tx.ExtraAccountID,
		tx.Type,
		tx.Amount,
		tx.Note,
		tx.AccountName,
		tx.AccountType,
		tx.AccountRole,
		createdAt,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, userID string, id uuid.UUID) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND id = $2`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID string, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE user_id = $1`

	args := []any{userID}

	argIdx := 2

	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND (account_id = $%d OR extra_account_id = $%d)", argIdx, argIdx)

		args = append(args, *filter.AccountID)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Note != "" {
		query += fmt.Sprintf(" AND note ILIKE $%d", argIdx)

		args = append(args, "%"+filter.Note+"%")
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

// SetTransaction overwrites every field except id and created_at.
func (s *Store) SetTransaction(ctx context.Context, userID string, tx *ledger.Transaction) error {
	query := `
		UPDATE transactions
		SET account_id = $1, extra_account_id = $2, type = $3, amount = $4,
			note = $5, account_name = $6, account_type = $7, account_role = $8
		WHERE user_id = $9 AND id = $10
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.AccountID,
		tx.ExtraAccountID,
		tx.Type,
		tx.Amount,
		tx.Note,
		tx.AccountName,
		tx.AccountType,
		tx.AccountRole,
		userID,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID string, id uuid.UUID) error {
	query := `
		DELETE FROM transactions
		WHERE user_id = $1 AND id = $2
	`

	_, err := s.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}
