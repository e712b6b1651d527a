package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nkhandelwal/hisab/internal/account"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	// CreateTransaction persists tx and assigns its ID. A zero CreatedAt is
	// replaced by the store's server time.
	CreateTransaction(ctx context.Context, userID string, tx *Transaction) error
	GetTransaction(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error)
	SetTransaction(ctx context.Context, userID string, tx *Transaction) error
	DeleteTransaction(ctx context.Context, userID string, id uuid.UUID) error
	ListTransactions(ctx context.Context, userID string, filter ListFilter) ([]*Transaction, error)
}

// Registry is the slice of the account store the mutation service needs.
type Registry interface {
	GetAccount(ctx context.Context, userID string, id uuid.UUID) (*account.Account, error)
	AdjustBalance(ctx context.Context, userID string, id uuid.UUID, delta int64) error
}

// Notifier is poked after every completed mutation so live views can refresh.
type Notifier interface {
	Notify(userID string)
}

// Service applies a transaction's full economic effect, primary leg plus the
// resolved secondary leg, and keeps the transaction record in step.
//
// Mutations are not atomic across accounts: each balance write is an
// independent statement. The writes themselves are atomic increments, so
// interleaved mutations cannot lose updates, but a failure mid-mutation
// leaves the remaining legs unapplied and is reported via ErrPartialApply.
type Service struct {
	repo     Repository
	accounts Registry
	notify   Notifier
}

func NewService(repo Repository, accounts Registry, notify Notifier) *Service {
	return &Service{repo: repo, accounts: accounts, notify: notify}
}

// CreateParams is the full transaction shape accepted by Add and Update.
// AccountName/Type/Role are the caller's snapshot of the primary account;
// when the account still exists they are refreshed from the registry.
type CreateParams struct {
	AccountID      uuid.UUID
	ExtraAccountID *uuid.UUID
	Type           EntryType
	Amount         int64
	Note           string
	AccountName    string
	AccountType    account.Type
	AccountRole    account.Role
	CreatedAt      time.Time
}

func (p CreateParams) validate() error {
	if p.AccountID == uuid.Nil {
		return fmt.Errorf("%w: account id is required", ErrValidation)
	}

	if p.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	if p.Type != EntryCredit && p.Type != EntryDebit {
		return fmt.Errorf("%w: type must be credit or debit", ErrValidation)
	}

	return nil
}

// Add persists a new transaction and applies its effects. Returns the new
// transaction's id.
func (s *Service) Add(ctx context.Context, userID string, params CreateParams) (uuid.UUID, error) {
	if err := params.validate(); err != nil {
		return uuid.Nil, err
	}

	tx, err := s.buildTransaction(ctx, userID, params)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.repo.CreateTransaction(ctx, userID, tx); err != nil {
		return uuid.Nil, fmt.Errorf("creating transaction record: %w", err)
	}

	// The record is already persisted; any balance failure past this point
	// leaves it dangling without its full effect.
	if _, err := s.applyEffects(ctx, userID, tx, 1); err != nil {
		return tx.ID, fmt.Errorf("%w: %w", ErrPartialApply, err)
	}

	s.changed(userID)

	return tx.ID, nil
}

// Update reverts the old transaction's effects, applies the new ones, and
// overwrites the record, in that order. The revert is the algebraic negation
// of the forward rule, so arbitrary field changes, including moving the
// transaction to a different account, land on the right balances.
//
// Unlike Delete, updating a missing transaction is an error: the caller
// asked to change something specific and silence would mask a lost write.
func (s *Service) Update(ctx context.Context, userID string, id uuid.UUID, params CreateParams) error {
	if err := params.validate(); err != nil {
		return err
	}

	old, err := s.repo.GetTransaction(ctx, userID, id)
	if err != nil {
		return err
	}

	updated, err := s.buildTransaction(ctx, userID, params)
	if err != nil {
		return err
	}

	updated.ID = old.ID
	updated.CreatedAt = old.CreatedAt

	if applied, err := s.applyEffects(ctx, userID, old, -1); err != nil {
		if applied {
			return fmt.Errorf("%w: reverting previous effects: %w", ErrPartialApply, err)
		}

		return fmt.Errorf("reverting previous effects: %w", err)
	}

	if _, err := s.applyEffects(ctx, userID, updated, 1); err != nil {
		return fmt.Errorf("%w: applying updated effects: %w", ErrPartialApply, err)
	}

	if err := s.repo.SetTransaction(ctx, userID, updated); err != nil {
		return fmt.Errorf("%w: rewriting record after balances applied: %w", ErrPartialApply, err)
	}

	s.changed(userID)

	return nil
}

// Delete reverts the transaction's effects and removes the record last, so a
// failed revert never orphans applied balances. A missing transaction is a
// no-op: deletes are retried freely.
func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	tx, err := s.repo.GetTransaction(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}

		return err
	}

	if applied, err := s.applyEffects(ctx, userID, tx, -1); err != nil {
		if applied {
			return fmt.Errorf("%w: reverting effects: %w", ErrPartialApply, err)
		}

		return fmt.Errorf("reverting effects: %w", err)
	}

	if err := s.repo.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("%w: deleting record after balances reverted: %w", ErrPartialApply, err)
	}

	s.changed(userID)

	return nil
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, userID, filter)
}

// buildTransaction assembles the record and refreshes the primary-account
// snapshot from the registry. If the account is gone the caller-provided
// snapshot stands, matching how historical records keep resolving after an
// account disappears.
func (s *Service) buildTransaction(ctx context.Context, userID string, params CreateParams) (*Transaction, error) {
	tx := &Transaction{
		AccountID:      params.AccountID,
		ExtraAccountID: params.ExtraAccountID,
		Type:           params.Type,
		Amount:         params.Amount,
		Note:           params.Note,
		AccountName:    params.AccountName,
		AccountType:    params.AccountType,
		AccountRole:    params.AccountRole,
		CreatedAt:      params.CreatedAt,
	}

	primary, err := s.accounts.GetAccount(ctx, userID, params.AccountID)
	switch {
	case err == nil:
		tx.AccountName = primary.Name
		tx.AccountType = primary.Type
		tx.AccountRole = primary.Role
	case errors.Is(err, account.ErrNotFound):
		// keep the provided snapshot
	default:
		return nil, fmt.Errorf("reading primary account: %w", err)
	}

	return tx, nil
}

// applyEffects writes both balance legs of tx, scaled by sign: +1 applies
// the forward effect, -1 reverts it. All reverts in this package go through
// the negation here; there is no second hand-derived rule table to drift.
// The returned bool reports whether any balance write landed, so callers can
// distinguish a clean failure from a partial one.
func (s *Service) applyEffects(ctx context.Context, userID string, tx *Transaction, sign int64) (bool, error) {
	primary := sign * tx.Type.Delta(tx.Amount)
	if err := s.accounts.AdjustBalance(ctx, userID, tx.AccountID, primary); err != nil {
		return false, fmt.Errorf("primary leg on account %s: %w", tx.AccountID, err)
	}

	if tx.ExtraAccountID == nil {
		return true, nil
	}

	effect := ResolveSecondaryEffect(tx.AccountName, tx.AccountType, tx.AccountRole, tx.Type)

	secondary := sign * effect.Delta(tx.Amount)
	if secondary == 0 {
		return true, nil
	}

	if err := s.accounts.AdjustBalance(ctx, userID, *tx.ExtraAccountID, secondary); err != nil {
		return true, fmt.Errorf("secondary leg on account %s: %w", *tx.ExtraAccountID, err)
	}

	return true, nil
}

func (s *Service) changed(userID string) {
	if s.notify != nil {
		s.notify.Notify(userID)
	}
}
