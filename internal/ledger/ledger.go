package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nkhandelwal/hisab/internal/account"
)

var (
	// ErrNotFound is returned when the referenced transaction does not exist.
	ErrNotFound = errors.New("transaction not found")
	// ErrValidation is returned before any write when required input is missing.
	ErrValidation = errors.New("invalid transaction input")
	// ErrPartialApply marks a mutation that failed after some balance legs
	// were already written. The store holds no compensation record, so the
	// caller must surface the inconsistency instead of retrying blindly.
	ErrPartialApply = errors.New("transaction partially applied")
)

// EntryType is the effect a transaction has on its primary account.
type EntryType string

const (
	EntryCredit EntryType = "credit"
	EntryDebit  EntryType = "debit"
)

// Delta returns the signed primary-account effect for an amount.
func (t EntryType) Delta(amount int64) int64 {
	if t == EntryDebit {
		return -amount
	}

	return amount
}

// Transaction is a single credit or debit filed under a primary account,
// optionally touching a secondary account resolved from the snapshot fields.
type Transaction struct {
	ID             uuid.UUID
	AccountID      uuid.UUID
	ExtraAccountID *uuid.UUID
	Type           EntryType
	Amount         int64 // whole currency units, fractions truncated at input
	Note           string

	// Snapshot of the primary account at create/update time. The secondary
	// effect is always recomputed from these, never from a live read, so a
	// later rename or retype of the account does not rewrite history.
	AccountName string
	AccountType account.Type
	AccountRole account.Role

	CreatedAt time.Time
}

// ListFilter narrows List results. Nil/zero fields match everything.
type ListFilter struct {
	AccountID *uuid.UUID
	Type      *EntryType
	StartDate *time.Time
	EndDate   *time.Time
	Note      string // case-insensitive substring match
}
