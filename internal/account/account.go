package account

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when the referenced account does not exist.
var ErrNotFound = errors.New("account not found")

// Type classifies an account's default balance-propagation behavior.
type Type string

const (
	// TypeAsset is a plain holding account (cash, bank, investment).
	TypeAsset Type = "asset"
	// TypeParty is a counterparty ledger: both legs of a transaction move together.
	TypeParty Type = "party"
	// TypeFund is a reserved-funds pool earmarked out of a source account.
	TypeFund Type = "fund"
)

// ParseType normalizes a stored or user-provided type string.
// Unknown values fall back to asset, matching the import/legacy-data default.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(TypeParty):
		return TypeParty
	case string(TypeFund):
		return TypeFund
	default:
		return TypeAsset
	}
}

// Is reports whether the type equals other, case-insensitively.
// Historical records may carry mixed-case snapshots ("Asset", "Party").
func (t Type) Is(other Type) bool {
	return strings.EqualFold(string(t), string(other))
}

// Role marks accounts whose transfer semantics differ from their type's default.
type Role string

const (
	RoleNone Role = ""
	// RoleTransferInverted flips the secondary leg: crediting this account
	// debits the counterpart and vice versa. Assigned at creation time to
	// accounts named "investment"; the name itself remains the fallback
	// dispatch for records written before roles existed.
	RoleTransferInverted Role = "transfer-inverted"
)

// Account is a balance-carrying bucket owned by a single user.
type Account struct {
	ID      uuid.UUID
	Name    string
	Type    Type
	Role    Role
	Balance int64
	// Disabled accounts are hidden from new-transaction pickers but keep
	// their balance and history.
	Disabled  bool
	CreatedAt time.Time
}
