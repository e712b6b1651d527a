package ledger

import (
	"strings"

	"github.com/nkhandelwal/hisab/internal/account"
)

// Effect is the resolved impact on the secondary account.
type Effect string

const (
	EffectCredit Effect = "credit"
	EffectDebit  Effect = "debit"
	EffectNone   Effect = "none"
)

// Delta returns the signed secondary-account effect for an amount.
// EffectNone yields zero; callers skip the write entirely in that case.
func (e Effect) Delta(amount int64) int64 {
	switch e {
	case EffectCredit:
		return amount
	case EffectDebit:
		return -amount
	}

	return 0
}

// ResolveSecondaryEffect maps a transaction's classification to the effect on
// its secondary account. It is pure and total: unknown inputs resolve to
// EffectNone rather than an error.
//
// Dispatch order matters and must stay role, then name, then type:
//
//   - transfer-inverted accounts (role, or the legacy "investment" name)
//     move the counterpart opposite to the primary: crediting the
//     investment pulls money out of the bank, debiting it puts money back.
//   - party accounts move both sides together: recording a loan credits the
//     party ledger and the cash account alike.
//   - fund credits earmark money out of the source (counterpart debited);
//     fund debits spend from the already-earmarked pool and leave the
//     counterpart alone.
func ResolveSecondaryEffect(name string, typ account.Type, role account.Role, txn EntryType) Effect {
	if txn != EntryCredit && txn != EntryDebit {
		return EffectNone
	}

	inverted := role == account.RoleTransferInverted ||
		(role == account.RoleNone && strings.EqualFold(name, "investment"))

	switch {
	case inverted:
		if txn == EntryCredit {
			return EffectDebit
		}

		return EffectCredit
	case typ.Is(account.TypeParty):
		if txn == EntryCredit {
			return EffectCredit
		}

		return EffectDebit
	case typ.Is(account.TypeFund) && txn == EntryCredit:
		return EffectDebit
	}

	return EffectNone
}
