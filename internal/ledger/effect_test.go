package ledger_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nkhandelwal/hisab/internal/account"
	"github.com/nkhandelwal/hisab/internal/ledger"
)

func TestResolveSecondaryEffect_Table(t *testing.T) {
	type testCase struct {
		name     string
		accName  string
		accType  account.Type
		role     account.Role
		txn      ledger.EntryType
		expected ledger.Effect
	}

	tests := []testCase{
		// Name-based investment dispatch beats the declared type.
		{"investment credit inverts", "investment", account.TypeAsset, account.RoleNone, ledger.EntryCredit, ledger.EffectDebit},
		{"investment debit inverts", "investment", account.TypeAsset, account.RoleNone, ledger.EntryDebit, ledger.EffectCredit},
		{"investment name check is case-insensitive", "Investment", account.TypeAsset, account.RoleNone, ledger.EntryCredit, ledger.EffectDebit},
		{"investment name beats party type", "investment", account.TypeParty, account.RoleNone, ledger.EntryCredit, ledger.EffectDebit},
		{"investment name beats fund type", "investment", account.TypeFund, account.RoleNone, ledger.EntryDebit, ledger.EffectCredit},

		// Explicit role overrides regardless of name.
		{"role inverts without the magic name", "Broker", account.TypeAsset, account.RoleTransferInverted, ledger.EntryCredit, ledger.EffectDebit},
		{"role inverts debit", "Broker", account.TypeAsset, account.RoleTransferInverted, ledger.EntryDebit, ledger.EffectCredit},

		// Party accounts move both legs in the same direction.
		{"party credit mirrors", "Ramesh", account.TypeParty, account.RoleNone, ledger.EntryCredit, ledger.EffectCredit},
		{"party debit mirrors", "Ramesh", account.TypeParty, account.RoleNone, ledger.EntryDebit, ledger.EffectDebit},
		{"party type check is case-insensitive", "Ramesh", account.Type("Party"), account.RoleNone, ledger.EntryDebit, ledger.EffectDebit},

		// Funds: only crediting earmarks money out of the source.
		{"fund credit debits source", "Vacation", account.TypeFund, account.RoleNone, ledger.EntryCredit, ledger.EffectDebit},
		{"fund debit has no secondary effect", "Vacation", account.TypeFund, account.RoleNone, ledger.EntryDebit, ledger.EffectNone},

		// Everything else resolves to none, never an error.
		{"plain asset credit", "Bank", account.TypeAsset, account.RoleNone, ledger.EntryCredit, ledger.EffectNone},
		{"plain asset debit", "Bank", account.TypeAsset, account.RoleNone, ledger.EntryDebit, ledger.EffectNone},
		{"empty name and type", "", account.Type(""), account.RoleNone, ledger.EntryCredit, ledger.EffectNone},
		{"unknown txn type", "Ramesh", account.TypeParty, account.RoleNone, ledger.EntryType("transfer"), ledger.EffectNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.ResolveSecondaryEffect(tt.accName, tt.accType, tt.role, tt.txn)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// Every combination of the classification inputs must resolve to exactly one
// of credit, debit, or none.
func TestResolveSecondaryEffect_Total(t *testing.T) {
	names := []string{"investment", "other", ""}
	types := []account.Type{account.TypeAsset, account.TypeParty, account.TypeFund, ""}
	roles := []account.Role{account.RoleNone, account.RoleTransferInverted}
	entries := []ledger.EntryType{ledger.EntryCredit, ledger.EntryDebit}

	for _, name := range names {
		for _, typ := range types {
			for _, role := range roles {
				for _, entry := range entries {
					got := ledger.ResolveSecondaryEffect(name, typ, role, entry)
					assert.Contains(t,
						[]ledger.Effect{ledger.EffectCredit, ledger.EffectDebit, ledger.EffectNone},
						got,
						fmt.Sprintf("name=%q type=%q role=%q txn=%q", name, typ, role, entry),
					)
				}
			}
		}
	}
}

func TestEffectDelta(t *testing.T) {
	assert.Equal(t, int64(500), ledger.EffectCredit.Delta(500))
	assert.Equal(t, int64(-500), ledger.EffectDebit.Delta(500))
	assert.Equal(t, int64(0), ledger.EffectNone.Delta(500))

	assert.Equal(t, int64(200), ledger.EntryCredit.Delta(200))
	assert.Equal(t, int64(-200), ledger.EntryDebit.Delta(200))
}
