package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkhandelwal/hisab/internal/account"
	"github.com/nkhandelwal/hisab/internal/export"
	"github.com/nkhandelwal/hisab/internal/ledger"
)

const userID = "user-1"

type stubLister struct {
	txs []*ledger.Transaction
}

func (s *stubLister) List(_ context.Context, _ string, _ ledger.ListFilter) ([]*ledger.Transaction, error) {
	return s.txs, nil
}

type stubAccounts struct {
	accounts []*account.Account
}

func (s *stubAccounts) List(_ context.Context, _ string) ([]*account.Account, error) {
	return s.accounts, nil
}

func TestService_Statement(t *testing.T) {
	investmentID := uuid.New()
	bankID := uuid.New()

	accounts := &stubAccounts{accounts: []*account.Account{
		{ID: investmentID, Name: "Investment", Type: account.TypeAsset, Role: account.RoleTransferInverted},
		{ID: bankID, Name: "Bank", Type: account.TypeAsset},
	}}

	// Listed newest-first, as the store returns them; the statement must
	// re-order oldest-first.
	txs := &stubLister{txs: []*ledger.Transaction{
		{
			ID:        uuid.New(),
			AccountID: bankID,
			Type:      ledger.EntryDebit,
			Amount:    200,
			Note:      "rent",
			CreatedAt: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             uuid.New(),
			AccountID:      investmentID,
			ExtraAccountID: &bankID,
			Type:           ledger.EntryCredit,
			Amount:         500,
			Note:           "sip",
			AccountName:    "Investment",
			AccountType:    account.TypeAsset,
			AccountRole:    account.RoleTransferInverted,
			CreatedAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}}

	svc := export.NewService(txs, accounts)

	var buf bytes.Buffer
	require.NoError(t, svc.Statement(context.Background(), userID, ledger.ListFilter{}, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Date", "Account", "Note", "Credit", "Debit", "Counterpart", "Counterpart Effect", "Balance"}, records[0])

	// Oldest first: the investment credit, counterpart debited, running 500.
	assert.Equal(t, []string{"2024-03-01", "Investment", "sip", "500", "", "Bank", "debit", "500"}, records[1])
	// Then the bank debit, no counterpart, running 300.
	assert.Equal(t, []string{"2024-03-05", "Bank", "rent", "", "200", "", "", "300"}, records[2])
}

func TestService_Statement_Empty(t *testing.T) {
	svc := export.NewService(&stubLister{}, &stubAccounts{})

	var buf bytes.Buffer
	require.NoError(t, svc.Statement(context.Background(), userID, ledger.ListFilter{}, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")
}

func TestService_Statement_UnknownAccountFallsBackToSnapshot(t *testing.T) {
	gone := uuid.New()

	txs := &stubLister{txs: []*ledger.Transaction{
		{
			ID:          uuid.New(),
			AccountID:   gone,
			Type:        ledger.EntryCredit,
			Amount:      50,
			AccountName: "Old Wallet",
			CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}}

	svc := export.NewService(txs, &stubAccounts{})

	var buf bytes.Buffer
	require.NoError(t, svc.Statement(context.Background(), userID, ledger.ListFilter{}, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Old Wallet", records[1][1])
}
