package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nkhandelwal/hisab/internal/account"
)

const userID = "user-1"

func TestService_Create(t *testing.T) {
	type testCase struct {
		name     string
		params   account.CreateParams
		wantType account.Type
		wantRole account.Role
	}

	tests := []testCase{
		{
			name:     "defaults to asset",
			params:   account.CreateParams{Name: "Wallet"},
			wantType: account.TypeAsset,
			wantRole: account.RoleNone,
		},
		{
			name:     "type normalized case-insensitively",
			params:   account.CreateParams{Name: "Ramesh", Type: account.Type("Party")},
			wantType: account.TypeParty,
			wantRole: account.RoleNone,
		},
		{
			name:     "investment gets the inverted-transfer role",
			params:   account.CreateParams{Name: "Investment"},
			wantType: account.TypeAsset,
			wantRole: account.RoleTransferInverted,
		},
		{
			name:     "investment role assignment is case-insensitive",
			params:   account.CreateParams{Name: "INVESTMENT"},
			wantType: account.TypeAsset,
			wantRole: account.RoleTransferInverted,
		},
		{
			name:     "explicit role is kept",
			params:   account.CreateParams{Name: "Broker", Role: account.RoleTransferInverted},
			wantType: account.TypeAsset,
			wantRole: account.RoleTransferInverted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			repo.EXPECT().
				CreateAccount(gomock.Any(), userID, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, a *account.Account) error {
					a.ID = uuid.New()
					return nil
				})

			svc := account.NewService(repo)

			got, err := svc.Create(context.Background(), userID, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantRole, got.Role)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Create_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateAccount(gomock.Any(), userID, gomock.Any()).
		Return(errors.New("db error"))

	svc := account.NewService(repo)

	_, err := svc.Create(context.Background(), userID, account.CreateParams{Name: "Wallet"})
	assert.Error(t, err)
}

func TestService_FindByName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := []*account.Account{
		{ID: uuid.New(), Name: "Groceries"},
		{ID: uuid.New(), Name: "Salary"},
	}

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().ListAccounts(gomock.Any(), userID).Return(accounts, nil).Times(2)

	svc := account.NewService(repo)

	got, err := svc.FindByName(context.Background(), userID, "groceries")
	require.NoError(t, err)
	assert.Equal(t, accounts[0].ID, got.ID)

	_, err = svc.FindByName(context.Background(), userID, "Rent")
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestService_CreateDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateAccount(gomock.Any(), userID, gomock.Any()).
		Times(3).
		DoAndReturn(func(_ context.Context, _ string, a *account.Account) error {
			a.ID = uuid.New()
			return nil
		})

	svc := account.NewService(repo)

	created, err := svc.CreateDefaults(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, created, 3)

	assert.Equal(t, "Cash", created[0].Name)
	assert.Equal(t, "Bank", created[1].Name)
	assert.Equal(t, "Investment", created[2].Name)
	assert.Equal(t, account.RoleTransferInverted, created[2].Role)
}

func TestParseType(t *testing.T) {
	assert.Equal(t, account.TypeParty, account.ParseType("Party"))
	assert.Equal(t, account.TypeFund, account.ParseType(" fund "))
	assert.Equal(t, account.TypeAsset, account.ParseType("Asset"))
	assert.Equal(t, account.TypeAsset, account.ParseType(""))
	assert.Equal(t, account.TypeAsset, account.ParseType("whatever"))
}
