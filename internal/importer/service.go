package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/nkhandelwal/hisab/internal/account"
	"github.com/nkhandelwal/hisab/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer

// AccountDirectory resolves and creates accounts by name.
// Satisfied by *account.Service.
type AccountDirectory interface {
	FindByName(ctx context.Context, userID, name string) (*account.Account, error)
	Create(ctx context.Context, userID string, params account.CreateParams) (*account.Account, error)
}

// TransactionAdder records a single transaction with its balance effects.
// Satisfied by *ledger.Service.
type TransactionAdder interface {
	Add(ctx context.Context, userID string, params ledger.CreateParams) (uuid.UUID, error)
}

type Service struct {
	accounts AccountDirectory
	ledger   TransactionAdder
}

func NewService(accounts AccountDirectory, ledger TransactionAdder) *Service {
	return &Service{accounts: accounts, ledger: ledger}
}

// Import parses the CSV and records one transaction per usable row. Rows are
// filed under the account matching their category, creating missing accounts
// with newAccountType and a zero balance.
//
// Rows are applied one at a time in file order; a failure aborts the run and
// reports how far it got, leaving earlier rows applied.
func (s *Service) Import(ctx context.Context, userID string, r io.Reader, newAccountType account.Type) (*Result, error) {
	rows, skipped, err := Parse(r)
	if err != nil {
		return nil, err
	}

	result := &Result{Skipped: skipped}

	cache := make(map[string]*account.Account)

	for i, row := range rows {
		acc, err := s.resolveAccount(ctx, userID, row.Category, newAccountType, cache, result)
		if err != nil {
			return result, fmt.Errorf("row %d: resolving account %q: %w", i+1, row.Category, err)
		}

		_, err = s.ledger.Add(ctx, userID, ledger.CreateParams{
			AccountID:   acc.ID,
			Type:        row.Type,
			Amount:      row.Amount,
			Note:        row.Note,
			CreatedAt:   row.Date,
			AccountName: acc.Name,
			AccountType: acc.Type,
			AccountRole: acc.Role,
		})
		if err != nil {
			return result, fmt.Errorf("row %d: adding transaction: %w", i+1, err)
		}

		result.Imported++
	}

	return result, nil
}

func (s *Service) resolveAccount(
	ctx context.Context,
	userID, category string,
	newType account.Type,
	cache map[string]*account.Account,
	result *Result,
) (*account.Account, error) {
	key := strings.ToLower(category)
	if acc, ok := cache[key]; ok {
		return acc, nil
	}

	acc, err := s.accounts.FindByName(ctx, userID, category)

	switch {
	case err == nil:
	case errors.Is(err, account.ErrNotFound):
		acc, err = s.accounts.Create(ctx, userID, account.CreateParams{
			Name: category,
			Type: newType,
		})
		if err != nil {
			return nil, err
		}

		result.CreatedAccounts = append(result.CreatedAccounts, acc.Name)
	default:
		return nil, err
	}

	cache[key] = acc

	return acc, nil
}
