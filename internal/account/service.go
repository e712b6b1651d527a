package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, userID string, a *Account) error
	GetAccount(ctx context.Context, userID string, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, userID string) ([]*Account, error)
	SetDisabled(ctx context.Context, userID string, id uuid.UUID, disabled bool) error

	// AdjustBalance atomically increments the balance by delta. Adjusting a
	// missing account is a no-op, mirroring how transactions may reference
	// accounts deleted out-of-band.
	AdjustBalance(ctx context.Context, userID string, id uuid.UUID, delta int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name     string
	Type     Type
	Role     Role
	Balance  int64
	Disabled bool
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Account, error) {
	a := &Account{
		Name:     params.Name,
		Type:     ParseType(string(params.Type)),
		Role:     params.Role,
		Balance:  params.Balance,
		Disabled: params.Disabled,
	}

	// Migration default: accounts literally named "investment" carried
	// inverted transfer semantics before roles existed.
	if a.Role == RoleNone && strings.EqualFold(a.Name, "investment") {
		a.Role = RoleTransferInverted
	}

	if err := s.repo.CreateAccount(ctx, userID, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, userID)
}

func (s *Service) SetDisabled(ctx context.Context, userID string, id uuid.UUID, disabled bool) error {
	return s.repo.SetDisabled(ctx, userID, id, disabled)
}

// FindByName returns the user's account whose name matches case-insensitively,
// or ErrNotFound. Used by the bulk importer to resolve spreadsheet categories.
func (s *Service) FindByName(ctx context.Context, userID, name string) (*Account, error) {
	accounts, err := s.repo.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	for _, a := range accounts {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}

	return nil, ErrNotFound
}

// CreateDefaults seeds the starter account set for a new user.
func (s *Service) CreateDefaults(ctx context.Context, userID string) ([]*Account, error) {
	defaults := []CreateParams{
		{Name: "Cash", Type: TypeAsset},
		{Name: "Bank", Type: TypeAsset},
		{Name: "Investment", Type: TypeAsset},
	}

	created := make([]*Account, 0, len(defaults))

	for _, params := range defaults {
		a, err := s.Create(ctx, userID, params)
		if err != nil {
			return created, fmt.Errorf("creating default account %q: %w", params.Name, err)
		}

		created = append(created, a)
	}

	return created, nil
}
