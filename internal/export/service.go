// Package export renders filtered transaction statements for download.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/nkhandelwal/hisab/internal/account"
	"github.com/nkhandelwal/hisab/internal/ledger"
)

// TransactionLister is the read side of the ledger. Satisfied by *ledger.Service.
type TransactionLister interface {
	List(ctx context.Context, userID string, filter ledger.ListFilter) ([]*ledger.Transaction, error)
}

// AccountLister resolves account names for statement rows. Satisfied by *account.Service.
type AccountLister interface {
	List(ctx context.Context, userID string) ([]*account.Account, error)
}

type Service struct {
	transactions TransactionLister
	accounts     AccountLister
}

func NewService(transactions TransactionLister, accounts AccountLister) *Service {
	return &Service{transactions: transactions, accounts: accounts}
}

var statementHeader = []string{
	"Date", "Account", "Note", "Credit", "Debit", "Counterpart", "Counterpart Effect", "Balance",
}

// Statement writes the filtered transactions as CSV, oldest first, with a
// running balance over the filtered set from the primary account's side.
// The counterpart columns reuse the secondary-effect resolver, so the
// statement shows the same two-leg view the balances were built from.
func (s *Service) Statement(ctx context.Context, userID string, filter ledger.ListFilter, w io.Writer) error {
	txs, err := s.transactions.List(ctx, userID, filter)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	names, err := s.accountNames(ctx, userID)
	if err != nil {
		return err
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].CreatedAt.Before(txs[j].CreatedAt)
	})

	cw := csv.NewWriter(w)

	if err := cw.Write(statementHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	var running int64

	for _, tx := range txs {
		running += tx.Type.Delta(tx.Amount)

		credit, debit := "", ""
		if tx.Type == ledger.EntryCredit {
			credit = strconv.FormatInt(tx.Amount, 10)
		} else {
			debit = strconv.FormatInt(tx.Amount, 10)
		}

		counterpart, counterpartEffect := "", ""

		if tx.ExtraAccountID != nil {
			counterpart = names[*tx.ExtraAccountID]
			if counterpart == "" {
				counterpart = tx.ExtraAccountID.String()
			}

			effect := ledger.ResolveSecondaryEffect(tx.AccountName, tx.AccountType, tx.AccountRole, tx.Type)
			if effect != ledger.EffectNone {
				counterpartEffect = string(effect)
			}
		}

		row := []string{
			tx.CreatedAt.Format("2006-01-02"),
			names[tx.AccountID],
			tx.Note,
			credit,
			debit,
			counterpart,
			counterpartEffect,
			strconv.FormatInt(running, 10),
		}

		if row[1] == "" {
			row[1] = tx.AccountName
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing statement: %w", err)
	}

	return nil
}

func (s *Service) accountNames(ctx context.Context, userID string) (map[uuid.UUID]string, error) {
	accounts, err := s.accounts.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	names := make(map[uuid.UUID]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	return names, nil
}
