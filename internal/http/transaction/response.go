package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/nkhandelwal/hisab/internal/ledger"
)

type transactionResponse struct {
	ID             uuid.UUID        `json:"id"`
	AccountID      uuid.UUID        `json:"account_id"`
	ExtraAccountID *uuid.UUID       `json:"extra_account_id,omitempty"`
	Type           ledger.EntryType `json:"type"`
	Amount         int64            `json:"amount"`
	Note           string           `json:"note,omitempty"`
	AccountName    string           `json:"account_name"`
	AccountType    string           `json:"account_type"`
	AccountRole    string           `json:"account_role,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:             tx.ID,
		AccountID:      tx.AccountID,
		ExtraAccountID: tx.ExtraAccountID,
		Type:           tx.Type,
		Amount:         tx.Amount,
		Note:           tx.Note,
		AccountName:    tx.AccountName,
		AccountType:    string(tx.AccountType),
		AccountRole:    string(tx.AccountRole),
		CreatedAt:      tx.CreatedAt,
	}
}

func toResponseList(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
