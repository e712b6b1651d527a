package account

import (
	"time"

	"github.com/google/uuid"

	"github.com/nkhandelwal/hisab/internal/account"
)

type response struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Role      string    `json:"role,omitempty"`
	Balance   int64     `json:"balance"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(a *account.Account) response {
	return response{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Type),
		Role:      string(a.Role),
		Balance:   a.Balance,
		Disabled:  a.Disabled,
		CreatedAt: a.CreatedAt,
	}
}

func toResponseList(accounts []*account.Account) []response {
	out := make([]response, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toResponse(a))
	}

	return out
}

type summaryResponse struct {
	TotalEverything     int64 `json:"total_everything"`
	TotalExcludingFunds int64 `json:"total_excluding_funds"`
	InvestmentOnly      int64 `json:"investment_only"`
	CashBalance         int64 `json:"cash_balance"`
	Receivable          int64 `json:"receivable"`
	Payable             int64 `json:"payable"`
	TotalFunds          int64 `json:"total_funds"`
}

func toSummaryResponse(s account.Summary) summaryResponse {
	return summaryResponse{
		TotalEverything:     s.TotalEverything,
		TotalExcludingFunds: s.TotalExcludingFunds,
		InvestmentOnly:      s.InvestmentOnly,
		CashBalance:         s.CashBalance,
		Receivable:          s.Receivable,
		Payable:             s.Payable,
		TotalFunds:          s.TotalFunds,
	}
}
