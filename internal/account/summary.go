package account

import "strings"

// Summary aggregates account balances the way the dashboard presents them.
type Summary struct {
	// TotalEverything is assets + funds + receivables from parties.
	TotalEverything int64
	// TotalExcludingFunds leaves earmarked fund balances out.
	TotalExcludingFunds int64
	// InvestmentOnly is the balance of the investment account, if any.
	InvestmentOnly int64
	// CashBalance sums accounts named "bank" or "cash".
	CashBalance int64
	// Receivable is what parties owe (negative party balances, as a positive total).
	Receivable int64
	// Payable is what is owed to parties (positive party balances).
	Payable int64
	TotalFunds int64
}

// Summarize computes dashboard totals from a user's accounts.
// Party balances split by sign: a negative balance means the party owes us.
func Summarize(accounts []*Account) Summary {
	var s Summary

	for _, a := range accounts {
		switch {
		case a.Type.Is(TypeParty):
			if a.Balance < 0 {
				s.Receivable += -a.Balance
			} else {
				s.Payable += a.Balance
			}
		case a.Type.Is(TypeFund):
			s.TotalFunds += a.Balance
		default:
			s.TotalEverything += a.Balance
			s.TotalExcludingFunds += a.Balance

			name := strings.ToLower(a.Name)
			if name == "investment" {
				s.InvestmentOnly = a.Balance
			}

			if name == "bank" || name == "cash" {
				s.CashBalance += a.Balance
			}
		}
	}

	s.TotalEverything += s.TotalFunds + s.Receivable
	s.TotalExcludingFunds += s.Receivable

	return s
}
