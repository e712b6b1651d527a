// Package importer ingests cash-book spreadsheet exports: one row per
// transaction with a category column naming the account and separate
// Cash In / Cash Out amount columns.
package importer

import (
	"time"

	"github.com/nkhandelwal/hisab/internal/ledger"
)

// Row is one parsed spreadsheet line, already reduced to a single direction:
// Type is credit iff the Cash In cell was positive.
type Row struct {
	Date     time.Time
	Category string
	Type     ledger.EntryType
	// Amount is truncated to whole units. Fractional cash cells lose their
	// decimals, the same coercion manual entry applies.
	Amount int64
	Note   string
}

// Result summarizes one import run.
type Result struct {
	Imported        int
	Skipped         int
	CreatedAccounts []string
}
