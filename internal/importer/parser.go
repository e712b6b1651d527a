package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nkhandelwal/hisab/internal/ledger"
)

// Required header columns, matched case-insensitively.
const (
	colDate     = "date"
	colTime     = "time"
	colCategory = "category"
	colCashIn   = "cash in"
	colCashOut  = "cash out"
	colRemark   = "remark"
)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

var timeLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04 PM",
}

// Parse reads a cash-book CSV and returns its rows. Rows with an empty
// category, an unparseable date, or no cash amount at all are dropped; the
// second return value counts them so the caller can report the gap.
func Parse(r io.Reader) ([]Row, int, error) {
	utf8r, err := utf8Reader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv: %w", err)
	}

	if len(records) == 0 {
		return nil, 0, fmt.Errorf("empty file")
	}

	cols, err := headerIndex(records[0])
	if err != nil {
		return nil, 0, err
	}

	var rows []Row

	skipped := 0

	for _, record := range records[1:] {
		row, ok := parseRow(cols, record)
		if !ok {
			skipped++
			continue
		}

		rows = append(rows, row)
	}

	return rows, skipped, nil
}

type colIndex map[string]int

func headerIndex(header []string) (colIndex, error) {
	cols := make(colIndex, len(header))

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name != "" {
			cols[name] = i
		}
	}

	for _, required := range []string{colDate, colCategory, colCashIn, colCashOut} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q in header", required)
		}
	}

	return cols, nil
}

func parseRow(cols colIndex, record []string) (Row, bool) {
	category := cell(record, cols, colCategory)
	if category == "" {
		return Row{}, false
	}

	date, ok := parseDateTime(cell(record, cols, colDate), cell(record, cols, colTime))
	if !ok {
		return Row{}, false
	}

	cashIn := parseAmount(cell(record, cols, colCashIn))
	cashOut := parseAmount(cell(record, cols, colCashOut))

	// Credit iff money came in; otherwise the row is a debit of the
	// cash-out cell. Rows with neither carry no effect and are dropped.
	entry := ledger.EntryCredit

	amount := cashIn
	if cashIn <= 0 {
		entry = ledger.EntryDebit
		amount = cashOut
	}

	if amount <= 0 {
		return Row{}, false
	}

	return Row{
		Date:     date,
		Category: category,
		Type:     entry,
		Amount:   amount,
		Note:     cell(record, cols, colRemark),
	}, true
}

func parseDateTime(dateStr, timeStr string) (time.Time, bool) {
	var date time.Time

	ok := false

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			date = t
			ok = true

			break
		}
	}

	if !ok {
		return time.Time{}, false
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, timeStr); err == nil {
			return date.Add(time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second), true
		}
	}

	// Time cell is optional; midnight when absent or unparseable.
	return date, true
}

// parseAmount reads a cash cell into whole units, truncating decimals.
// Thousands separators are tolerated; anything unparseable counts as zero.
func parseAmount(s string) int64 {
	if s == "" {
		return 0
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}

	return d.IntPart()
}

func cell(record []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx < 0 || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}
