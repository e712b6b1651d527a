package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkhandelwal/hisab/internal/ledger"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"Date,Time,Category,Cash In,Cash Out,Remark",
		"2024-03-01,09:30:00,Groceries,,450.75,weekly shop",
		"2024-03-02,14:00,Salary,50000,,march pay",
		"2024-03-03,,Groceries,,120,",
		"not-a-date,09:00,Groceries,,10,bad row",
		"2024-03-04,10:00,,,,no category",
		"2024-03-05,10:00,Groceries,,,no amounts",
	}, "\n")

	rows, skipped, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 3, skipped)
	require.Len(t, rows, 3)

	assert.Equal(t, "Groceries", rows[0].Category)
	assert.Equal(t, ledger.EntryDebit, rows[0].Type)
	assert.Equal(t, int64(450), rows[0].Amount, "fractional amounts truncate")
	assert.Equal(t, "weekly shop", rows[0].Note)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), rows[0].Date)

	assert.Equal(t, "Salary", rows[1].Category)
	assert.Equal(t, ledger.EntryCredit, rows[1].Type)
	assert.Equal(t, int64(50000), rows[1].Amount)
	assert.Equal(t, time.Date(2024, 3, 2, 14, 0, 0, 0, time.UTC), rows[1].Date)

	// Missing time defaults to midnight.
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), rows[2].Date)
}

func TestParse_CreditWinsOverDebit(t *testing.T) {
	// A row with both cells filled is a credit: cash-in takes precedence.
	input := "Date,Time,Category,Cash In,Cash Out,Remark\n" +
		"2024-01-10,08:00,Shop,100,40,both cells\n"

	rows, _, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ledger.EntryCredit, rows[0].Type)
	assert.Equal(t, int64(100), rows[0].Amount)
}

func TestParse_ThousandsSeparators(t *testing.T) {
	input := "Date,Time,Category,Cash In,Cash Out,Remark\n" +
		"2024-01-10,08:00,Rent,,\"12,500\",january\n"

	rows, _, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(12500), rows[0].Amount)
}

func TestParse_AlternateDateLayouts(t *testing.T) {
	input := "Date,Time,Category,Cash In,Cash Out,Remark\n" +
		"15/03/2024,08:00,Shop,10,,dmy slash\n" +
		"16-03-2024,08:00,Shop,10,,dmy dash\n"

	rows, skipped, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, rows, 2)
	assert.Equal(t, time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC), rows[0].Date)
	assert.Equal(t, time.Date(2024, 3, 16, 8, 0, 0, 0, time.UTC), rows[1].Date)
}

func TestParse_MissingColumns(t *testing.T) {
	_, _, err := Parse(strings.NewReader("Date,Category\n2024-01-01,Shop\n"))
	assert.Error(t, err)
}

func TestParse_UTF8BOM(t *testing.T) {
	input := "\xEF\xBB\xBFDate,Time,Category,Cash In,Cash Out,Remark\n" +
		"2024-01-10,08:00,Café,25,,chai\n"

	rows, _, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café", rows[0].Category)
}

func TestParse_Windows1252(t *testing.T) {
	// "Café" with é encoded as 0xE9.
	input := "Date,Time,Category,Cash In,Cash Out,Remark\n" +
		"2024-01-10,08:00,Caf\xE9,25,,chai\n"

	rows, _, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café", rows[0].Category)
}
