package view

import (
	"strconv"
	"time"
)

// FormatAmount renders a whole-unit balance, negative values included.
func FormatAmount(amount int64) string {
	return strconv.FormatInt(amount, 10)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
