package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// RoundMoney rounds a monetary value to 2 decimal places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ParseDate parses an ISO-8601 date string (day granularity).
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// FormatDate renders a time as an ISO-8601 date string.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// DateOnly truncates a time to midnight UTC on its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns whole calendar days from now's date until due's date.
// Negative when due is in the past.
func DaysUntil(due, now time.Time) int {
	return int(DateOnly(due).Sub(DateOnly(now)).Hours() / 24)
}

// IsBeforeDay reports whether a falls on an earlier calendar day than b.
func IsBeforeDay(a, b time.Time) bool {
	return DateOnly(a).Before(DateOnly(b))
}

// AddMonths adds n calendar months to a date, clamping to the last valid
// day of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, t.Location())
}
