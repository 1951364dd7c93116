package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalendarDaysBetween returns the number of whole calendar days from 'from' to
// 'to', comparing dates at midnight in the 'to' location. Returns 0 when 'to'
// is not after 'from'.
func CalendarDaysBetween(from, to time.Time) int64 {
	from = truncateToDay(from.In(to.Location()))
	to = truncateToDay(to)

	if !to.After(from) {
		return 0
	}

	return int64(to.Sub(from).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MoneyScale is the decimal scale used for stored monetary amounts.
const MoneyScale = 2

// RoundMoney rounds a decimal to the stored monetary scale.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
