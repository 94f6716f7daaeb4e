package fvalue

import (
	"time"
)

// MonthDiff counts the whole months from `from` until `to`; negative when `to` comes first.
func MonthDiff(from time.Time, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if months > 0 && to.Before(from.AddDate(0, months, 0)) {
		months--
	}
	if months < 0 && to.After(from.AddDate(0, months, 0)) {
		months++
	}
	return months
}

func YearDiff(from time.Time, to time.Time) int {
	return MonthDiff(from, to) / 12
}

func AddYears(t time.Time, years int) time.Time {
	return t.AddDate(years, 0, 0)
}
