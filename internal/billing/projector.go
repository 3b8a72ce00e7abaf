// Package billing projects billing dates and computes days remaining.
package billing

import (
	"time"

	"github.com/theirongolddev/subtrack/internal/model"
)

// NextBillingDate returns the next occurrence of billingDay on or after the
// calendar day of from. A billing day equal to today stays in the current
// month. Days past the end of the target month clamp to its last day.
func NextBillingDate(billingDay int, from time.Time) model.Date {
	y, m, today := from.Date()

	if today > billingDay {
		m++
		if m > time.December {
			m = time.January
			y++
		}
	}

	day := billingDay
	if n := DaysInMonth(y, m); day > n {
		day = n
	}
	return model.Date{Year: y, Month: m, Day: day}
}

// DaysInMonth returns the number of days in month m of year y.
func DaysInMonth(y int, m time.Month) int {
	// Day 0 of the following month normalises to the last day of m.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
