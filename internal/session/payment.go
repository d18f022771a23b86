// ABOUTME: Payment-date arithmetic for the monthly benefit cycle
// ABOUTME: Payments land on the 25th; values are derived, never stored

package session

import (
	"fmt"
	"time"
)

// PaymentDay is the day of month benefit payments are issued
const PaymentDay = 25

// NextPaymentDate returns the next 25th strictly after today's calendar date.
// When today is the 25th or later, the 25th of the following month is used.
func NextPaymentDate(today time.Time) time.Time {
	y, m, d := today.Date()
	if d >= PaymentDay {
		m++
	}
	// time.Date normalizes month 13 into January of the next year
	return time.Date(y, m, PaymentDay, 0, 0, 0, 0, today.Location())
}

// DaysUntilPayment returns the number of calendar days between today and
// NextPaymentDate. The result is always in 1..31.
func DaysUntilPayment(today time.Time) int {
	return daysBetween(today, NextPaymentDate(today))
}

// PaymentLabel formats the next payment date with its countdown, e.g. "Oct 25 (6d)"
func PaymentLabel(today time.Time) string {
	return fmt.Sprintf("%s (%dd)", NextPaymentDate(today).Format("Jan 2"), DaysUntilPayment(today))
}

// DaysAwayLabel renders a countdown such as "1 day away" or "6 days away"
func DaysAwayLabel(days int) string {
	if days == 1 {
		return "1 day away"
	}
	return fmt.Sprintf("%d days away", days)
}

// CycleProgress returns how far today is through the current payment cycle,
// as a percentage from the previous 25th to the next.
func CycleProgress(today time.Time) float64 {
	next := NextPaymentDate(today)
	total := daysBetween(next.AddDate(0, -1, 0), next)
	elapsed := total - DaysUntilPayment(today)
	return float64(elapsed) / float64(total) * 100
}

// daysBetween counts calendar days from a to b, ignoring wall-clock time and DST
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
