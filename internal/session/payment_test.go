// ABOUTME: Tests for payment-date arithmetic
// ABOUTME: Covers month and year rollover, the 25th boundary, and label formatting

package session

import (
	"math"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}

func TestDaysUntilPayment(t *testing.T) {
	tests := []struct {
		name       string
		today      time.Time
		wantTarget time.Time
		wantDays   int
	}{
		{"before the 25th", date(2026, time.October, 19), date(2026, time.October, 25), 6},
		{"day before", date(2026, time.February, 24), date(2026, time.February, 25), 1},
		{"on the 25th rolls forward", date(2026, time.October, 25), date(2026, time.November, 25), 31},
		{"after the 25th", date(2026, time.October, 26), date(2026, time.November, 25), 30},
		{"year rollover on the 25th", date(2026, time.December, 25), date(2027, time.January, 25), 31},
		{"new year's eve", date(2026, time.December, 31), date(2027, time.January, 25), 25},
		{"first of month", date(2026, time.January, 1), date(2026, time.January, 25), 24},
		{"february boundary", date(2026, time.February, 25), date(2026, time.March, 25), 28},
		{"leap february", date(2024, time.February, 26), date(2024, time.March, 25), 28},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target := NextPaymentDate(tc.today)
			if target.Year() != tc.wantTarget.Year() || target.Month() != tc.wantTarget.Month() || target.Day() != tc.wantTarget.Day() {
				t.Errorf("expected target %s, got %s", tc.wantTarget.Format("2006-01-02"), target.Format("2006-01-02"))
			}
			if got := DaysUntilPayment(tc.today); got != tc.wantDays {
				t.Errorf("expected %d days, got %d", tc.wantDays, got)
			}
		})
	}
}

func TestDaysUntilPayment_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, time.October, 24, 23, 59, 59, 0, time.UTC)
	if got := DaysUntilPayment(late); got != 1 {
		t.Errorf("expected 1 day just before midnight, got %d", got)
	}

	midnight := time.Date(2026, time.October, 25, 0, 0, 0, 0, time.UTC)
	if got := DaysUntilPayment(midnight); got != 31 {
		t.Errorf("expected rollover at midnight on the 25th, got %d", got)
	}
}

func TestDaysUntilPayment_Bounds(t *testing.T) {
	loc, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		loc = time.UTC
	}
	day := time.Date(2024, time.January, 1, 12, 0, 0, 0, loc)
	end := time.Date(2028, time.January, 1, 0, 0, 0, 0, loc)

	for ; day.Before(end); day = day.AddDate(0, 0, 1) {
		days := DaysUntilPayment(day)
		if days < 1 || days > 31 {
			t.Fatalf("%s: days %d out of range", day.Format("2006-01-02"), days)
		}
		target := NextPaymentDate(day)
		if target.Day() != PaymentDay {
			t.Fatalf("%s: target %s is not the 25th", day.Format("2006-01-02"), target.Format("2006-01-02"))
		}
		if !target.After(day) {
			t.Fatalf("%s: target %s is not after today", day.Format("2006-01-02"), target.Format("2006-01-02"))
		}
	}
}

func TestPaymentLabel(t *testing.T) {
	if got := PaymentLabel(date(2026, time.October, 19)); got != "Oct 25 (6d)" {
		t.Errorf("expected %q, got %q", "Oct 25 (6d)", got)
	}
	if got := PaymentLabel(date(2026, time.December, 28)); got != "Jan 25 (28d)" {
		t.Errorf("expected %q, got %q", "Jan 25 (28d)", got)
	}
}

func TestDaysAwayLabel(t *testing.T) {
	tests := []struct {
		days     int
		expected string
	}{
		{1, "1 day away"},
		{6, "6 days away"},
		{31, "31 days away"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := DaysAwayLabel(tc.days); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestCycleProgress(t *testing.T) {
	tests := []struct {
		name     string
		today    time.Time
		expected float64
	}{
		{"payment day starts a new cycle", date(2026, time.October, 25), 0},
		{"mid cycle", date(2026, time.October, 19), 80},
		{"day before payment", date(2026, time.October, 24), 29.0 / 30.0 * 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CycleProgress(tc.today)
			if math.Abs(got-tc.expected) > 0.001 {
				t.Errorf("expected %.3f, got %.3f", tc.expected, got)
			}
		})
	}
}
