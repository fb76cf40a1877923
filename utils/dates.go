package utils

import (
	"fmt"
	"strings"
	"time"

	"hotel-pms/pricing"
)

const DateLayout = "2006-01-02"

// ParseDate accepts "2006-01-02" or RFC3339 and returns the UTC calendar day.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return pricing.Day(t), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return pricing.Day(t), nil
}

// MonthBounds returns the first day of t's month and the first day of the next.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	d := pricing.Day(t)
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
