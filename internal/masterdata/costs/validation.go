package costs

import (
	"time"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
)

// normalizeMonth parses YYYY-MM-DD and returns the first day of that month in
// UTC, so every cost row keys on a calendar month.
func normalizeMonth(raw string) (time.Time, error) {
	t, err := time.Parse(monthLayout, raw)
	if err != nil {
		return time.Time{}, httpx.Invalid("month", "must be a date formatted 2006-01-02")
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}
