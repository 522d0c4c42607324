/*
Package holiday supplies the public-holiday overlay consumed by month
aggregation.

PURPOSE:
  The engine classifies days as business or holiday using a per-month
  HolidayMap. This package defines the provider contract and three
  implementations: the Google Calendar public-holiday feed the app runs
  against in production, a fixed in-memory provider, and a composite that
  falls back when the primary is unavailable.

FAILURE POLICY:
  Providers may fail independently of everything else. Callers treat a
  failed holiday fetch as advisory: classification degrades to weekend-only
  (an empty map) and computation proceeds.
*/
package holiday

import (
	"context"

	"github.com/kk0ga/employee-time-attendance/attendance"
)

// Provider fetches the holiday overlay for one month.
type Provider interface {
	HolidaysForMonth(ctx context.Context, year, month int) (attendance.HolidayMap, error)
}

// None is a no-op provider for deployments without a holiday calendar;
// classification becomes weekend-only.
type None struct{}

func (None) HolidaysForMonth(context.Context, int, int) (attendance.HolidayMap, error) {
	return attendance.HolidayMap{}, nil
}
