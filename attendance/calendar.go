/*
Package attendance provides the time-accounting engine.

PURPOSE:
  This package contains the pure computations behind the attendance app:
  normalizing raw list-store records into one canonical entry per calendar
  day, applying configurable rounding and break deduction to punch times,
  and aggregating a month into business-day / holiday summaries.

KEY CONCEPTS:
  - AttendanceDay / AttendanceMonth: canonical per-day model (types.go)
  - WorkRule: per-user rounding and break configuration (workrule.go)
  - WorkedMinutes: the rounding + break engine (worktime.go)
  - NormalizeMonth: sparse records -> fully-populated month (normalize.go)
  - Summarize: business/holiday split with totals (summary.go)

DESIGN PRINCIPLES:
  1. Purity: every function here is deterministic and side-effect free
  2. Totality: malformed user input degrades to safe defaults, never errors
  3. Immutability: months and summaries are fresh values, recomputed per query

TIMEZONE:
  The deployment timezone is Asia/Tokyo, a fixed +09:00 offset with no DST.
  Date-only arithmetic is done on the UTC civil calendar so a date never
  shifts across a day boundary; only "what is today / what time is it now"
  consults the fixed offset.

SEE ALSO:
  - store.go: the list-store collaborator contract
  - timesheet/: orchestration and fallback policy over this engine
*/
package attendance

import (
	"fmt"
	"time"
)

// =============================================================================
// CALENDAR UTILITIES - Fixed-offset Gregorian date arithmetic
// =============================================================================

// Zone is the fixed local timezone of the deployment. Asia/Tokyo has no DST,
// so a constant offset is sufficient and keeps the package loadable without
// tzdata.
var Zone = time.FixedZone("JST", 9*60*60)

// DaysInMonth returns the number of days in the given month (1-12).
// Correct for leap years. Inputs are assumed valid; there are no error paths.
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekdayOf returns the day of week for a date, 0=Sunday .. 6=Saturday,
// computed on the UTC civil calendar.
func WeekdayOf(year, month, day int) int {
	return int(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday())
}

// FormatDate renders a date as zero-padded YYYY-MM-DD.
func FormatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// MonthKey renders the YYYY-MM prefix shared by every date of a month.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// Today returns the current date in the fixed local timezone.
func Today() (year, month, day int) {
	now := time.Now().In(Zone)
	return now.Year(), int(now.Month()), now.Day()
}

// NowClock returns the current local date and wall-clock time as the string
// pair used throughout the list store: ("YYYY-MM-DD", "HH:MM").
func NowClock() (date, clock string) {
	now := time.Now().In(Zone)
	return FormatDate(now.Year(), int(now.Month()), now.Day()), now.Format("15:04")
}
