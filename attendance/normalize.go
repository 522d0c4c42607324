package attendance

import "strings"

// =============================================================================
// ATTENDANCE-DAY NORMALIZATION - Sparse records -> canonical month
// =============================================================================

// NormalizeMonth merges raw list-store records into one canonical entry per
// calendar day of the target month.
//
// Records are filtered to the requesting user and to dates carrying the
// target YYYY-MM prefix. When duplicates exist for a date, the first
// occurrence wins: the input must be ordered newest-first (part of the
// ListStore contract), which makes "first occurrence" the most recently
// created record. The result always has exactly DaysInMonth(year, month)
// entries in ascending date order; days with no record keep empty
// start/end/category. Callers never need to check for missing days.
func NormalizeMonth(year, month int, userID string, records []RawAttendanceRecord) AttendanceMonth {
	prefix := MonthKey(year, month) + "-"

	byDate := make(map[string]RawAttendanceRecord)
	for _, rec := range records {
		if rec.UserID != userID {
			continue
		}
		if !strings.HasPrefix(rec.Date, prefix) {
			continue
		}
		if _, seen := byDate[rec.Date]; seen {
			continue // newest-first input: keep the first occurrence
		}
		byDate[rec.Date] = rec
	}

	lastDay := DaysInMonth(year, month)
	days := make([]AttendanceDay, 0, lastDay)
	for day := 1; day <= lastDay; day++ {
		date := FormatDate(year, month, day)
		entry := AttendanceDay{
			Date:    date,
			Weekday: WeekdayOf(year, month, day),
		}
		if rec, ok := byDate[date]; ok {
			entry.Start = rec.Start
			entry.End = rec.End
			entry.WorkCategory = rec.WorkCategory
		}
		days = append(days, entry)
	}

	return AttendanceMonth{Year: year, Month: month, Days: days}
}
