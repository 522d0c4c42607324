package attendance

// =============================================================================
// CANONICAL DAY MODEL
// =============================================================================

// AttendanceDay is one calendar day of one user's attendance.
//
// Start and End are "HH:MM" local clock strings; the empty string means no
// punch was recorded. When both are present they are not required to satisfy
// Start <= End - the worked-minutes engine treats a negative span safely.
type AttendanceDay struct {
	Date         string `json:"date"`    // YYYY-MM-DD, fixed local timezone
	Weekday      int    `json:"weekday"` // 0=Sunday .. 6=Saturday, derived from Date
	Start        string `json:"start,omitempty"`
	End          string `json:"end,omitempty"`
	WorkCategory string `json:"workCategory,omitempty"`
}

// Attended reports whether a start punch was recorded for the day.
func (d AttendanceDay) Attended() bool { return d.Start != "" }

// AttendanceMonth is an immutable snapshot of one month. Days always covers
// every calendar day of the month, first to last, one entry per date.
// It is constructed fresh on every fetch and never mutated in place.
type AttendanceMonth struct {
	Year  int             `json:"year"`
	Month int             `json:"month"` // 1-12
	Days  []AttendanceDay `json:"days"`
}

// HolidayMap is a read-only overlay for one month mapping an ISO date string
// (YYYY-MM-DD) to a holiday name.
type HolidayMap map[string]string
