package attendance

// =============================================================================
// MONTH AGGREGATION - Business-day / holiday split with combined totals
// =============================================================================

// MonthSummary is the derived aggregate over one month. It is purely a
// function of (AttendanceMonth, HolidayMap, WorkRule) and is never persisted.
//
// The split-then-combine shape is load-bearing: consumers present the
// business half, the holiday half, and the totals side by side.
type MonthSummary struct {
	BusinessDayCount      int `json:"businessDayCount"`
	BusinessAttendedCount int `json:"businessAttendedCount"`
	BusinessMinutes       int `json:"businessMinutes"`

	HolidayCount         int `json:"holidayCount"`
	HolidayAttendedCount int `json:"holidayAttendedCount"`
	HolidayMinutes       int `json:"holidayMinutes"`

	TotalAttendedCount int `json:"totalAttendedCount"`
	TotalMinutes       int `json:"totalMinutes"`
}

// IsHolidayClass classifies a day: Saturdays and Sundays are always
// holiday-class, as is any date present in the holiday map. A calendar
// holiday falling on a weekday therefore moves that day out of the business
// class.
func IsHolidayClass(day AttendanceDay, holidays HolidayMap) bool {
	if day.Weekday == 0 || day.Weekday == 6 {
		return true
	}
	_, ok := holidays[day.Date]
	return ok
}

// Summarize aggregates a month. Within each class it counts days, counts
// days with a recorded start punch, and sums WorkedMinutes over all days of
// the class - absent punches contribute zero, so unattended days are free to
// include.
func Summarize(month AttendanceMonth, holidays HolidayMap, rule WorkRule) MonthSummary {
	var s MonthSummary

	for _, day := range month.Days {
		worked := WorkedMinutes(day.Start, day.End, rule)

		if IsHolidayClass(day, holidays) {
			s.HolidayCount++
			s.HolidayMinutes += worked
			if day.Attended() {
				s.HolidayAttendedCount++
			}
		} else {
			s.BusinessDayCount++
			s.BusinessMinutes += worked
			if day.Attended() {
				s.BusinessAttendedCount++
			}
		}
	}

	s.TotalAttendedCount = s.BusinessAttendedCount + s.HolidayAttendedCount
	s.TotalMinutes = s.BusinessMinutes + s.HolidayMinutes
	return s
}
