package holiday

import (
	"context"
	"strings"

	"github.com/kk0ga/employee-time-attendance/attendance"
)

// Static serves holidays from a fixed date -> name map. Useful for tests and
// for offline deployments that ship a yearly holiday table in config.
type Static struct {
	dates map[string]string
}

// NewStatic copies the given map. Keys are ISO dates (YYYY-MM-DD).
func NewStatic(dates map[string]string) *Static {
	copied := make(map[string]string, len(dates))
	for date, name := range dates {
		copied[date] = name
	}
	return &Static{dates: copied}
}

func (s *Static) HolidaysForMonth(_ context.Context, year, month int) (attendance.HolidayMap, error) {
	prefix := attendance.MonthKey(year, month) + "-"
	out := attendance.HolidayMap{}
	for date, name := range s.dates {
		if strings.HasPrefix(date, prefix) {
			out[date] = name
		}
	}
	return out, nil
}
