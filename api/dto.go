package api

import (
	"github.com/shopspring/decimal"

	"github.com/kk0ga/employee-time-attendance/attendance"
	"github.com/kk0ga/employee-time-attendance/timesheet"
)

// =============================================================================
// REQUEST / RESPONSE SHAPES
// =============================================================================

type createPunchRequest struct {
	Type string `json:"type"` // "start" | "end"
	Note string `json:"note,omitempty"`
}

type setCategoryRequest struct {
	WorkCategory string `json:"workCategory"`
}

type advisoryDTO struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// summaryDTO carries the raw minute totals plus exact decimal-hour
// renderings so clients don't re-divide (and re-round) on their side.
type summaryDTO struct {
	attendance.MonthSummary
	BusinessHours string `json:"businessHours"`
	HolidayHours  string `json:"holidayHours"`
	TotalHours    string `json:"totalHours"`
}

type monthViewResponse struct {
	Year       int                       `json:"year"`
	Month      int                       `json:"month"`
	Days       []attendance.AttendanceDay `json:"days"`
	Holidays   attendance.HolidayMap     `json:"holidays"`
	Rule       attendance.WorkRule       `json:"rule"`
	Summary    summaryDTO                `json:"summary"`
	Advisories []advisoryDTO             `json:"advisories"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// minutesToHours renders minutes as decimal hours with two places, e.g.
// 466 -> "7.77". decimal keeps the division exact before the final rounding.
func minutesToHours(minutes int) string {
	return decimal.NewFromInt(int64(minutes)).
		Div(decimal.NewFromInt(60)).
		StringFixed(2)
}

func toSummaryDTO(s attendance.MonthSummary) summaryDTO {
	return summaryDTO{
		MonthSummary:  s,
		BusinessHours: minutesToHours(s.BusinessMinutes),
		HolidayHours:  minutesToHours(s.HolidayMinutes),
		TotalHours:    minutesToHours(s.TotalMinutes),
	}
}

func toMonthViewResponse(view *timesheet.MonthView) monthViewResponse {
	advisories := make([]advisoryDTO, 0, len(view.Advisories))
	for _, a := range view.Advisories {
		advisories = append(advisories, advisoryDTO{Kind: string(a.Kind), Message: a.Message()})
	}

	return monthViewResponse{
		Year:       view.Month.Year,
		Month:      view.Month.Month,
		Days:       view.Month.Days,
		Holidays:   view.Holidays,
		Rule:       view.Rule,
		Summary:    toSummaryDTO(view.Summary),
		Advisories: advisories,
	}
}
