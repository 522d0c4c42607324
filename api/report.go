package api

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/kk0ga/employee-time-attendance/attendance"
)

// =============================================================================
// PRINTABLE MONTHLY REPORT
// =============================================================================
// Renders the month as a self-contained HTML page styled for printing. The
// browser's print dialog is the PDF pipeline; the server only produces
// markup.

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type reportRow struct {
	Date     string
	Weekday  string
	Holiday  string
	Start    string
	End      string
	Category string
	Worked   string // decimal hours, blank when zero
}

type reportData struct {
	Title string
	Rows  []reportRow

	BusinessDayCount      int
	BusinessAttendedCount int
	BusinessHours         string
	HolidayAttendedCount  int
	HolidayHours          string
	TotalHours            string

	Advisories []string
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: system-ui, sans-serif; font-size: 12px; margin: 24px; }
  h1 { font-size: 16px; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #999; padding: 3px 6px; }
  th { background: #eee; }
  td.num { text-align: right; }
  .holiday { color: #b00; }
  .summary { margin-top: 12px; display: flex; gap: 16px; }
  .advisory { color: #a60; margin-top: 8px; }
  @media print { .advisory { display: none; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<thead>
<tr><th>Date</th><th>Day</th><th>Start</th><th>End</th><th>Category</th><th>Worked (h)</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr>
<td>{{.Date}}</td>
<td{{if .Holiday}} class="holiday"{{end}}>{{.Weekday}}{{if .Holiday}} ({{.Holiday}}){{end}}</td>
<td>{{.Start}}</td>
<td>{{.End}}</td>
<td>{{.Category}}</td>
<td class="num">{{.Worked}}</td>
</tr>
{{end}}</tbody>
</table>
<div class="summary">
<span>Business days: {{.BusinessDayCount}}</span>
<span>Attended: {{.BusinessAttendedCount}} ({{.BusinessHours}}h)</span>
<span>Holiday attendance: {{.HolidayAttendedCount}} ({{.HolidayHours}}h)</span>
<span>Total: {{.TotalHours}}h</span>
</div>
{{range .Advisories}}<p class="advisory">{{.}}</p>
{{end}}</body>
</html>
`))

func (h *Handler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	year, month, ok := h.yearMonthParams(w, r)
	if !ok {
		return
	}

	view, err := h.Service.MonthView(r.Context(), userIDFrom(r.Context()), year, month)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	data := reportData{
		Title:                 "Attendance " + attendance.MonthKey(year, month),
		BusinessDayCount:      view.Summary.BusinessDayCount,
		BusinessAttendedCount: view.Summary.BusinessAttendedCount,
		BusinessHours:         minutesToHours(view.Summary.BusinessMinutes),
		HolidayAttendedCount:  view.Summary.HolidayAttendedCount,
		HolidayHours:          minutesToHours(view.Summary.HolidayMinutes),
		TotalHours:            minutesToHours(view.Summary.TotalMinutes),
	}
	for _, a := range view.Advisories {
		data.Advisories = append(data.Advisories, a.Message())
	}
	for _, day := range view.Month.Days {
		row := reportRow{
			Date:     day.Date,
			Weekday:  weekdayLabels[day.Weekday],
			Holiday:  view.Holidays[day.Date],
			Start:    day.Start,
			End:      day.End,
			Category: day.WorkCategory,
		}
		if worked := attendance.WorkedMinutes(day.Start, day.End, view.Rule); worked > 0 {
			row.Worked = minutesToHours(worked)
		}
		data.Rows = append(data.Rows, row)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := reportTmpl.Execute(w, data); err != nil {
		h.Logger.Error("render report", zap.Error(err))
	}
}
