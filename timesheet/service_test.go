package timesheet_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kk0ga/employee-time-attendance/attendance"
	"github.com/kk0ga/employee-time-attendance/holiday"
	"github.com/kk0ga/employee-time-attendance/store/memory"
	"github.com/kk0ga/employee-time-attendance/timesheet"
)

const user = "3b0c44a8-1f5e-4f2b-9c6d-2f8a41f0b7aa"

func seedWeekdays(store *memory.Store, year, month int, start, end string) {
	for day := 1; day <= attendance.DaysInMonth(year, month); day++ {
		wd := attendance.WeekdayOf(year, month, day)
		if wd >= 1 && wd <= 5 {
			store.SeedAttendance(attendance.RawAttendanceRecord{
				UserID: user,
				Date:   attendance.FormatDate(year, month, day),
				Start:  start,
				End:    end,
			})
		}
	}
}

func TestMonthView_HappyPath(t *testing.T) {
	// GIVEN: a fully attended June 2025, a saved rule, and one weekday holiday
	store := memory.New()
	seedWeekdays(store, 2025, 6, "09:00", "18:00")
	require.NoError(t, store.UpsertWorkRule(context.Background(), user, attendance.DefaultWorkRule()))

	holidays := holiday.NewStatic(map[string]string{"2025-06-16": "Company Anniversary"})
	svc := timesheet.NewService(store, holidays, nil)

	view, err := svc.MonthView(context.Background(), user, 2025, 6)
	require.NoError(t, err)

	assert.Len(t, view.Month.Days, 30)
	assert.Empty(t, view.Advisories)
	assert.Equal(t, "Company Anniversary", view.Holidays["2025-06-16"])

	// June 2025 has 21 weekdays; the anniversary moves one to holiday class.
	assert.Equal(t, 20, view.Summary.BusinessDayCount)
	assert.Equal(t, 10, view.Summary.HolidayCount)
	assert.Equal(t, 21, view.Summary.TotalAttendedCount)
	assert.Equal(t, 21*480, view.Summary.TotalMinutes)
}

func TestMonthView_AttendanceFailureIsFatal(t *testing.T) {
	store := memory.New()
	store.FailNext("ListAttendanceRecords", true)

	svc := timesheet.NewService(store, holiday.None{}, nil)
	view, err := svc.MonthView(context.Background(), user, 2025, 6)

	assert.Nil(t, view, "no partial data on fatal failure")
	require.Error(t, err)
	assert.True(t, attendance.IsUnavailable(err))
}

func TestMonthView_WorkRuleFailureDegradesToDefaults(t *testing.T) {
	store := memory.New()
	seedWeekdays(store, 2025, 6, "09:00", "18:00")
	store.FailNext("GetWorkRule", true)

	svc := timesheet.NewService(store, holiday.None{}, nil)
	view, err := svc.MonthView(context.Background(), user, 2025, 6)

	require.NoError(t, err, "work-rule failure is advisory, not fatal")
	assert.Equal(t, attendance.DefaultWorkRule(), view.Rule)
	require.Len(t, view.Advisories, 1)
	assert.Equal(t, timesheet.AdvisoryWorkRuleDefault, view.Advisories[0].Kind)
	assert.Equal(t, 21*480, view.Summary.TotalMinutes, "summary still computed")
}

func TestMonthView_MissingWorkRuleIsNotAnAdvisory(t *testing.T) {
	// A user who never saved a rule gets defaults without a warning.
	store := memory.New()
	seedWeekdays(store, 2025, 6, "09:00", "18:00")

	svc := timesheet.NewService(store, holiday.None{}, nil)
	view, err := svc.MonthView(context.Background(), user, 2025, 6)

	require.NoError(t, err)
	assert.Equal(t, attendance.DefaultWorkRule(), view.Rule)
	assert.Empty(t, view.Advisories)
}

func TestMonthView_HolidayFailureDegradesToWeekendOnly(t *testing.T) {
	store := memory.New()
	seedWeekdays(store, 2025, 6, "09:00", "18:00")

	svc := timesheet.NewService(store, failingProvider{}, nil)
	view, err := svc.MonthView(context.Background(), user, 2025, 6)

	require.NoError(t, err, "holiday failure is advisory, not fatal")
	assert.Empty(t, view.Holidays)
	require.Len(t, view.Advisories, 1)
	assert.Equal(t, timesheet.AdvisoryHolidayFallback, view.Advisories[0].Kind)
	assert.Equal(t, 21, view.Summary.BusinessDayCount, "weekend-only classification")
}

func TestMonthView_BothRefinementsDegrade(t *testing.T) {
	store := memory.New()
	seedWeekdays(store, 2025, 6, "09:00", "18:00")
	store.FailNext("GetWorkRule", true)

	svc := timesheet.NewService(store, failingProvider{}, nil)
	view, err := svc.MonthView(context.Background(), user, 2025, 6)

	require.NoError(t, err)
	assert.Len(t, view.Advisories, 2)
}

func TestMonthView_DuplicateRecordsResolveByRecency(t *testing.T) {
	// GIVEN: two rows for the same date, second one created later
	store := memory.New()
	store.SeedAttendance(attendance.RawAttendanceRecord{UserID: user, Date: "2025-06-03", Start: "09:00", End: "18:00"})
	store.SeedAttendance(attendance.RawAttendanceRecord{UserID: user, Date: "2025-06-03", Start: "10:00", End: "19:00"})

	svc := timesheet.NewService(store, holiday.None{}, nil)
	view, err := svc.MonthView(context.Background(), user, 2025, 6)

	require.NoError(t, err)
	assert.Equal(t, "10:00", view.Month.Days[2].Start, "most recently created row wins")
}

// =============================================================================
// PUNCHING
// =============================================================================

func TestPunch_RecordsPunchAndUpsertsDay(t *testing.T) {
	store := memory.New()
	svc := timesheet.NewService(store, holiday.None{}, nil)
	ctx := context.Background()

	rec, err := svc.Punch(ctx, user, attendance.PunchStart, "on site")
	require.NoError(t, err)
	assert.Equal(t, attendance.PunchStart, rec.Type)
	assert.NotEmpty(t, rec.Date)
	assert.NotEmpty(t, rec.Time)

	status, err := svc.Status(ctx, user, rec.Date)
	require.NoError(t, err)
	require.NotNil(t, status.Start)
	assert.Equal(t, rec.Time, status.Start.Time)
	assert.Equal(t, "on site", status.Start.Note)
	assert.Nil(t, status.End)

	// The attendance day was upserted from the punch.
	records, err := store.ListAttendanceRecords(ctx, user, yearOf(rec.Date), monthOf(rec.Date))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.Time, records[0].Start)
}

func TestPunch_RejectsUnknownType(t *testing.T) {
	svc := timesheet.NewService(memory.New(), holiday.None{}, nil)
	_, err := svc.Punch(context.Background(), user, attendance.PunchType("lunch"), "")
	assert.Error(t, err)
}

func TestStatus_LatestPunchOfEachTypeWins(t *testing.T) {
	store := memory.New()
	svc := timesheet.NewService(store, holiday.None{}, nil)
	ctx := context.Background()

	first, err := svc.Punch(ctx, user, attendance.PunchStart, "")
	require.NoError(t, err)
	second, err := svc.Punch(ctx, user, attendance.PunchStart, "corrected")
	require.NoError(t, err)
	require.Equal(t, first.Date, second.Date)

	status, err := svc.Status(ctx, user, first.Date)
	require.NoError(t, err)
	require.NotNil(t, status.Start)
	assert.Equal(t, "corrected", status.Start.Note)
	assert.Len(t, status.Punches, 2)
}

// =============================================================================
// CONFIGURATION
// =============================================================================

func TestWorkRule_DefaultsWhenNeverSaved(t *testing.T) {
	svc := timesheet.NewService(memory.New(), holiday.None{}, nil)

	rule, err := svc.WorkRule(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, attendance.DefaultWorkRule(), rule)
}

func TestSaveWorkRule_SanitizesBeforePersisting(t *testing.T) {
	store := memory.New()
	svc := timesheet.NewService(store, holiday.None{}, nil)
	ctx := context.Background()

	brk := -30
	unit := 15
	saved, err := svc.SaveWorkRule(ctx, user, attendance.WorkRuleDraft{
		BreakMinutes:        &brk,
		RoundingUnitMinutes: &unit,
		RoundStart:          "nearest",
		RoundEnd:            "bogus",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, saved.BreakMinutes, "negative break clamps")
	assert.Equal(t, attendance.RoundNearest, saved.RoundStart)
	assert.Equal(t, attendance.RoundNone, saved.RoundEnd, "invalid mode falls back")

	loaded, err := svc.WorkRule(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSetWorkCategory_VisibleInMonthView(t *testing.T) {
	store := memory.New()
	svc := timesheet.NewService(store, holiday.None{}, nil)
	ctx := context.Background()

	require.NoError(t, svc.SetWorkCategory(ctx, user, "2025-06-05", "remote"))

	view, err := svc.MonthView(ctx, user, 2025, 6)
	require.NoError(t, err)
	assert.Equal(t, "remote", view.Month.Days[4].WorkCategory)
}

// =============================================================================
// HELPERS
// =============================================================================

type failingProvider struct{}

func (failingProvider) HolidaysForMonth(context.Context, int, int) (attendance.HolidayMap, error) {
	return nil, assert.AnError
}

func yearOf(date string) int {
	y, _ := strconv.Atoi(date[:4])
	return y
}

func monthOf(date string) int {
	m, _ := strconv.Atoi(date[5:7])
	return m
}
