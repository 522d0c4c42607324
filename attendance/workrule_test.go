package attendance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kk0ga/employee-time-attendance/attendance"
)

func intp(v int) *int { return &v }

func TestSanitize_EmptyDraftYieldsDefaults(t *testing.T) {
	// GIVEN: a draft with nothing provided
	// WHEN: sanitizing
	// THEN: every field is the documented default
	rule := attendance.Sanitize(attendance.WorkRuleDraft{})

	assert.Equal(t, attendance.DefaultWorkRule(), rule)
	assert.Equal(t, 480, rule.ScheduledDailyMinutes)
	assert.Equal(t, 60, rule.BreakMinutes)
	assert.Equal(t, 0, rule.RoundingUnitMinutes)
	assert.Equal(t, attendance.RoundNone, rule.RoundStart)
	assert.Equal(t, attendance.RoundNone, rule.RoundEnd)
}

func TestSanitize_ClampsNegatives(t *testing.T) {
	rule := attendance.Sanitize(attendance.WorkRuleDraft{
		ScheduledDailyMinutes: intp(-10),
		BreakMinutes:          intp(-1),
		RoundingUnitMinutes:   intp(-15),
	})

	assert.Equal(t, 0, rule.ScheduledDailyMinutes)
	assert.Equal(t, 0, rule.BreakMinutes)
	assert.Equal(t, 0, rule.RoundingUnitMinutes)
}

func TestSanitize_InvalidModesFallBack(t *testing.T) {
	rule := attendance.Sanitize(attendance.WorkRuleDraft{
		RoundStart: "up",
		RoundEnd:   "NEAREST", // case-sensitive, invalid
	})

	assert.Equal(t, attendance.RoundNone, rule.RoundStart)
	assert.Equal(t, attendance.RoundNone, rule.RoundEnd)
}

func TestSanitize_KeepsValidInput(t *testing.T) {
	rule := attendance.Sanitize(attendance.WorkRuleDraft{
		ScheduledDailyMinutes: intp(450),
		BreakMinutes:          intp(45),
		RoundingUnitMinutes:   intp(15),
		RoundStart:            "nearest",
		RoundEnd:              "floor",
	})

	assert.Equal(t, 450, rule.ScheduledDailyMinutes)
	assert.Equal(t, 45, rule.BreakMinutes)
	assert.Equal(t, 15, rule.RoundingUnitMinutes)
	assert.Equal(t, attendance.RoundNearest, rule.RoundStart)
	assert.Equal(t, attendance.RoundFloor, rule.RoundEnd)
}

func TestSanitize_Idempotent(t *testing.T) {
	drafts := []attendance.WorkRuleDraft{
		{},
		{ScheduledDailyMinutes: intp(-7), RoundStart: "bogus"},
		{BreakMinutes: intp(30), RoundingUnitMinutes: intp(10), RoundEnd: "ceil"},
		{ScheduledDailyMinutes: intp(0), BreakMinutes: intp(0)},
	}

	for _, d := range drafts {
		once := attendance.Sanitize(d)
		twice := attendance.Sanitize(once.Draft())
		assert.Equal(t, once, twice, "sanitize must be idempotent for %+v", d)
	}
}
