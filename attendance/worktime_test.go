package attendance_test

import (
	"testing"

	"github.com/kk0ga/employee-time-attendance/attendance"
)

// =============================================================================
// CLOCK PARSING
// =============================================================================

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"09:00", 540, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{"9:5", 545, true},
		{"18:30:15", 1110, true}, // seconds tolerated and ignored
		{"", 0, false},
		{"0900", 0, false},
		{"ab:cd", 0, false},
		{"12:xx", 0, false},
		{":30", 0, false},
		{"12:", 0, false},
	}

	for _, tc := range cases {
		got, ok := attendance.ParseClockTime(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseClockTime(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

// =============================================================================
// ROUNDING
// =============================================================================

func TestRoundMinutes(t *testing.T) {
	cases := []struct {
		name  string
		value int
		unit  int
		mode  attendance.RoundingMode
		want  int
	}{
		{"floor mid", 547, 15, attendance.RoundFloor, 540},
		{"ceil mid", 547, 15, attendance.RoundCeil, 555},
		{"nearest down", 547, 15, attendance.RoundNearest, 540},
		{"nearest up", 553, 15, attendance.RoundNearest, 555},
		{"nearest tie rounds up", 545, 10, attendance.RoundNearest, 550},
		{"multiple is fixed point floor", 540, 15, attendance.RoundFloor, 540},
		{"multiple is fixed point ceil", 540, 15, attendance.RoundCeil, 540},
		{"multiple is fixed point nearest", 540, 15, attendance.RoundNearest, 540},
		{"none leaves value", 547, 15, attendance.RoundNone, 547},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := attendance.RoundMinutes(tc.value, tc.unit, tc.mode); got != tc.want {
				t.Errorf("RoundMinutes(%d, %d, %s) = %d, want %d", tc.value, tc.unit, tc.mode, got, tc.want)
			}
		})
	}
}

func TestRoundMinutes_ZeroUnitDisablesEveryMode(t *testing.T) {
	// A non-positive unit disables rounding regardless of mode.
	modes := []attendance.RoundingMode{
		attendance.RoundNone, attendance.RoundFloor, attendance.RoundCeil, attendance.RoundNearest,
	}
	for _, mode := range modes {
		for _, v := range []int{0, 1, 59, 540, 1439} {
			if got := attendance.RoundMinutes(v, 0, mode); got != v {
				t.Errorf("RoundMinutes(%d, 0, %s) = %d, want %d", v, mode, got, v)
			}
			if got := attendance.RoundMinutes(v, -5, mode); got != v {
				t.Errorf("RoundMinutes(%d, -5, %s) = %d, want %d", v, mode, got, v)
			}
		}
	}
}

// =============================================================================
// WORKED MINUTES
// =============================================================================

func ruleWith(unit int, start, end attendance.RoundingMode, brk int) attendance.WorkRule {
	rule := attendance.DefaultWorkRule()
	rule.RoundingUnitMinutes = unit
	rule.RoundStart = start
	rule.RoundEnd = end
	rule.BreakMinutes = brk
	return rule
}

func TestWorkedMinutes_PlainDay(t *testing.T) {
	// GIVEN: 09:00-18:00 with a 60 minute break and no rounding
	// THEN: 8 hours worked
	got := attendance.WorkedMinutes("09:00", "18:00", attendance.DefaultWorkRule())
	if got != 480 {
		t.Fatalf("WorkedMinutes = %d, want 480", got)
	}
}

func TestWorkedMinutes_NearestRounding(t *testing.T) {
	// 09:07 -> 09:00 and 17:53 -> 18:00 on a 15 minute unit, minus 60 break.
	rule := ruleWith(15, attendance.RoundNearest, attendance.RoundNearest, 60)
	if got := attendance.WorkedMinutes("09:07", "17:53", rule); got != 480 {
		t.Fatalf("WorkedMinutes = %d, want 480", got)
	}
}

func TestWorkedMinutes_FloorAndCeil(t *testing.T) {
	// Floor the start up-shifts worked time; conservative setups ceil the
	// start and floor the end instead.
	rule := ruleWith(15, attendance.RoundCeil, attendance.RoundFloor, 60)
	// 09:07 -> 09:15, 17:53 -> 17:45: span 510, minus 60 = 450
	if got := attendance.WorkedMinutes("09:07", "17:53", rule); got != 450 {
		t.Fatalf("WorkedMinutes = %d, want 450", got)
	}
}

func TestWorkedMinutes_MissingPunches(t *testing.T) {
	rule := attendance.DefaultWorkRule()

	if got := attendance.WorkedMinutes("", "18:00", rule); got != 0 {
		t.Errorf("missing start: got %d, want 0", got)
	}
	if got := attendance.WorkedMinutes("09:00", "", rule); got != 0 {
		t.Errorf("missing end: got %d, want 0", got)
	}
	if got := attendance.WorkedMinutes("", "", rule); got != 0 {
		t.Errorf("missing both: got %d, want 0", got)
	}
}

func TestWorkedMinutes_MalformedPunches(t *testing.T) {
	rule := attendance.DefaultWorkRule()

	if got := attendance.WorkedMinutes("nine", "18:00", rule); got != 0 {
		t.Errorf("malformed start: got %d, want 0", got)
	}
	if got := attendance.WorkedMinutes("09:00", "18;00", rule); got != 0 {
		t.Errorf("malformed end: got %d, want 0", got)
	}
}

func TestWorkedMinutes_NegativeSpanClampsToZero(t *testing.T) {
	// End before start (overnight shifts are not wrapped).
	rule := attendance.DefaultWorkRule()
	if got := attendance.WorkedMinutes("18:00", "09:00", rule); got != 0 {
		t.Fatalf("WorkedMinutes = %d, want 0", got)
	}
}

func TestWorkedMinutes_BreakLongerThanSpan(t *testing.T) {
	rule := ruleWith(0, attendance.RoundNone, attendance.RoundNone, 120)
	if got := attendance.WorkedMinutes("09:00", "10:00", rule); got != 0 {
		t.Fatalf("WorkedMinutes = %d, want 0", got)
	}
}

func TestWorkedMinutes_ZeroUnitOverridesConfiguredModes(t *testing.T) {
	// A zero rounding unit silently disables the configured modes. This is a
	// deliberate behavior of the rule model, not a defect: the unit is the
	// single on/off switch for rounding.
	rule := ruleWith(0, attendance.RoundNearest, attendance.RoundNearest, 60)
	// Without the override, 09:07/17:53 would round; with it the raw span
	// 526 - 60 = 466 is kept.
	if got := attendance.WorkedMinutes("09:07", "17:53", rule); got != 466 {
		t.Fatalf("WorkedMinutes = %d, want 466 (zero unit must disable rounding)", got)
	}
}
