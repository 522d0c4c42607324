package attendance

import (
	"strconv"
	"strings"
)

// =============================================================================
// ROUNDING & WORKED-MINUTES ENGINE
// =============================================================================
// Everything here is pure and total: it runs over arbitrary user-entered
// clock strings, so malformed input degrades to zero rather than erroring.

// ParseClockTime converts an "HH:MM" string to minutes since midnight.
// Extra components ("HH:MM:SS") are tolerated and ignored. Returns ok=false
// on malformed input (fewer than two components, non-numeric components).
func ParseClockTime(s string) (minutes int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	mins, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return hours*60 + mins, true
}

// RoundMinutes applies a rounding policy to a minute value. A unit of zero
// (or RoundNone) leaves the value untouched. A value already on a unit
// boundary is a fixed point for every mode.
func RoundMinutes(value, unit int, mode RoundingMode) int {
	if unit <= 0 || mode == RoundNone {
		return value
	}
	switch mode {
	case RoundFloor:
		return floorDiv(value, unit) * unit
	case RoundCeil:
		return ceilDiv(value, unit) * unit
	case RoundNearest:
		// Ties round up, matching conventional half-up rounding.
		return floorDiv(value*2+unit, unit*2) * unit
	default:
		return value
	}
}

// WorkedMinutes computes the worked duration of one day:
//
//  1. Absent or unparsable start/end -> 0.
//  2. Round start and end with the rule's modes, but only when the rounding
//     unit is positive: a zero unit disables the configured modes entirely.
//     This override is deliberate and must be preserved as-is.
//  3. Span is signed (end may precede start; overnight shifts are not
//     wrapped), minus the break, clamped to zero.
func WorkedMinutes(start, end string, rule WorkRule) int {
	if start == "" || end == "" {
		return 0
	}

	startMin, ok := ParseClockTime(start)
	if !ok {
		return 0
	}
	endMin, ok := ParseClockTime(end)
	if !ok {
		return 0
	}

	unit := rule.RoundingUnitMinutes
	roundStart, roundEnd := rule.RoundStart, rule.RoundEnd
	if unit <= 0 {
		roundStart, roundEnd = RoundNone, RoundNone
	}

	span := RoundMinutes(endMin, unit, roundEnd) - RoundMinutes(startMin, unit, roundStart)
	worked := span - rule.BreakMinutes
	if worked < 0 {
		return 0
	}
	return worked
}

// floorDiv divides rounding toward negative infinity. Go's integer division
// truncates toward zero, which differs for negative operands.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
