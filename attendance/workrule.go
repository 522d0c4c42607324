package attendance

// =============================================================================
// WORK RULE - Per-user rounding and break configuration
// =============================================================================

// RoundingMode is the policy applied to a clock-time minute value before the
// worked duration is computed.
type RoundingMode string

const (
	RoundNone    RoundingMode = "none"
	RoundFloor   RoundingMode = "floor"
	RoundCeil    RoundingMode = "ceil"
	RoundNearest RoundingMode = "nearest"
)

// ValidRoundingMode reports whether s is one of the four known modes.
func ValidRoundingMode(s string) bool {
	switch RoundingMode(s) {
	case RoundNone, RoundFloor, RoundCeil, RoundNearest:
		return true
	}
	return false
}

// WorkRule is a user's work configuration. The engine only ever sees
// sanitized instances: all numeric fields are non-negative and both modes
// are valid. Use Sanitize to build one from untrusted input.
type WorkRule struct {
	ScheduledDailyMinutes int          `json:"scheduledDailyMinutes"`
	BreakMinutes          int          `json:"breakMinutes"`
	RoundingUnitMinutes   int          `json:"roundingUnitMinutes"` // 0 = no rounding
	RoundStart            RoundingMode `json:"roundStart"`
	RoundEnd              RoundingMode `json:"roundEnd"`
}

// DefaultWorkRule is the documented fallback: 8h scheduled, 60min break,
// no rounding.
func DefaultWorkRule() WorkRule {
	return WorkRule{
		ScheduledDailyMinutes: 8 * 60,
		BreakMinutes:          60,
		RoundingUnitMinutes:   0,
		RoundStart:            RoundNone,
		RoundEnd:              RoundNone,
	}
}

// WorkRuleDraft is the partially-present shape fetched from the list store
// or posted by a form. A nil field means "not provided".
type WorkRuleDraft struct {
	ScheduledDailyMinutes *int   `json:"scheduledDailyMinutes,omitempty"`
	BreakMinutes          *int   `json:"breakMinutes,omitempty"`
	RoundingUnitMinutes   *int   `json:"roundingUnitMinutes,omitempty"`
	RoundStart            string `json:"roundStart,omitempty"`
	RoundEnd              string `json:"roundEnd,omitempty"`
}

// Draft converts a sanitized rule back into the optional-field shape, e.g.
// for persisting or re-sanitizing.
func (r WorkRule) Draft() WorkRuleDraft {
	scheduled, brk, unit := r.ScheduledDailyMinutes, r.BreakMinutes, r.RoundingUnitMinutes
	return WorkRuleDraft{
		ScheduledDailyMinutes: &scheduled,
		BreakMinutes:          &brk,
		RoundingUnitMinutes:   &unit,
		RoundStart:            string(r.RoundStart),
		RoundEnd:              string(r.RoundEnd),
	}
}

// Sanitize coerces a draft into a valid WorkRule. Missing or invalid fields
// fall back to the default; negative minute values clamp to zero. Sanitize
// never fails and is idempotent: Sanitize(r.Draft()) == r for any sanitized r.
func Sanitize(d WorkRuleDraft) WorkRule {
	rule := DefaultWorkRule()

	if d.ScheduledDailyMinutes != nil {
		rule.ScheduledDailyMinutes = clampNonNegative(*d.ScheduledDailyMinutes)
	}
	if d.BreakMinutes != nil {
		rule.BreakMinutes = clampNonNegative(*d.BreakMinutes)
	}
	if d.RoundingUnitMinutes != nil {
		rule.RoundingUnitMinutes = clampNonNegative(*d.RoundingUnitMinutes)
	}
	if ValidRoundingMode(d.RoundStart) {
		rule.RoundStart = RoundingMode(d.RoundStart)
	}
	if ValidRoundingMode(d.RoundEnd) {
		rule.RoundEnd = RoundingMode(d.RoundEnd)
	}
	return rule
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
