package timesheet

import "fmt"

// =============================================================================
// ADVISORY CONDITIONS - Non-fatal degradation surfaced to the caller
// =============================================================================

// AdvisoryKind identifies which refinement of a month view was degraded.
type AdvisoryKind string

const (
	// AdvisoryWorkRuleDefault: the work-rule fetch failed and the view was
	// computed with the sanitized default rule.
	AdvisoryWorkRuleDefault AdvisoryKind = "work_rule_default"

	// AdvisoryHolidayFallback: the holiday fetch failed and classification
	// degraded to weekend-only.
	AdvisoryHolidayFallback AdvisoryKind = "holiday_fallback"
)

// Advisory is a non-fatal condition attached to an otherwise successful
// month view. The UI renders these as dismissible warnings next to the
// best-effort result.
type Advisory struct {
	Kind AdvisoryKind `json:"kind"`
	Err  error        `json:"-"`
}

func (a Advisory) String() string {
	if a.Err == nil {
		return string(a.Kind)
	}
	return fmt.Sprintf("%s: %v", a.Kind, a.Err)
}

// Message is the caller-facing description of the degradation.
func (a Advisory) Message() string {
	switch a.Kind {
	case AdvisoryWorkRuleDefault:
		return "work rule could not be loaded; using defaults"
	case AdvisoryHolidayFallback:
		return "holiday calendar unavailable; weekends only"
	default:
		return string(a.Kind)
	}
}
