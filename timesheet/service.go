/*
Package timesheet orchestrates the time-accounting engine over its
collaborators.

PURPOSE:
  Coordinates the three independent upstream fetches (attendance records,
  work rule, holiday calendar), feeds them through normalization, the
  worked-minutes engine, and aggregation, and implements the fallback
  policy when an upstream collaborator fails:

    - attendance unavailable  -> fatal, no view is produced
    - work rule unavailable   -> sanitized defaults + advisory
    - holidays unavailable    -> weekend-only classification + advisory

  The three fetches are dispatched concurrently; only attendance gates the
  result. Work-rule and holiday failures refine independently and never
  block the base computation.

DEPENDENCY INJECTION:
  The service takes its store, holiday provider, and logger explicitly.
  There are no package-level singletons; construct one service per wiring.

WRITE MODEL:
  Mutations (punching, setting a category, saving a rule) are fire-and-
  forget relative to the read model: the service keeps no cache, and after
  a successful write the caller refetches the affected month.
*/
package timesheet

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kk0ga/employee-time-attendance/attendance"
	"github.com/kk0ga/employee-time-attendance/holiday"
)

// Service is the orchestration layer. Safe for concurrent use; it holds no
// mutable state of its own.
type Service struct {
	store    attendance.ListStore
	holidays holiday.Provider
	logger   *zap.Logger
}

// NewService wires a service. A nil holiday provider degrades to weekend-only
// classification; a nil logger is replaced with a no-op.
func NewService(store attendance.ListStore, holidays holiday.Provider, logger *zap.Logger) *Service {
	if holidays == nil {
		holidays = holiday.None{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, holidays: holidays, logger: logger}
}

// MonthView is the assembled read model for one user-month: the canonical
// day sequence, the inputs that refined it, the derived summary, and any
// advisory degradations.
type MonthView struct {
	Month      attendance.AttendanceMonth `json:"month"`
	Holidays   attendance.HolidayMap      `json:"holidays"`
	Rule       attendance.WorkRule        `json:"rule"`
	Summary    attendance.MonthSummary    `json:"summary"`
	Advisories []Advisory                 `json:"advisories,omitempty"`
}

// MonthView fetches and assembles one month. The three upstream fetches run
// concurrently. An attendance failure is fatal; the other two degrade to
// advisories per the fallback policy.
func (s *Service) MonthView(ctx context.Context, userID string, year, month int) (*MonthView, error) {
	var (
		wg sync.WaitGroup

		records    []attendance.RawAttendanceRecord
		recordsErr error

		draft    *attendance.WorkRuleDraft
		draftErr error

		holidayMap attendance.HolidayMap
		holidayErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		records, recordsErr = s.store.ListAttendanceRecords(ctx, userID, year, month)
	}()
	go func() {
		defer wg.Done()
		draft, draftErr = s.store.GetWorkRule(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		holidayMap, holidayErr = s.holidays.HolidaysForMonth(ctx, year, month)
	}()
	wg.Wait()

	if recordsErr != nil {
		return nil, fmt.Errorf("fetch attendance %04d-%02d: %w", year, month, recordsErr)
	}

	view := &MonthView{
		Month: attendance.NormalizeMonth(year, month, userID, records),
	}

	if draftErr != nil {
		s.logger.Warn("work rule fetch failed, using defaults",
			zap.String("user", userID), zap.Error(draftErr))
		view.Rule = attendance.DefaultWorkRule()
		view.Advisories = append(view.Advisories, Advisory{Kind: AdvisoryWorkRuleDefault, Err: draftErr})
	} else if draft == nil {
		// Never saved a rule: defaults apply, nothing to warn about.
		view.Rule = attendance.DefaultWorkRule()
	} else {
		view.Rule = attendance.Sanitize(*draft)
	}

	if holidayErr != nil {
		s.logger.Warn("holiday fetch failed, weekend-only classification",
			zap.Int("year", year), zap.Int("month", month), zap.Error(holidayErr))
		view.Holidays = attendance.HolidayMap{}
		view.Advisories = append(view.Advisories, Advisory{Kind: AdvisoryHolidayFallback, Err: holidayErr})
	} else {
		view.Holidays = holidayMap
	}

	view.Summary = attendance.Summarize(view.Month, view.Holidays, view.Rule)
	return view, nil
}

// =============================================================================
// PUNCHING
// =============================================================================

// PunchStatus reports the user's punch state for one date.
type PunchStatus struct {
	Date    string                   `json:"date"`
	Start   *attendance.PunchRecord  `json:"start,omitempty"`
	End     *attendance.PunchRecord  `json:"end,omitempty"`
	Punches []attendance.PunchRecord `json:"punches"`
}

// Punch records a clock event at the current local time: it appends a row to
// the punch list and upserts the matching attendance day. The attendance
// upsert rides on the punch; if it fails the punch row still exists and the
// day can be corrected from the month screen.
func (s *Service) Punch(ctx context.Context, userID string, punch attendance.PunchType, note string) (attendance.PunchRecord, error) {
	if punch != attendance.PunchStart && punch != attendance.PunchEnd {
		return attendance.PunchRecord{}, fmt.Errorf("unknown punch type %q", punch)
	}

	date, clock := attendance.NowClock()
	rec := attendance.PunchRecord{
		UserID: userID,
		Type:   punch,
		Date:   date,
		Time:   clock,
		Note:   note,
	}

	if err := s.store.CreatePunch(ctx, rec); err != nil {
		return attendance.PunchRecord{}, fmt.Errorf("create punch: %w", err)
	}

	if err := s.store.UpsertAttendanceTime(ctx, userID, date, punch, clock); err != nil {
		return attendance.PunchRecord{}, fmt.Errorf("upsert attendance from punch: %w", err)
	}

	s.logger.Info("punch recorded",
		zap.String("user", userID), zap.String("type", string(punch)),
		zap.String("date", date), zap.String("time", clock))
	return rec, nil
}

// Status returns the punch state for a date. The first start and first end
// over the newest-first punch list are the most recent of each type.
func (s *Service) Status(ctx context.Context, userID, date string) (*PunchStatus, error) {
	punches, err := s.store.ListPunchesForDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("list punches for %s: %w", date, err)
	}

	status := &PunchStatus{Date: date, Punches: punches}
	for i := range punches {
		p := punches[i]
		switch {
		case p.Type == attendance.PunchStart && status.Start == nil:
			status.Start = &p
		case p.Type == attendance.PunchEnd && status.End == nil:
			status.End = &p
		}
	}
	return status, nil
}

// =============================================================================
// CORRECTIONS & CONFIGURATION
// =============================================================================

// SetWorkCategory sets or clears the work category label of one day.
func (s *Service) SetWorkCategory(ctx context.Context, userID, date, category string) error {
	if err := s.store.UpsertAttendanceCategory(ctx, userID, date, category); err != nil {
		return fmt.Errorf("set work category for %s: %w", date, err)
	}
	return nil
}

// WorkRule returns the user's sanitized work rule; a user who never saved
// one gets the defaults.
func (s *Service) WorkRule(ctx context.Context, userID string) (attendance.WorkRule, error) {
	draft, err := s.store.GetWorkRule(ctx, userID)
	if err != nil {
		return attendance.WorkRule{}, fmt.Errorf("fetch work rule: %w", err)
	}
	if draft == nil {
		return attendance.DefaultWorkRule(), nil
	}
	return attendance.Sanitize(*draft), nil
}

// SaveWorkRule sanitizes and persists a rule draft, returning what was
// actually stored.
func (s *Service) SaveWorkRule(ctx context.Context, userID string, draft attendance.WorkRuleDraft) (attendance.WorkRule, error) {
	rule := attendance.Sanitize(draft)
	if err := s.store.UpsertWorkRule(ctx, userID, rule); err != nil {
		return attendance.WorkRule{}, fmt.Errorf("save work rule: %w", err)
	}
	return rule, nil
}
