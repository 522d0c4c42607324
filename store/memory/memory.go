// Package memory provides an in-memory ListStore implementation for tests
// and development.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/kk0ga/employee-time-attendance/attendance"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Store keeps the three lists in slices, newest entries appended last.
// List queries return newest-first per the ListStore ordering contract.
type Store struct {
	mu         sync.RWMutex
	punches    []attendance.PunchRecord
	days       []attendance.RawAttendanceRecord
	rules      map[string]attendance.WorkRule
	hasRule    map[string]bool
	failSwitch map[string]bool // op name -> forced failure (test hook)
}

func New() *Store {
	return &Store{
		rules:      make(map[string]attendance.WorkRule),
		hasRule:    make(map[string]bool),
		failSwitch: make(map[string]bool),
	}
}

// FailNext forces the named operation to fail until cleared. Recognized
// names match the ListStore method names.
func (s *Store) FailNext(op string, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSwitch[op] = fail
}

func (s *Store) failing(op string) error {
	if s.failSwitch[op] {
		return attendance.NewStoreError(op, attendance.KindUnavailable, nil)
	}
	return nil
}

func (s *Store) ListPunchesForDate(_ context.Context, userID, date string) ([]attendance.PunchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing("ListPunchesForDate"); err != nil {
		return nil, err
	}

	var out []attendance.PunchRecord
	for i := len(s.punches) - 1; i >= 0; i-- {
		p := s.punches[i]
		if p.UserID == userID && p.Date == date {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) CreatePunch(_ context.Context, rec attendance.PunchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failing("CreatePunch"); err != nil {
		return err
	}

	rec.ID = ulid.Make().String()
	s.punches = append(s.punches, rec)
	return nil
}

func (s *Store) ListAttendanceRecords(_ context.Context, userID string, year, month int) ([]attendance.RawAttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing("ListAttendanceRecords"); err != nil {
		return nil, err
	}

	prefix := attendance.MonthKey(year, month) + "-"
	var out []attendance.RawAttendanceRecord
	for i := len(s.days) - 1; i >= 0; i-- {
		d := s.days[i]
		if d.UserID == userID && strings.HasPrefix(d.Date, prefix) {
			out = append(out, d)
		}
	}
	return out, nil
}

// SeedAttendance appends a raw record as-is, without deduplication. Tests
// use it to simulate the duplicated rows a real list can accumulate.
func (s *Store) SeedAttendance(rec attendance.RawAttendanceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = ulid.Make().String()
	s.days = append(s.days, rec)
}

func (s *Store) UpsertAttendanceTime(_ context.Context, userID, date string, punch attendance.PunchType, clock string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failing("UpsertAttendanceTime"); err != nil {
		return err
	}

	rec := s.findDayLocked(userID, date)
	if rec == nil {
		s.days = append(s.days, attendance.RawAttendanceRecord{
			ID:     ulid.Make().String(),
			UserID: userID,
			Date:   date,
		})
		rec = &s.days[len(s.days)-1]
	}

	if punch == attendance.PunchStart {
		rec.Start = clock
	} else {
		rec.End = clock
	}
	return nil
}

func (s *Store) UpsertAttendanceCategory(_ context.Context, userID, date, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failing("UpsertAttendanceCategory"); err != nil {
		return err
	}

	rec := s.findDayLocked(userID, date)
	if rec == nil {
		s.days = append(s.days, attendance.RawAttendanceRecord{
			ID:     ulid.Make().String(),
			UserID: userID,
			Date:   date,
		})
		rec = &s.days[len(s.days)-1]
	}
	rec.WorkCategory = category
	return nil
}

func (s *Store) GetWorkRule(_ context.Context, userID string) (*attendance.WorkRuleDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failing("GetWorkRule"); err != nil {
		return nil, err
	}

	if !s.hasRule[userID] {
		return nil, nil
	}
	draft := s.rules[userID].Draft()
	return &draft, nil
}

func (s *Store) UpsertWorkRule(_ context.Context, userID string, rule attendance.WorkRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failing("UpsertWorkRule"); err != nil {
		return err
	}

	s.rules[userID] = rule
	s.hasRule[userID] = true
	return nil
}

// findDayLocked returns the most recently created row for a user-date, the
// same row an upsert against the real list store would target.
func (s *Store) findDayLocked(userID, date string) *attendance.RawAttendanceRecord {
	for i := len(s.days) - 1; i >= 0; i-- {
		if s.days[i].UserID == userID && s.days[i].Date == date {
			return &s.days[i]
		}
	}
	return nil
}

var _ attendance.ListStore = (*Store)(nil)
