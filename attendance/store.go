/*
store.go - List-store collaborator contract

PURPOSE:
  Defines the interface between the time-accounting engine and the external
  list-based store holding the three lists: punches, attendance days, and
  work rules. The engine never performs I/O itself; the orchestration layer
  is handed an implementation of this interface.

ORDERING CONTRACT:
  ListAttendanceRecords and ListPunchesForDate return records newest-first.
  Normalization resolves duplicate dates by keeping the first occurrence, so
  recency tie-breaking lives in this ordering guarantee rather than in a
  timestamp comparison re-derived downstream.

ERROR MODEL:
  Implementations report failures as *StoreError carrying an explicit kind.
  Callers switch on the kind (or just on success/failure - the orchestration
  layer only needs that much) instead of inspecting error shapes.

IMPLEMENTATIONS:
  - store/sqlite: production store over SQLite
  - store/memory: in-memory store for tests and development

SEE ALSO:
  - normalize.go: consumer of the ordering contract
  - timesheet/: fallback policy when fetches fail
*/
package attendance

import (
	"context"
	"errors"
	"fmt"
)

// =============================================================================
// RECORD SHAPES
// =============================================================================

// PunchType distinguishes clock-in from clock-out punches.
type PunchType string

const (
	PunchStart PunchType = "start"
	PunchEnd   PunchType = "end"
)

// PunchRecord is one row of the punch list: a single clock event.
type PunchRecord struct {
	ID     string    `json:"id"`
	UserID string    `json:"userId"`
	Type   PunchType `json:"type"`
	Date   string    `json:"date"` // YYYY-MM-DD
	Time   string    `json:"time"` // HH:MM
	Note   string    `json:"note,omitempty"`
}

// RawAttendanceRecord is one row of the attendance list as stored: possibly
// sparse, possibly duplicated per date. NormalizeMonth turns a collection of
// these into a canonical AttendanceMonth.
type RawAttendanceRecord struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	Date         string `json:"date"`
	Start        string `json:"start,omitempty"`
	End          string `json:"end,omitempty"`
	WorkCategory string `json:"workCategory,omitempty"`
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

// ListStore is the contract of the external list-based store. All methods
// scope to a single user; the user identifier is an opaque string issued by
// the identity provider.
type ListStore interface {
	// ListPunchesForDate returns the user's punches for one date, newest-first.
	ListPunchesForDate(ctx context.Context, userID, date string) ([]PunchRecord, error)

	// CreatePunch appends a punch row. The record's ID is assigned by the store.
	CreatePunch(ctx context.Context, rec PunchRecord) error

	// ListAttendanceRecords returns the user's raw attendance rows whose date
	// falls in the given month, newest-first.
	ListAttendanceRecords(ctx context.Context, userID string, year, month int) ([]RawAttendanceRecord, error)

	// UpsertAttendanceTime sets the start or end time of the user's attendance
	// row for a date, creating the row when absent.
	UpsertAttendanceTime(ctx context.Context, userID, date string, punch PunchType, clock string) error

	// UpsertAttendanceCategory sets the work category of the user's attendance
	// row for a date, creating the row when absent. An empty category clears it.
	UpsertAttendanceCategory(ctx context.Context, userID, date, category string) error

	// GetWorkRule returns the user's stored work rule draft, or nil when the
	// user has never saved one. The draft is unsanitized.
	GetWorkRule(ctx context.Context, userID string) (*WorkRuleDraft, error)

	// UpsertWorkRule saves the user's work rule, replacing any existing row.
	UpsertWorkRule(ctx context.Context, userID string, rule WorkRule) error
}

// =============================================================================
// ERROR MODEL - Tagged kinds, no shape inspection
// =============================================================================

// ErrorKind is the coarse failure classification reported by stores.
type ErrorKind string

const (
	KindUnavailable ErrorKind = "unavailable" // transport or backend failure
	KindNotFound    ErrorKind = "not_found"
	KindConflict    ErrorKind = "conflict"
	KindInternal    ErrorKind = "internal"
)

// ErrStoreUnavailable is the sentinel every KindUnavailable error unwraps to.
var ErrStoreUnavailable = errors.New("list store unavailable")

// StoreError is a request failure from a store implementation. Status and
// Code carry provider detail for logging; callers branch on Kind only.
type StoreError struct {
	Op     string
	Kind   ErrorKind
	Status int // HTTP-like status when known, else 0
	Code   string
	Err    error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	if e.Kind == KindUnavailable {
		return ErrStoreUnavailable
	}
	return e.Err
}

// NewStoreError builds a StoreError wrapping err.
func NewStoreError(op string, kind ErrorKind, err error) *StoreError {
	return &StoreError{Op: op, Kind: kind, Err: err}
}

// IsUnavailable reports whether err is a store-unavailability failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
