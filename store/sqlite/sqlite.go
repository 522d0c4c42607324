/*
Package sqlite provides a SQLite-backed implementation of the list-store
contract.

PURPOSE:
  Implements attendance.ListStore over three tables mirroring the three
  lists of the attendance system: punches, attendance days, and work rules.

ORDERING:
  List queries return rows newest-first (created_at, then id). Item ids are
  ULIDs, so the id tiebreak is itself creation-ordered. Normalization's
  duplicate handling relies on this ordering contract.

DUPLICATES:
  The attendance table deliberately has NO uniqueness constraint on
  (user_id, date): the upstream list can accumulate duplicate rows for a
  date, and the engine's normalization resolves them by recency. Upserts
  target the most recent row for a user-date and insert when none exists.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't block
  behind the single writer.

USAGE:
  store, err := sqlite.New("./data/attendance.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - attendance/store.go: interface and error-kind definitions
  - store/memory: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/kk0ga/employee-time-attendance/attendance"
)

// Store implements attendance.ListStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Punch list: one row per clock event, append-only
	CREATE TABLE IF NOT EXISTS punches (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		punch_type TEXT NOT NULL,
		punch_date TEXT NOT NULL,
		punch_time TEXT NOT NULL,
		note TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_punches_user_date
		ON punches(user_id, punch_date);

	-- Attendance list: per-day rows; duplicates per (user_id, date) are
	-- allowed and resolved by recency downstream
	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL DEFAULT '',
		end_time TEXT NOT NULL DEFAULT '',
		work_category TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_attendance_user_date
		ON attendance(user_id, date);

	-- Work rule list: latest row per user wins
	CREATE TABLE IF NOT EXISTS work_rules (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		scheduled_daily_minutes INTEGER NOT NULL,
		break_minutes INTEGER NOT NULL,
		rounding_unit_minutes INTEGER NOT NULL,
		round_start TEXT NOT NULL,
		round_end TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_work_rules_user
		ON work_rules(user_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func newItemID() string { return ulid.Make().String() }

func nowStamp() string { return time.Now().UTC().Format(time.RFC3339Nano) }

// storeErr wraps a database failure as an unavailable-kind StoreError so the
// orchestration layer's fallback policy can branch on the kind.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return attendance.NewStoreError(op, attendance.KindUnavailable, err)
}

// =============================================================================
// PUNCHES
// =============================================================================

func (s *Store) ListPunchesForDate(ctx context.Context, userID, date string) ([]attendance.PunchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, punch_type, punch_date, punch_time, COALESCE(note, '')
		FROM punches
		WHERE user_id = ? AND punch_date = ?
		ORDER BY created_at DESC, id DESC`,
		userID, date)
	if err != nil {
		return nil, storeErr("ListPunchesForDate", err)
	}
	defer rows.Close()

	var out []attendance.PunchRecord
	for rows.Next() {
		var p attendance.PunchRecord
		var punchType string
		if err := rows.Scan(&p.ID, &p.UserID, &punchType, &p.Date, &p.Time, &p.Note); err != nil {
			return nil, storeErr("ListPunchesForDate", err)
		}
		p.Type = attendance.PunchType(punchType)
		out = append(out, p)
	}
	return out, storeErr("ListPunchesForDate", rows.Err())
}

func (s *Store) CreatePunch(ctx context.Context, rec attendance.PunchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO punches (id, user_id, punch_type, punch_date, punch_time, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		newItemID(), rec.UserID, string(rec.Type), rec.Date, rec.Time, rec.Note, nowStamp())
	return storeErr("CreatePunch", err)
}

// =============================================================================
// ATTENDANCE DAYS
// =============================================================================

func (s *Store) ListAttendanceRecords(ctx context.Context, userID string, year, month int) ([]attendance.RawAttendanceRecord, error) {
	prefix := attendance.MonthKey(year, month) + "-%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, date, start_time, end_time, work_category
		FROM attendance
		WHERE user_id = ? AND date LIKE ?
		ORDER BY created_at DESC, id DESC`,
		userID, prefix)
	if err != nil {
		return nil, storeErr("ListAttendanceRecords", err)
	}
	defer rows.Close()

	var out []attendance.RawAttendanceRecord
	for rows.Next() {
		var r attendance.RawAttendanceRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.Date, &r.Start, &r.End, &r.WorkCategory); err != nil {
			return nil, storeErr("ListAttendanceRecords", err)
		}
		out = append(out, r)
	}
	return out, storeErr("ListAttendanceRecords", rows.Err())
}

func (s *Store) UpsertAttendanceTime(ctx context.Context, userID, date string, punch attendance.PunchType, clock string) error {
	column := "start_time"
	if punch == attendance.PunchEnd {
		column = "end_time"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.latestDayID(ctx, userID, date)
	if err != nil {
		return storeErr("UpsertAttendanceTime", err)
	}

	if id == "" {
		_, err = s.db.ExecContext(ctx, fmt.Sprintf(`
			INSERT INTO attendance (id, user_id, date, %s, created_at)
			VALUES (?, ?, ?, ?, ?)`, column),
			newItemID(), userID, date, clock, nowStamp())
	} else {
		_, err = s.db.ExecContext(ctx,
			fmt.Sprintf(`UPDATE attendance SET %s = ? WHERE id = ?`, column),
			clock, id)
	}
	return storeErr("UpsertAttendanceTime", err)
}

func (s *Store) UpsertAttendanceCategory(ctx context.Context, userID, date, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.latestDayID(ctx, userID, date)
	if err != nil {
		return storeErr("UpsertAttendanceCategory", err)
	}

	if id == "" {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO attendance (id, user_id, date, work_category, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			newItemID(), userID, date, category, nowStamp())
	} else {
		_, err = s.db.ExecContext(ctx,
			`UPDATE attendance SET work_category = ? WHERE id = ?`,
			category, id)
	}
	return storeErr("UpsertAttendanceCategory", err)
}

// latestDayID returns the id of the most recent attendance row for a
// user-date, or "" when none exists. Upserts always target that row so that
// edits land on the record normalization will pick.
func (s *Store) latestDayID(ctx context.Context, userID, date string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM attendance
		WHERE user_id = ? AND date = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		userID, date).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return id, err
}

// =============================================================================
// WORK RULES
// =============================================================================

func (s *Store) GetWorkRule(ctx context.Context, userID string) (*attendance.WorkRuleDraft, error) {
	var (
		scheduled, brk, unit int
		roundStart, roundEnd string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT scheduled_daily_minutes, break_minutes, rounding_unit_minutes, round_start, round_end
		FROM work_rules
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		userID).Scan(&scheduled, &brk, &unit, &roundStart, &roundEnd)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("GetWorkRule", err)
	}

	return &attendance.WorkRuleDraft{
		ScheduledDailyMinutes: &scheduled,
		BreakMinutes:          &brk,
		RoundingUnitMinutes:   &unit,
		RoundStart:            roundStart,
		RoundEnd:              roundEnd,
	}, nil
}

func (s *Store) UpsertWorkRule(ctx context.Context, userID string, rule attendance.WorkRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Latest row wins on read; replace rather than accumulate.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("UpsertWorkRule", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM work_rules WHERE user_id = ?`, userID); err != nil {
		return storeErr("UpsertWorkRule", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO work_rules
			(id, user_id, scheduled_daily_minutes, break_minutes, rounding_unit_minutes, round_start, round_end, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		newItemID(), userID,
		rule.ScheduledDailyMinutes, rule.BreakMinutes, rule.RoundingUnitMinutes,
		string(rule.RoundStart), string(rule.RoundEnd), nowStamp()); err != nil {
		return storeErr("UpsertWorkRule", err)
	}

	return storeErr("UpsertWorkRule", tx.Commit())
}

var _ attendance.ListStore = (*Store)(nil)
