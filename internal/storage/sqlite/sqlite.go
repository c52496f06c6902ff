// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk, which is all a
// departmental registration service needs: no separate server process,
// nothing to install beyond the driver.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/course-registration/internal/config"
	"github.com/aanand-mishra/course-registration/internal/storage"
	"github.com/aanand-mishra/course-registration/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
type SQLite struct {
	Db *sql.DB

	// now is swapped in tests to get stable timestamps.
	now func() time.Time
}

var _ storage.Storage = (*SQLite)(nil)

// schema is idempotent; it runs on every startup.
//
//	courses.position       keeps catalogue order; ListCourses sorts by it
//	registrations unique   one registration per student per course and session
const schema = `
CREATE TABLE IF NOT EXISTS courses (
	position INTEGER PRIMARY KEY AUTOINCREMENT,
	code     TEXT    NOT NULL,
	name     TEXT    NOT NULL,
	session  TEXT    NOT NULL,
	capacity INTEGER NOT NULL,
	UNIQUE (code, session)
);

CREATE TABLE IF NOT EXISTS registrations (
	id          TEXT PRIMARY KEY,
	course_code TEXT NOT NULL,
	session     TEXT NOT NULL,
	first_name  TEXT NOT NULL,
	last_name   TEXT NOT NULL,
	email       TEXT NOT NULL,
	student_id  TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	UNIQUE (course_code, session, student_id)
);
`

// New opens the SQLite database at cfg.StoragePath, creates the tables if
// they do not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite allows one writer at a time. A single connection turns
	// concurrent writers into a queue instead of SQLITE_BUSY errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db, now: time.Now}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// Seed inserts the given catalogue when the courses table is empty.
// Entries are stored in slice order, which becomes the listing order.
// Returns the number of courses inserted (0 when already seeded).
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Seed(ctx context.Context, catalog []CatalogEntry) (int, error) {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("Seed: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM courses").Scan(&count); err != nil {
		return 0, fmt.Errorf("Seed: count: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO courses (code, name, session, capacity) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("Seed: prepare: %w", err)
	}
	defer stmt.Close()

	for _, entry := range catalog {
		if _, err := stmt.ExecContext(ctx,
			entry.Code, entry.Name, string(entry.Session), entry.Capacity,
		); err != nil {
			return 0, fmt.Errorf("Seed: insert %s/%s: %w", entry.Session, entry.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("Seed: commit: %w", err)
	}

	return len(catalog), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// ListCourses returns the session's courses ordered by catalogue position.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) ListCourses(ctx context.Context, session types.Session) ([]types.Course, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT code, name, session FROM courses WHERE session = ? ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCourses: prepare: %v", storage.ErrCoursesUnavailable, err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, string(session))
	if err != nil {
		return nil, fmt.Errorf("%w: ListCourses: query: %v", storage.ErrCoursesUnavailable, err)
	}
	defer rows.Close()

	courses := make([]types.Course, 0)
	for rows.Next() {
		var (
			course  types.Course
			sessStr string
		)
		if err := rows.Scan(&course.Code, &course.Name, &sessStr); err != nil {
			return nil, fmt.Errorf("%w: ListCourses: scan row: %v", storage.ErrCoursesUnavailable, err)
		}
		course.Session = types.Session(sessStr)
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCourses: rows iteration: %v", storage.ErrCoursesUnavailable, err)
	}

	return courses, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// RegisterStudent records a registration inside one transaction:
//
//  1. the course must exist in the form's session    → ErrCourseNotFound
//  2. the student must not already be registered     → ErrAlreadyRegistered
//  3. the course must have a free seat               → ErrCourseFull
//  4. insert the registration with a fresh uuid
//
// Rejections return the storage sentinel errors unwrapped so their
// message reaches the user as is.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) RegisterStudent(ctx context.Context, form types.RegistrationForm) (types.Registration, error) {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return types.Registration{}, fmt.Errorf("RegisterStudent: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	code, session := form.Course.Code, string(form.Course.Session)

	var capacity int
	err = tx.QueryRowContext(ctx,
		"SELECT capacity FROM courses WHERE code = ? AND session = ? LIMIT 1",
		code, session,
	).Scan(&capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Registration{}, storage.ErrCourseNotFound
	}
	if err != nil {
		return types.Registration{}, fmt.Errorf("RegisterStudent: course lookup: %w", err)
	}

	var already int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM registrations WHERE course_code = ? AND session = ? AND student_id = ?",
		code, session, form.StudentID,
	).Scan(&already); err != nil {
		return types.Registration{}, fmt.Errorf("RegisterStudent: duplicate check: %w", err)
	}
	if already > 0 {
		return types.Registration{}, storage.ErrAlreadyRegistered
	}

	var taken int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM registrations WHERE course_code = ? AND session = ?",
		code, session,
	).Scan(&taken); err != nil {
		return types.Registration{}, fmt.Errorf("RegisterStudent: seat count: %w", err)
	}
	if taken >= capacity {
		return types.Registration{}, storage.ErrCourseFull
	}

	reg := types.Registration{
		ID:         uuid.NewString(),
		CourseCode: code,
		CreatedAt:  s.now().UTC(),
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO registrations
			(id, course_code, session, first_name, last_name, email, student_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		reg.ID, code, session,
		form.FirstName, form.LastName, form.Email, form.StudentID,
		reg.CreatedAt,
	); err != nil {
		return types.Registration{}, fmt.Errorf("RegisterStudent: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return types.Registration{}, fmt.Errorf("RegisterStudent: commit: %w", err)
	}

	return reg, nil
}
