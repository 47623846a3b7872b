package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/attendance-backend/internal/model"
)

// ErrDuplicateRecord signals that a record for (session, student) already
// exists. The unique constraint is the concurrency guard: two racing
// check-ins both pass the existence check, but only one insert wins.
var ErrDuplicateRecord = errors.New("attendance record already exists for this session and student")

// AttendanceRepository handles attendance records and per-day shift state.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

const recordColumns = `id, attendance_session_id, student_id, section_id, status, checked_in_at, match_confidence, notes, created_at`

func scanRecord(row interface{ Scan(...any) error }) (*model.AttendanceRecord, error) {
	rec := &model.AttendanceRecord{}
	err := row.Scan(&rec.ID, &rec.AttendanceSessionID, &rec.StudentID, &rec.SectionID,
		&rec.Status, &rec.CheckedInAt, &rec.MatchConfidence, &rec.Notes, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetRecord returns the record for (session, student), or nil when the
// student has not been recorded yet.
func (r *AttendanceRepository) GetRecord(ctx context.Context, sessionID uuid.UUID, studentID int) (*model.AttendanceRecord, error) {
	rec, err := scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM attendance_records
		 WHERE attendance_session_id = $1 AND student_id = $2`, sessionID, studentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

// InsertRecord writes one attendance record. A unique violation is
// reported as ErrDuplicateRecord so callers can treat it as "already
// recorded" rather than a failure.
func (r *AttendanceRepository) InsertRecord(ctx context.Context, rec *model.AttendanceRecord) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attendance_records
		   (attendance_session_id, student_id, section_id, status, checked_in_at, match_confidence, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		rec.AttendanceSessionID, rec.StudentID, rec.SectionID, rec.Status,
		rec.CheckedInAt, rec.MatchConfidence, rec.Notes,
	).Scan(&rec.ID, &rec.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateRecord
		}
		return err
	}
	return nil
}

// InsertAbsentIfMissing writes an absent record unless the student already
// has one for the session. Reports whether a row was actually inserted.
// Existing present/late records are never touched.
func (r *AttendanceRepository) InsertAbsentIfMissing(ctx context.Context, rec *model.AttendanceRecord) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO attendance_records
		   (attendance_session_id, student_id, section_id, status, checked_in_at, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (attendance_session_id, student_id) DO NOTHING`,
		rec.AttendanceSessionID, rec.StudentID, rec.SectionID, model.StatusAbsent,
		rec.CheckedInAt, rec.Notes)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// RecordedStudentIDs returns the set of students already recorded in a session.
func (r *AttendanceRepository) RecordedStudentIDs(ctx context.Context, sessionID uuid.UUID) (map[int]struct{}, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id FROM attendance_records WHERE attendance_session_id = $1`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recorded := make(map[int]struct{})
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		recorded[id] = struct{}{}
	}
	return recorded, rows.Err()
}

// ListBySession returns all records of one attendance session.
func (r *AttendanceRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.AttendanceRecord, error) {
	return r.list(ctx,
		`SELECT `+recordColumns+` FROM attendance_records
		 WHERE attendance_session_id = $1 ORDER BY checked_in_at`, sessionID)
}

// ListByStudent returns a student's attendance history, newest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID, limit, offset int) ([]model.AttendanceRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.list(ctx,
		`SELECT `+recordColumns+` FROM attendance_records
		 WHERE student_id = $1 ORDER BY checked_in_at DESC LIMIT $2 OFFSET $3`,
		studentID, limit, offset)
}

// ListBySectionRange returns a section's records within [from, to), oldest first.
func (r *AttendanceRepository) ListBySectionRange(ctx context.Context, sectionID int, from, to time.Time) ([]model.AttendanceRecord, error) {
	return r.list(ctx,
		`SELECT `+recordColumns+` FROM attendance_records
		 WHERE section_id = $1 AND checked_in_at >= $2 AND checked_in_at < $3
		 ORDER BY checked_in_at`, sectionID, from, to)
}

func (r *AttendanceRepository) list(ctx context.Context, query string, args ...any) ([]model.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// CountByStatus returns the per-status breakdown of one attendance session.
func (r *AttendanceRepository) CountByStatus(ctx context.Context, sessionID uuid.UUID) (map[model.AttendanceStatus]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM attendance_records
		 WHERE attendance_session_id = $1 GROUP BY status`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.AttendanceStatus]int)
	for rows.Next() {
		var status model.AttendanceStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
