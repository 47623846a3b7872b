package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/attendance-backend/internal/model"
)

// ShiftRepository handles the per-day shift state of scheduled classes.
// One row exists per (class session, calendar date); reopening a shift
// updates that row rather than creating another.
type ShiftRepository struct {
	pool *pgxpool.Pool
}

// NewShiftRepository creates a new ShiftRepository.
func NewShiftRepository(pool *pgxpool.Pool) *ShiftRepository {
	return &ShiftRepository{pool: pool}
}

const shiftColumns = `id, class_session_id, professor_id, session_date, is_active, shift_opened_at, shift_closed_at`

// Get returns the shift state for a scheduled class on a date, or nil when
// no shift has been opened that day.
func (r *ShiftRepository) Get(ctx context.Context, classSessionID int, date time.Time) (*model.ShiftState, error) {
	s := &model.ShiftState{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+shiftColumns+` FROM attendance_shifts
		 WHERE class_session_id = $1 AND session_date = $2`,
		classSessionID, date.Format("2006-01-02"),
	).Scan(&s.ID, &s.ClassSessionID, &s.ProfessorID, &s.SessionDate, &s.IsActive, &s.ShiftOpenedAt, &s.ShiftClosedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Open marks the shift active for (class session, date), creating the row
// on first open and updating it on re-open.
func (r *ShiftRepository) Open(ctx context.Context, classSessionID, professorID int, date time.Time) (*model.ShiftState, error) {
	s := &model.ShiftState{}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attendance_shifts (class_session_id, professor_id, session_date, is_active, shift_opened_at)
		 VALUES ($1, $2, $3, TRUE, CURRENT_TIMESTAMP)
		 ON CONFLICT (class_session_id, session_date) DO UPDATE SET
		   is_active = TRUE,
		   professor_id = EXCLUDED.professor_id,
		   shift_opened_at = CURRENT_TIMESTAMP,
		   shift_closed_at = NULL
		 RETURNING `+shiftColumns,
		classSessionID, professorID, date.Format("2006-01-02"),
	).Scan(&s.ID, &s.ClassSessionID, &s.ProfessorID, &s.SessionDate, &s.IsActive, &s.ShiftOpenedAt, &s.ShiftClosedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Close deactivates the shift for (class session, date). Closing a shift
// that was never opened is a no-op.
func (r *ShiftRepository) Close(ctx context.Context, classSessionID int, date time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE attendance_shifts SET is_active = FALSE, shift_closed_at = CURRENT_TIMESTAMP
		 WHERE class_session_id = $1 AND session_date = $2`,
		classSessionID, date.Format("2006-01-02"))
	return err
}
