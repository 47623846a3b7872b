package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/attendance-backend/internal/model"
)

// ClassSessionRepository handles scheduled-class data access.
type ClassSessionRepository struct {
	pool *pgxpool.Pool
}

// NewClassSessionRepository creates a new ClassSessionRepository.
func NewClassSessionRepository(pool *pgxpool.Pool) *ClassSessionRepository {
	return &ClassSessionRepository{pool: pool}
}

const classSessionColumns = `id, section_id, professor_id, room, day_of_week, start_time, end_time, max_capacity, created_at, updated_at`

func scanClassSession(row interface{ Scan(...any) error }) (*model.ClassSession, error) {
	cs := &model.ClassSession{}
	err := row.Scan(&cs.ID, &cs.SectionID, &cs.ProfessorID, &cs.Room, &cs.DayOfWeek, &cs.StartTime, &cs.EndTime, &cs.MaxCapacity, &cs.CreatedAt, &cs.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// GetByID retrieves a scheduled class by ID.
func (r *ClassSessionRepository) GetByID(ctx context.Context, id int) (*model.ClassSession, error) {
	return scanClassSession(r.pool.QueryRow(ctx,
		`SELECT `+classSessionColumns+` FROM class_sessions WHERE id = $1`, id))
}

// FindForSectionOnDay returns the schedule for a section on a given
// weekday, or nil when the section has no class that day.
func (r *ClassSessionRepository) FindForSectionOnDay(ctx context.Context, sectionID int, dayOfWeek string) (*model.ClassSession, error) {
	cs, err := scanClassSession(r.pool.QueryRow(ctx,
		`SELECT `+classSessionColumns+` FROM class_sessions
		 WHERE section_id = $1 AND day_of_week = $2
		 ORDER BY start_time LIMIT 1`, sectionID, dayOfWeek))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return cs, err
}

// ListBySection retrieves all scheduled classes for a section.
func (r *ClassSessionRepository) ListBySection(ctx context.Context, sectionID int) ([]model.ClassSession, error) {
	return r.list(ctx,
		`SELECT `+classSessionColumns+` FROM class_sessions WHERE section_id = $1 ORDER BY day_of_week, start_time`, sectionID)
}

// ListByProfessor retrieves all scheduled classes taught by a professor.
func (r *ClassSessionRepository) ListByProfessor(ctx context.Context, professorID int) ([]model.ClassSession, error) {
	return r.list(ctx,
		`SELECT `+classSessionColumns+` FROM class_sessions WHERE professor_id = $1 ORDER BY day_of_week, start_time`, professorID)
}

// List retrieves all scheduled classes.
func (r *ClassSessionRepository) List(ctx context.Context) ([]model.ClassSession, error) {
	return r.list(ctx,
		`SELECT `+classSessionColumns+` FROM class_sessions ORDER BY section_id, day_of_week, start_time`)
}

func (r *ClassSessionRepository) list(ctx context.Context, query string, args ...any) ([]model.ClassSession, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.ClassSession
	for rows.Next() {
		cs, err := scanClassSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *cs)
	}
	return sessions, rows.Err()
}

// Create inserts a new scheduled class.
func (r *ClassSessionRepository) Create(ctx context.Context, cs *model.ClassSession) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO class_sessions (section_id, professor_id, room, day_of_week, start_time, end_time, max_capacity)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		cs.SectionID, cs.ProfessorID, cs.Room, cs.DayOfWeek, cs.StartTime, cs.EndTime, cs.MaxCapacity,
	).Scan(&cs.ID, &cs.CreatedAt, &cs.UpdatedAt)
}

// Update modifies a scheduled class.
func (r *ClassSessionRepository) Update(ctx context.Context, cs *model.ClassSession) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE class_sessions SET section_id = $1, professor_id = $2, room = $3, day_of_week = $4, start_time = $5, end_time = $6, max_capacity = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		cs.SectionID, cs.ProfessorID, cs.Room, cs.DayOfWeek, cs.StartTime, cs.EndTime, cs.MaxCapacity, cs.ID)
	return err
}

// Delete removes a scheduled class.
func (r *ClassSessionRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM class_sessions WHERE id = $1`, id)
	return err
}
