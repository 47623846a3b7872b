package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/attendance-backend/internal/model"
)

// SectionRepository handles section data access.
type SectionRepository struct {
	pool *pgxpool.Pool
}

// NewSectionRepository creates a new SectionRepository.
func NewSectionRepository(pool *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{pool: pool}
}

// GetByID retrieves a section by its ID.
func (r *SectionRepository) GetByID(ctx context.Context, id int) (*model.Section, error) {
	s := &model.Section{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, section_code, course_name, semester, academic_year, created_at, updated_at
		 FROM sections WHERE id = $1`, id,
	).Scan(&s.ID, &s.SectionCode, &s.CourseName, &s.Semester, &s.AcademicYear, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves all sections.
func (r *SectionRepository) List(ctx context.Context) ([]model.Section, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, section_code, course_name, semester, academic_year, created_at, updated_at
		 FROM sections ORDER BY section_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.Section
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.SectionCode, &s.CourseName, &s.Semester, &s.AcademicYear, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// Create inserts a new section.
func (r *SectionRepository) Create(ctx context.Context, s *model.Section) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO sections (section_code, course_name, semester, academic_year)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.SectionCode, s.CourseName, s.Semester, s.AcademicYear,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update modifies an existing section.
func (r *SectionRepository) Update(ctx context.Context, s *model.Section) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE sections SET section_code = $1, course_name = $2, semester = $3, academic_year = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		s.SectionCode, s.CourseName, s.Semester, s.AcademicYear, s.ID)
	return err
}

// Delete removes a section. Foreign keys on class_sessions and students
// prevent deletion while the section is still referenced.
func (r *SectionRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sections WHERE id = $1`, id)
	return err
}
