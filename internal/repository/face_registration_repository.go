package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/attendance-backend/internal/model"
)

// FaceRegistrationRepository handles face enrollment data access.
// Embeddings are stored as JSONB arrays; rows without an embedding
// represent students who have not completed face capture.
type FaceRegistrationRepository struct {
	pool *pgxpool.Pool
}

// NewFaceRegistrationRepository creates a new FaceRegistrationRepository.
func NewFaceRegistrationRepository(pool *pgxpool.Pool) *FaceRegistrationRepository {
	return &FaceRegistrationRepository{pool: pool}
}

const faceRegColumns = `id, student_id, student_number, first_name, last_name, section_id, embedding, is_active, registered_at, created_at, updated_at`

func scanFaceRegistration(row interface{ Scan(...any) error }) (*model.FaceRegistration, error) {
	reg := &model.FaceRegistration{}
	var raw []byte
	err := row.Scan(&reg.ID, &reg.StudentID, &reg.StudentNumber, &reg.FirstName, &reg.LastName,
		&reg.SectionID, &raw, &reg.IsActive, &reg.RegisteredAt, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &reg.Embedding); err != nil {
			// A corrupt embedding must not break pool listing; the matcher
			// skips registrations without a usable vector.
			reg.Embedding = nil
		}
	}
	return reg, nil
}

// GetByStudent retrieves a student's registration, or nil when the student
// has never registered.
func (r *FaceRegistrationRepository) GetByStudent(ctx context.Context, studentID int) (*model.FaceRegistration, error) {
	reg, err := scanFaceRegistration(r.pool.QueryRow(ctx,
		`SELECT `+faceRegColumns+` FROM student_face_registrations WHERE student_id = $1`, studentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return reg, err
}

// GetByID retrieves a registration by its row ID.
func (r *FaceRegistrationRepository) GetByID(ctx context.Context, id int) (*model.FaceRegistration, error) {
	reg, err := scanFaceRegistration(r.pool.QueryRow(ctx,
		`SELECT `+faceRegColumns+` FROM student_face_registrations WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return reg, err
}

// ListActiveBySection returns the active enrollment pool for a section.
func (r *FaceRegistrationRepository) ListActiveBySection(ctx context.Context, sectionID int) ([]model.FaceRegistration, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+faceRegColumns+` FROM student_face_registrations
		 WHERE section_id = $1 AND is_active
		 ORDER BY id`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []model.FaceRegistration
	for rows.Next() {
		reg, err := scanFaceRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}

// Upsert creates a registration or replaces the embedding of an existing
// one. Re-registration is expected: students retake their face sample.
func (r *FaceRegistrationRepository) Upsert(ctx context.Context, reg *model.FaceRegistration) error {
	var raw any
	if len(reg.Embedding) > 0 {
		b, err := json.Marshal(reg.Embedding)
		if err != nil {
			return fmt.Errorf("marshal embedding: %w", err)
		}
		raw = b
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO student_face_registrations
		   (student_id, student_number, first_name, last_name, section_id, embedding, is_active, registered_at)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE, CURRENT_TIMESTAMP)
		 ON CONFLICT (student_id) DO UPDATE SET
		   student_number = EXCLUDED.student_number,
		   first_name = EXCLUDED.first_name,
		   last_name = EXCLUDED.last_name,
		   section_id = EXCLUDED.section_id,
		   embedding = EXCLUDED.embedding,
		   is_active = TRUE,
		   registered_at = CURRENT_TIMESTAMP,
		   updated_at = CURRENT_TIMESTAMP
		 RETURNING id, created_at, updated_at`,
		reg.StudentID, reg.StudentNumber, reg.FirstName, reg.LastName, reg.SectionID, raw,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
}

// Deactivate soft-removes a registration from the matching pool.
func (r *FaceRegistrationRepository) Deactivate(ctx context.Context, studentID int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE student_face_registrations SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		 WHERE student_id = $1`, studentID)
	return err
}

// CountActiveBySection returns the number of active registrations in a section.
func (r *FaceRegistrationRepository) CountActiveBySection(ctx context.Context, sectionID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM student_face_registrations WHERE section_id = $1 AND is_active`,
		sectionID).Scan(&count)
	return count, err
}
