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

// ProfessorFaceRepository handles face enrollment data access for faculty
// face login.
type ProfessorFaceRepository struct {
	pool *pgxpool.Pool
}

// NewProfessorFaceRepository creates a new ProfessorFaceRepository.
func NewProfessorFaceRepository(pool *pgxpool.Pool) *ProfessorFaceRepository {
	return &ProfessorFaceRepository{pool: pool}
}

const professorFaceColumns = `id, professor_id, embedding, is_active, registered_at, created_at, updated_at`

func scanProfessorFace(row interface{ Scan(...any) error }) (*model.ProfessorFaceRegistration, error) {
	reg := &model.ProfessorFaceRegistration{}
	var raw []byte
	err := row.Scan(&reg.ID, &reg.ProfessorID, &raw, &reg.IsActive, &reg.RegisteredAt,
		&reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &reg.Embedding); err != nil {
			reg.Embedding = nil
		}
	}
	return reg, nil
}

// GetByProfessor retrieves a professor's registration, or nil when the
// professor has never registered.
func (r *ProfessorFaceRepository) GetByProfessor(ctx context.Context, professorID int) (*model.ProfessorFaceRegistration, error) {
	reg, err := scanProfessorFace(r.pool.QueryRow(ctx,
		`SELECT `+professorFaceColumns+` FROM professor_face_registrations WHERE professor_id = $1`, professorID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return reg, err
}

// ListActive returns every active faculty registration. Faculty is a small
// table; face login matches against all of it.
func (r *ProfessorFaceRepository) ListActive(ctx context.Context) ([]model.ProfessorFaceRegistration, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+professorFaceColumns+` FROM professor_face_registrations
		 WHERE is_active
		 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []model.ProfessorFaceRegistration
	for rows.Next() {
		reg, err := scanProfessorFace(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}

// Upsert creates a registration or replaces an existing embedding in place.
func (r *ProfessorFaceRepository) Upsert(ctx context.Context, reg *model.ProfessorFaceRegistration) error {
	var raw any
	if len(reg.Embedding) > 0 {
		b, err := json.Marshal(reg.Embedding)
		if err != nil {
			return fmt.Errorf("marshal embedding: %w", err)
		}
		raw = b
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO professor_face_registrations
		   (professor_id, embedding, is_active, registered_at)
		 VALUES ($1, $2, TRUE, CURRENT_TIMESTAMP)
		 ON CONFLICT (professor_id) DO UPDATE SET
		   embedding = EXCLUDED.embedding,
		   is_active = TRUE,
		   registered_at = CURRENT_TIMESTAMP,
		   updated_at = CURRENT_TIMESTAMP
		 RETURNING id, created_at, updated_at`,
		reg.ProfessorID, raw,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
}

// Deactivate soft-removes a registration from the login pool.
func (r *ProfessorFaceRepository) Deactivate(ctx context.Context, professorID int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE professor_face_registrations SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		 WHERE professor_id = $1`, professorID)
	return err
}
