package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/attendance-backend/internal/model"
)

var ErrDuplicateProfessor = errors.New("professor with this employee id or email already exists")

// ProfessorRepository handles faculty data access.
type ProfessorRepository struct {
	pool *pgxpool.Pool
}

// NewProfessorRepository creates a new ProfessorRepository.
func NewProfessorRepository(pool *pgxpool.Pool) *ProfessorRepository {
	return &ProfessorRepository{pool: pool}
}

const professorColumns = `id, employee_id, first_name, last_name, email, department, password_hash, created_at, updated_at`

func scanProfessor(row interface{ Scan(...any) error }) (*model.Professor, error) {
	p := &model.Professor{}
	err := row.Scan(&p.ID, &p.EmployeeID, &p.FirstName, &p.LastName, &p.Email, &p.Department, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID retrieves a professor by ID.
func (r *ProfessorRepository) GetByID(ctx context.Context, id int) (*model.Professor, error) {
	return scanProfessor(r.pool.QueryRow(ctx,
		`SELECT `+professorColumns+` FROM professors WHERE id = $1`, id))
}

// GetByEmail retrieves a professor by email.
func (r *ProfessorRepository) GetByEmail(ctx context.Context, email string) (*model.Professor, error) {
	return scanProfessor(r.pool.QueryRow(ctx,
		`SELECT `+professorColumns+` FROM professors WHERE email = $1`, email))
}

// List retrieves all professors.
func (r *ProfessorRepository) List(ctx context.Context) ([]model.Professor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+professorColumns+` FROM professors ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var professors []model.Professor
	for rows.Next() {
		p, err := scanProfessor(rows)
		if err != nil {
			return nil, err
		}
		professors = append(professors, *p)
	}
	return professors, rows.Err()
}

// Create inserts a new professor.
func (r *ProfessorRepository) Create(ctx context.Context, p *model.Professor) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO professors (employee_id, first_name, last_name, email, department, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		p.EmployeeID, p.FirstName, p.LastName, p.Email, p.Department, p.PasswordHash,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateProfessor
		}
		return err
	}
	return nil
}

// Update modifies a professor's basic info (excluding password).
func (r *ProfessorRepository) Update(ctx context.Context, p *model.Professor) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE professors SET employee_id = $1, first_name = $2, last_name = $3, email = $4, department = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6`,
		p.EmployeeID, p.FirstName, p.LastName, p.Email, p.Department, p.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateProfessor
		}
	}
	return err
}

// UpdatePassword sets a new password hash.
func (r *ProfessorRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE professors SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id)
	return err
}

// Delete removes a professor.
func (r *ProfessorRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM professors WHERE id = $1`, id)
	return err
}
