package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/campuskit/attendance-backend/internal/model"
	"github.com/campuskit/attendance-backend/internal/repository"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// StudentService handles student accounts: portal login and the admin-side
// roster management.
type StudentService struct {
	repo *repository.StudentRepository
	auth *AuthService
}

// NewStudentService creates a new StudentService.
func NewStudentService(repo *repository.StudentRepository, auth *AuthService) *StudentService {
	return &StudentService{repo: repo, auth: auth}
}

// Login authenticates a student by student number and issues a JWT.
func (s *StudentService) Login(ctx context.Context, req model.StudentLoginRequest) (*model.StudentLoginResponse, error) {
	student, err := s.repo.GetByStudentNumber(ctx, req.StudentNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.auth.CheckPassword(student.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	sectionID := 0
	if student.SectionID != nil {
		sectionID = *student.SectionID
	}
	token, err := s.auth.GenerateStudentToken(ctx, student.ID, sectionID)
	if err != nil {
		return nil, err
	}

	return &model.StudentLoginResponse{Token: token, Student: *student}, nil
}

// Get retrieves one student.
func (s *StudentService) Get(ctx context.Context, id int) (*model.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return student, nil
}

// List returns a page of students, optionally filtered by section.
func (s *StudentService) List(ctx context.Context, sectionID *int, page, perPage int) ([]model.Student, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.repo.ListPaginated(ctx, sectionID, perPage, (page-1)*perPage)
}

// Create adds a student account with a hashed password.
func (s *StudentService) Create(ctx context.Context, req model.CreateStudentRequest) (*model.Student, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		StudentNumber: req.StudentNumber,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		PasswordHash:  hash,
		SectionID:     req.SectionID,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Update modifies a student; a non-empty password in the request is re-hashed.
func (s *StudentService) Update(ctx context.Context, id int, req model.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	student.StudentNumber = req.StudentNumber
	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Email = req.Email
	student.SectionID = req.SectionID
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}

	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
			return nil, err
		}
	}
	return student, nil
}

// Delete removes a student account.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// ResetSession clears a student's login session so they can sign in again.
func (s *StudentService) ResetSession(ctx context.Context, id int) error {
	return s.auth.ResetStudentSession(ctx, id)
}
