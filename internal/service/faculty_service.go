package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/campuskit/attendance-backend/internal/facematch"
	"github.com/campuskit/attendance-backend/internal/model"
	"github.com/campuskit/attendance-backend/internal/repository"
)

type professorFaceStore interface {
	GetByProfessor(ctx context.Context, professorID int) (*model.ProfessorFaceRegistration, error)
	ListActive(ctx context.Context) ([]model.ProfessorFaceRegistration, error)
	Upsert(ctx context.Context, reg *model.ProfessorFaceRegistration) error
	Deactivate(ctx context.Context, professorID int) error
}

// FacultyService handles professor accounts and faculty face login.
type FacultyService struct {
	repo      *repository.ProfessorRepository
	auth      *AuthService
	faces     faceExtractor
	regs      professorFaceStore
	threshold float64
}

// NewFacultyService creates a new FacultyService.
func NewFacultyService(repo *repository.ProfessorRepository, auth *AuthService, faces faceExtractor, regs professorFaceStore, threshold float64) *FacultyService {
	if threshold <= 0 {
		threshold = facematch.DefaultThreshold
	}
	return &FacultyService{repo: repo, auth: auth, faces: faces, regs: regs, threshold: threshold}
}

// Login authenticates a professor by email and issues a JWT.
func (s *FacultyService) Login(ctx context.Context, req model.ProfessorLoginRequest) (*model.ProfessorLoginResponse, error) {
	professor, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.auth.CheckPassword(professor.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	token, err := s.auth.GenerateProfessorToken(ctx, professor.ID)
	if err != nil {
		return nil, err
	}
	return &model.ProfessorLoginResponse{Token: token, Professor: *professor}, nil
}

// FaceLogin authenticates a professor from a camera frame. The probe is
// matched against every active faculty registration; an unrecognized face
// comes back as ErrInvalidCredentials so the endpoint leaks nothing about
// who is enrolled.
func (s *FacultyService) FaceLogin(ctx context.Context, req model.ProfessorFaceLoginRequest) (*model.ProfessorLoginResponse, error) {
	extracted, err := s.faces.Extract(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	regs, err := s.regs.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]facematch.Candidate, 0, len(regs))
	for _, reg := range regs {
		if len(reg.Embedding) == 0 {
			continue
		}
		candidates = append(candidates, facematch.Candidate{
			ID:        strconv.Itoa(reg.ProfessorID),
			Embedding: reg.Embedding,
		})
	}
	if len(candidates) == 0 {
		return nil, ErrInvalidCredentials
	}

	result, err := facematch.Match(extracted.Embedding, candidates, s.threshold)
	if err != nil || !result.Matched {
		return nil, ErrInvalidCredentials
	}

	professorID, err := strconv.Atoi(result.MatchedID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	professor, err := s.repo.GetByID(ctx, professorID)
	if err != nil {
		return nil, err
	}

	token, err := s.auth.GenerateProfessorToken(ctx, professor.ID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("professor_id", professor.ID).
		Float64("distance", result.BestDistance).
		Float64("confidence", result.Confidence).
		Msg("professor face login")

	return &model.ProfessorLoginResponse{Token: token, Professor: *professor}, nil
}

// RegisterFace stores (or replaces) a professor's face embedding for face
// login. The image goes to the inference server and is never persisted.
func (s *FacultyService) RegisterFace(ctx context.Context, professorID int, image string) (*model.ProfessorFaceRegistration, error) {
	extracted, err := s.faces.Extract(ctx, image)
	if err != nil {
		return nil, err
	}

	reg := &model.ProfessorFaceRegistration{
		ProfessorID: professorID,
		Embedding:   extracted.Embedding,
		IsActive:    true,
	}
	if err := s.regs.Upsert(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// FaceStatus reports whether a professor has completed face registration.
func (s *FacultyService) FaceStatus(ctx context.Context, professorID int) (*model.ProfessorFaceRegistration, error) {
	return s.regs.GetByProfessor(ctx, professorID)
}

// RemoveFace disables a professor's face login.
func (s *FacultyService) RemoveFace(ctx context.Context, professorID int) error {
	return s.regs.Deactivate(ctx, professorID)
}

// Get retrieves one professor.
func (s *FacultyService) Get(ctx context.Context, id int) (*model.Professor, error) {
	professor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return professor, nil
}

// List returns all professors.
func (s *FacultyService) List(ctx context.Context) ([]model.Professor, error) {
	return s.repo.List(ctx)
}

// Create adds a faculty member with a hashed password.
func (s *FacultyService) Create(ctx context.Context, req model.CreateProfessorRequest) (*model.Professor, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	professor := &model.Professor{
		EmployeeID:   req.EmployeeID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Department:   req.Department,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, professor); err != nil {
		return nil, err
	}
	return professor, nil
}

// Update modifies a faculty member; a non-empty password is re-hashed.
func (s *FacultyService) Update(ctx context.Context, id int, req model.UpdateProfessorRequest) (*model.Professor, error) {
	professor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	professor.EmployeeID = req.EmployeeID
	professor.FirstName = req.FirstName
	professor.LastName = req.LastName
	professor.Email = req.Email
	professor.Department = req.Department
	if err := s.repo.Update(ctx, professor); err != nil {
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
	return professor, nil
}

// Delete removes a faculty member.
func (s *FacultyService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
