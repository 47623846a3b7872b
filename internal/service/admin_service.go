package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/campuskit/attendance-backend/internal/model"
	"github.com/campuskit/attendance-backend/internal/repository"
)

// AdminService handles administrator authentication.
type AdminService struct {
	repo *repository.AdminRepository
	auth *AuthService
}

// NewAdminService creates a new AdminService.
func NewAdminService(repo *repository.AdminRepository, auth *AuthService) *AdminService {
	return &AdminService{repo: repo, auth: auth}
}

// Login authenticates an admin by email and issues a JWT.
func (s *AdminService) Login(ctx context.Context, req model.AdminLoginRequest) (*model.AdminLoginResponse, error) {
	admin, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.auth.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	token, err := s.auth.GenerateAdminToken(admin.ID)
	if err != nil {
		return nil, err
	}
	return &model.AdminLoginResponse{Token: token, Admin: *admin}, nil
}

// Get retrieves one admin.
func (s *AdminService) Get(ctx context.Context, id int) (*model.Admin, error) {
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return admin, nil
}

// Create adds an admin account with a hashed password.
func (s *AdminService) Create(ctx context.Context, name, email, password string) (*model.Admin, error) {
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := &model.Admin{Name: name, Email: email, PasswordHash: hash}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
