package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campuskit/attendance-backend/internal/attendance"
	"github.com/campuskit/attendance-backend/internal/model"
	"github.com/campuskit/attendance-backend/internal/repository"
)

// ScheduleService manages the weekly class schedule.
type ScheduleService struct {
	repo *repository.ClassSessionRepository
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(repo *repository.ClassSessionRepository) *ScheduleService {
	return &ScheduleService{repo: repo}
}

// Get retrieves one scheduled class.
func (s *ScheduleService) Get(ctx context.Context, id int) (*model.ClassSession, error) {
	cs, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cs, nil
}

// List returns all scheduled classes.
func (s *ScheduleService) List(ctx context.Context) ([]model.ClassSession, error) {
	return s.repo.List(ctx)
}

// ListBySection returns a section's weekly schedule.
func (s *ScheduleService) ListBySection(ctx context.Context, sectionID int) ([]model.ClassSession, error) {
	return s.repo.ListBySection(ctx, sectionID)
}

// ListByProfessor returns the classes a professor teaches.
func (s *ScheduleService) ListByProfessor(ctx context.Context, professorID int) ([]model.ClassSession, error) {
	return s.repo.ListByProfessor(ctx, professorID)
}

// validateTimes rejects schedules whose clock times cannot be parsed or
// whose end does not come after start.
func validateTimes(req model.CreateClassSessionRequest) error {
	start, err := attendance.ParseClockTime(req.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := attendance.ParseClockTime(req.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if end <= start {
		return errors.New("end_time must be after start_time")
	}
	return nil
}

// Create adds a scheduled class.
func (s *ScheduleService) Create(ctx context.Context, req model.CreateClassSessionRequest) (*model.ClassSession, error) {
	if err := validateTimes(req); err != nil {
		return nil, err
	}

	cs := &model.ClassSession{
		SectionID:   req.SectionID,
		ProfessorID: req.ProfessorID,
		Room:        req.Room,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxCapacity: req.MaxCapacity,
	}
	if err := s.repo.Create(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

// Update modifies a scheduled class.
func (s *ScheduleService) Update(ctx context.Context, id int, req model.CreateClassSessionRequest) (*model.ClassSession, error) {
	if err := validateTimes(req); err != nil {
		return nil, err
	}

	cs, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cs.SectionID = req.SectionID
	cs.ProfessorID = req.ProfessorID
	cs.Room = req.Room
	cs.DayOfWeek = req.DayOfWeek
	cs.StartTime = req.StartTime
	cs.EndTime = req.EndTime
	cs.MaxCapacity = req.MaxCapacity
	if err := s.repo.Update(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

// Delete removes a scheduled class.
func (s *ScheduleService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
