package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/campuskit/attendance-backend/internal/model"
	"github.com/campuskit/attendance-backend/internal/repository"
)

// SectionService handles section management and rosters.
type SectionService struct {
	sections *repository.SectionRepository
	students *repository.StudentRepository
	faces    *repository.FaceRegistrationRepository
}

// NewSectionService creates a new SectionService.
func NewSectionService(sections *repository.SectionRepository, students *repository.StudentRepository, faces *repository.FaceRegistrationRepository) *SectionService {
	return &SectionService{sections: sections, students: students, faces: faces}
}

// Get retrieves one section.
func (s *SectionService) Get(ctx context.Context, id int) (*model.Section, error) {
	section, err := s.sections.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return section, nil
}

// List returns all sections.
func (s *SectionService) List(ctx context.Context) ([]model.Section, error) {
	return s.sections.List(ctx)
}

// Roster returns the students enrolled in a section.
func (s *SectionService) Roster(ctx context.Context, sectionID int) ([]model.Student, error) {
	return s.students.ListBySection(ctx, sectionID)
}

// EnrollmentSummary reports how many of a section's students have completed
// face registration.
type EnrollmentSummary struct {
	SectionID  int `json:"section_id"`
	Enrolled   int `json:"enrolled"`
	Registered int `json:"registered"`
}

// Enrollment returns the face-registration coverage for a section.
func (s *SectionService) Enrollment(ctx context.Context, sectionID int) (*EnrollmentSummary, error) {
	roster, err := s.students.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	registered, err := s.faces.CountActiveBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	return &EnrollmentSummary{SectionID: sectionID, Enrolled: len(roster), Registered: registered}, nil
}

// Create adds a section.
func (s *SectionService) Create(ctx context.Context, req model.CreateSectionRequest) (*model.Section, error) {
	section := &model.Section{
		SectionCode:  req.SectionCode,
		CourseName:   req.CourseName,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
	}
	if err := s.sections.Create(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

// Update modifies a section.
func (s *SectionService) Update(ctx context.Context, id int, req model.CreateSectionRequest) (*model.Section, error) {
	section, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	section.SectionCode = req.SectionCode
	section.CourseName = req.CourseName
	section.Semester = req.Semester
	section.AcademicYear = req.AcademicYear
	if err := s.sections.Update(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

// Delete removes a section.
func (s *SectionService) Delete(ctx context.Context, id int) error {
	return s.sections.Delete(ctx, id)
}
