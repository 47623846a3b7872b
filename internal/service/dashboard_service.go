package service

import (
	"context"

	"github.com/campuskit/attendance-backend/internal/model"
	"github.com/campuskit/attendance-backend/internal/repository"
)

// DashboardService assembles the admin landing-page counters.
type DashboardService struct {
	students    *repository.StudentRepository
	professors  *repository.ProfessorRepository
	sections    *repository.SectionRepository
	attendance  *AttendanceService
	recognition *RecognitionService
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(students *repository.StudentRepository, professors *repository.ProfessorRepository, sections *repository.SectionRepository, att *AttendanceService, rec *RecognitionService) *DashboardService {
	return &DashboardService{
		students:    students,
		professors:  professors,
		sections:    sections,
		attendance:  att,
		recognition: rec,
	}
}

// DashboardStats is the admin overview.
type DashboardStats struct {
	Students           int                `json:"students"`
	Professors         int                `json:"professors"`
	Sections           int                `json:"sections"`
	FaceServiceHealthy bool               `json:"face_service_healthy"`
	Today              []model.TodayStats `json:"today"`
}

// Stats gathers entity counts, today's per-section attendance, and the
// inference server's reachability.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	_, totalStudents, err := s.students.ListPaginated(ctx, nil, 1, 0)
	if err != nil {
		return nil, err
	}
	professors, err := s.professors.List(ctx)
	if err != nil {
		return nil, err
	}
	sections, err := s.sections.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Students:           totalStudents,
		Professors:         len(professors),
		Sections:           len(sections),
		FaceServiceHealthy: s.recognition.ServiceHealthy(ctx) == nil,
	}
	for _, section := range sections {
		today, err := s.attendance.TodayStats(ctx, section.ID)
		if err != nil {
			return nil, err
		}
		stats.Today = append(stats.Today, *today)
	}
	return stats, nil
}
