package service

import (
	"context"
	"time"

	"github.com/campuskit/attendance-backend/internal/model"
	"github.com/campuskit/attendance-backend/internal/repository"
)

// ReportService aggregates attendance history for sections and students.
type ReportService struct {
	records  *repository.AttendanceRepository
	students *repository.StudentRepository
}

// NewReportService creates a new ReportService.
func NewReportService(records *repository.AttendanceRepository, students *repository.StudentRepository) *ReportService {
	return &ReportService{records: records, students: students}
}

// StudentSummary is one student's aggregate over a report period.
type StudentSummary struct {
	StudentID      int     `json:"student_id"`
	StudentNumber  string  `json:"student_number"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Present        int     `json:"present"`
	Late           int     `json:"late"`
	Absent         int     `json:"absent"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// SectionReport covers one section over [From, To).
type SectionReport struct {
	SectionID int              `json:"section_id"`
	From      time.Time        `json:"from"`
	To        time.Time        `json:"to"`
	Students  []StudentSummary `json:"students"`
}

// SectionReport aggregates a section's records per student over [from, to).
// Present and late both count toward the attendance rate; only sweep-marked
// absences count against it.
func (s *ReportService) SectionReport(ctx context.Context, sectionID int, from, to time.Time) (*SectionReport, error) {
	roster, err := s.students.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	records, err := s.records.ListBySectionRange(ctx, sectionID, from, to)
	if err != nil {
		return nil, err
	}

	type tally struct{ present, late, absent int }
	tallies := make(map[int]*tally, len(roster))
	for _, rec := range records {
		t, ok := tallies[rec.StudentID]
		if !ok {
			t = &tally{}
			tallies[rec.StudentID] = t
		}
		switch rec.Status {
		case model.StatusPresent:
			t.present++
		case model.StatusLate:
			t.late++
		case model.StatusAbsent:
			t.absent++
		}
	}

	report := &SectionReport{SectionID: sectionID, From: from, To: to}
	for _, student := range roster {
		summary := StudentSummary{
			StudentID:     student.ID,
			StudentNumber: student.StudentNumber,
			FirstName:     student.FirstName,
			LastName:      student.LastName,
		}
		if t, ok := tallies[student.ID]; ok {
			summary.Present = t.present
			summary.Late = t.late
			summary.Absent = t.absent
			if total := t.present + t.late + t.absent; total > 0 {
				summary.AttendanceRate = float64(t.present+t.late) / float64(total)
			}
		}
		report.Students = append(report.Students, summary)
	}
	return report, nil
}

// StudentHistory returns a student's attendance records, newest first.
func (s *ReportService) StudentHistory(ctx context.Context, studentID, page, perPage int) ([]model.AttendanceRecord, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 50
	}
	return s.records.ListByStudent(ctx, studentID, perPage, (page-1)*perPage)
}
