package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campuskit/attendance-backend/internal/attendance"
	"github.com/campuskit/attendance-backend/internal/model"
	"github.com/campuskit/attendance-backend/internal/repository"
)

// Attendance errors surfaced to handlers.
var (
	ErrAttendanceLocked = errors.New("attendance window is locked for this class")
	ErrScheduleNotFound = errors.New("no scheduled class found")
	ErrNotScheduleOwner = errors.New("schedule belongs to another professor")
)

// attendanceStore is the persistence surface the reconciler needs.
type attendanceStore interface {
	GetRecord(ctx context.Context, sessionID uuid.UUID, studentID int) (*model.AttendanceRecord, error)
	InsertRecord(ctx context.Context, rec *model.AttendanceRecord) error
	InsertAbsentIfMissing(ctx context.Context, rec *model.AttendanceRecord) (bool, error)
	RecordedStudentIDs(ctx context.Context, sessionID uuid.UUID) (map[int]struct{}, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.AttendanceRecord, error)
	CountByStatus(ctx context.Context, sessionID uuid.UUID) (map[model.AttendanceStatus]int, error)
}

type rosterStore interface {
	ListBySection(ctx context.Context, sectionID int) ([]model.Student, error)
}

type scheduleStore interface {
	GetByID(ctx context.Context, id int) (*model.ClassSession, error)
	FindForSectionOnDay(ctx context.Context, sectionID int, dayOfWeek string) (*model.ClassSession, error)
}

type shiftStore interface {
	Get(ctx context.Context, classSessionID int, date time.Time) (*model.ShiftState, error)
	Open(ctx context.Context, classSessionID, professorID int, date time.Time) (*model.ShiftState, error)
	Close(ctx context.Context, classSessionID int, date time.Time) error
}

// AttendanceService reconciles check-ins against the schedule's time
// windows and keeps one terminal record per (session, student).
type AttendanceService struct {
	records   attendanceStore
	students  rosterStore
	schedules scheduleStore
	shifts    shiftStore
	policy    attendance.Policy

	// now is swappable in tests; production uses time.Now.
	now func() time.Time
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(records attendanceStore, students rosterStore, schedules scheduleStore, shifts shiftStore, policy attendance.Policy) *AttendanceService {
	if policy.OnTimeWindow <= 0 || policy.LockDelay <= 0 {
		policy = attendance.DefaultPolicy
	}
	return &AttendanceService{
		records:   records,
		students:  students,
		schedules: schedules,
		shifts:    shifts,
		policy:    policy,
		now:       time.Now,
	}
}

// ClassInfo describes today's session of a section for the kiosk screen.
type ClassInfo struct {
	Schedule  *model.ClassSession `json:"schedule"`
	SessionID uuid.UUID           `json:"session_id"`
	Locked    bool                `json:"locked"`
	ShiftOpen bool                `json:"shift_open"`
}

// resolveSchedule returns the schedule governing a check-in: the explicit
// one when the kiosk pinned a schedule ID, otherwise today's class for the
// section. nil means the section has no class today and check-ins are
// accepted without time classification.
func (s *AttendanceService) resolveSchedule(ctx context.Context, sectionID int, scheduleID *int) (*model.ClassSession, error) {
	if scheduleID != nil {
		return s.schedules.GetByID(ctx, *scheduleID)
	}
	return s.schedules.FindForSectionOnDay(ctx, sectionID, s.now().Weekday().String())
}

// RecordCheckIn records one student's check-in for today's session of a
// section. Check-ins are idempotent: a student already recorded gets their
// existing record back unchanged, whatever its status. When the check-in
// arrives after the lock boundary the absence sweep runs for the session
// and ErrAttendanceLocked is returned.
func (s *AttendanceService) RecordCheckIn(ctx context.Context, sectionID, studentID int, confidence *float64, scheduleID *int) (*model.CheckInResult, error) {
	now := s.now()
	sessionID := attendance.SessionID(sectionID, now)

	existing, err := s.records.GetRecord(ctx, sessionID, studentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &model.CheckInResult{Record: existing, AlreadyMarked: true}, nil
	}

	status := model.StatusPresent
	sched, err := s.resolveSchedule(ctx, sectionID, scheduleID)
	if err != nil {
		return nil, err
	}
	if sched != nil {
		day, ok := attendance.ParseWeekday(sched.DayOfWeek)
		if ok {
			eval := s.policy.Classify(now, sched.StartTime, day)
			if eval.Locked {
				if _, err := s.SweepAbsences(ctx, sectionID); err != nil {
					log.Error().Err(err).Int("section_id", sectionID).Msg("absence sweep after lock failed")
				}
				return nil, ErrAttendanceLocked
			}
			status = eval.Status
		}
	}

	rec := &model.AttendanceRecord{
		AttendanceSessionID: sessionID,
		StudentID:           studentID,
		SectionID:           sectionID,
		Status:              status,
		CheckedInAt:         now,
		MatchConfidence:     confidence,
	}
	if err := s.records.InsertRecord(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicateRecord) {
			// Lost the race to a concurrent check-in; the stored record wins.
			winner, gerr := s.records.GetRecord(ctx, sessionID, studentID)
			if gerr != nil {
				return nil, gerr
			}
			return &model.CheckInResult{Record: winner, AlreadyMarked: true}, nil
		}
		return nil, err
	}

	return &model.CheckInResult{Record: rec, AlreadyMarked: false}, nil
}

// SweepAbsences marks every enrolled student without a record in today's
// session of the section as absent. Already-recorded students are never
// touched, so running the sweep repeatedly is harmless.
func (s *AttendanceService) SweepAbsences(ctx context.Context, sectionID int) (*model.SweepResult, error) {
	now := s.now()
	sessionID := attendance.SessionID(sectionID, now)

	roster, err := s.students.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	recorded, err := s.records.RecordedStudentIDs(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := &model.SweepResult{SessionID: sessionID}
	note := model.AbsentSweepNote
	for _, student := range roster {
		if _, ok := recorded[student.ID]; ok {
			continue
		}
		result.Intended++
		inserted, err := s.records.InsertAbsentIfMissing(ctx, &model.AttendanceRecord{
			AttendanceSessionID: sessionID,
			StudentID:           student.ID,
			SectionID:           sectionID,
			Status:              model.StatusAbsent,
			CheckedInAt:         now,
			Notes:               &note,
		})
		if err != nil {
			log.Error().Err(err).Int("student_id", student.ID).Msg("sweep insert failed")
			continue
		}
		if inserted {
			result.Marked++
		}
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Int("intended", result.Intended).
		Int("marked", result.Marked).
		Msg("absence sweep complete")
	return result, nil
}

// TodayStats returns the per-status breakdown of today's session.
func (s *AttendanceService) TodayStats(ctx context.Context, sectionID int) (*model.TodayStats, error) {
	sessionID := attendance.SessionID(sectionID, s.now())

	counts, err := s.records.CountByStatus(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	roster, err := s.students.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	return &model.TodayStats{
		SessionID: sessionID,
		Present:   counts[model.StatusPresent],
		Late:      counts[model.StatusLate],
		Absent:    counts[model.StatusAbsent],
		Enrolled:  len(roster),
	}, nil
}

// SessionRecords lists today's records for a section, oldest first.
func (s *AttendanceService) SessionRecords(ctx context.Context, sectionID int) ([]model.AttendanceRecord, error) {
	return s.records.ListBySession(ctx, attendance.SessionID(sectionID, s.now()))
}

// ClassToday describes the session state the kiosk needs: today's schedule
// (nil when the section has no class today), the derived session ID, and
// whether the window has locked.
func (s *AttendanceService) ClassToday(ctx context.Context, sectionID int) (*ClassInfo, error) {
	now := s.now()
	info := &ClassInfo{SessionID: attendance.SessionID(sectionID, now)}

	sched, err := s.schedules.FindForSectionOnDay(ctx, sectionID, now.Weekday().String())
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return info, nil
	}
	info.Schedule = sched

	if day, ok := attendance.ParseWeekday(sched.DayOfWeek); ok {
		info.Locked = s.policy.Locked(now, sched.StartTime, day)
	}

	shift, err := s.shifts.Get(ctx, sched.ID, now)
	if err != nil {
		return nil, err
	}
	info.ShiftOpen = shift != nil && shift.IsActive

	return info, nil
}

// OpenShift activates the check-in window for a scheduled class today.
// Only the professor assigned to the schedule may open it; reopening an
// already-open shift refreshes it in place.
func (s *AttendanceService) OpenShift(ctx context.Context, professorID, classSessionID int) (*model.ShiftState, error) {
	sched, err := s.schedules.GetByID(ctx, classSessionID)
	if err != nil {
		return nil, ErrScheduleNotFound
	}
	if sched.ProfessorID != professorID {
		return nil, ErrNotScheduleOwner
	}
	return s.shifts.Open(ctx, classSessionID, professorID, s.now())
}

// CloseShift deactivates the check-in window for a scheduled class today.
func (s *AttendanceService) CloseShift(ctx context.Context, professorID, classSessionID int) error {
	sched, err := s.schedules.GetByID(ctx, classSessionID)
	if err != nil {
		return ErrScheduleNotFound
	}
	if sched.ProfessorID != professorID {
		return ErrNotScheduleOwner
	}
	return s.shifts.Close(ctx, classSessionID, s.now())
}
