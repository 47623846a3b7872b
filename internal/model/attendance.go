package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus enumerates the terminal states of an attendance record.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusLate    AttendanceStatus = "late"
	StatusAbsent  AttendanceStatus = "absent"
)

// AbsentSweepNote is written on every record created by the absence sweep.
const AbsentSweepNote = "Auto-marked absent at attendance lock"

// AttendanceRecord is one student's outcome for one attendance session.
// At most one record exists per (session, student); the database enforces
// this with a unique constraint.
type AttendanceRecord struct {
	ID                  int              `json:"id"`
	AttendanceSessionID uuid.UUID        `json:"attendance_session_id"`
	StudentID           int              `json:"student_id"`
	SectionID           int              `json:"section_id"`
	Status              AttendanceStatus `json:"status"`
	CheckedInAt         time.Time        `json:"checked_in_at"`
	MatchConfidence     *float64         `json:"match_confidence,omitempty"`
	Notes               *string          `json:"notes,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
}

// ShiftState tracks whether a professor has opened the check-in window for
// one scheduled class on one calendar date.
type ShiftState struct {
	ID             int        `json:"id"`
	ClassSessionID int        `json:"class_session_id"`
	ProfessorID    int        `json:"professor_id"`
	SessionDate    time.Time  `json:"session_date"`
	IsActive       bool       `json:"is_active"`
	ShiftOpenedAt  *time.Time `json:"shift_opened_at,omitempty"`
	ShiftClosedAt  *time.Time `json:"shift_closed_at,omitempty"`
}

// SweepResult reports an absence sweep run. Marked can be lower than
// Intended when some inserts fail; the sweep is safely re-runnable because
// it only ever targets students still missing a record.
type SweepResult struct {
	SessionID uuid.UUID `json:"session_id"`
	Intended  int       `json:"intended"`
	Marked    int       `json:"marked"`
}

// CheckInResult is returned by the reconciler for a kiosk check-in.
type CheckInResult struct {
	Record        *AttendanceRecord `json:"record"`
	AlreadyMarked bool              `json:"already_marked"`
}

// TodayStats is the per-session attendance breakdown.
type TodayStats struct {
	SessionID uuid.UUID `json:"session_id"`
	Present   int       `json:"present"`
	Late      int       `json:"late"`
	Absent    int       `json:"absent"`
	Enrolled  int       `json:"enrolled"`
}
