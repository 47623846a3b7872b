package model

import "time"

// FaceRegistration is a student's enrollment record for face check-in.
// The embedding is optional until the student completes face capture;
// re-registration replaces it in place.
type FaceRegistration struct {
	ID            int        `json:"id"`
	StudentID     int        `json:"student_id"`
	StudentNumber string     `json:"student_number"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	SectionID     int        `json:"section_id"`
	Embedding     []float64  `json:"-"`
	IsActive      bool       `json:"is_active"`
	RegisteredAt  *time.Time `json:"registered_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// HasEmbedding reports whether face capture has been completed.
func (r FaceRegistration) HasEmbedding() bool {
	return len(r.Embedding) > 0
}

// RegisterFaceRequest is the payload for registering (or re-registering)
// a face sample. Image is a base64 data URL forwarded to the inference
// server; it is never persisted here.
type RegisterFaceRequest struct {
	Image string `json:"image" binding:"required"`
}

// IdentifyRequest is the kiosk payload: one camera frame to identify and
// check in against a section's enrollment pool.
type IdentifyRequest struct {
	SectionID  int    `json:"section_id" binding:"required"`
	Image      string `json:"image" binding:"required"`
	ScheduleID *int   `json:"schedule_id"`
}

// BatchIdentifyRequest carries several camera frames captured in one kiosk
// burst. Frames resolving to the same student are collapsed into one check-in.
type BatchIdentifyRequest struct {
	SectionID  int      `json:"section_id" binding:"required"`
	Images     []string `json:"images" binding:"required,min=1,max=10"`
	ScheduleID *int     `json:"schedule_id"`
}

// MarkAttendanceRequest marks attendance for an already-identified student.
type MarkAttendanceRequest struct {
	SectionID       int      `json:"section_id" binding:"required"`
	StudentID       int      `json:"student_id" binding:"required"`
	MatchConfidence *float64 `json:"match_confidence"`
	ScheduleID      *int     `json:"schedule_id"`
}

// SweepRequest triggers the absence sweep for a section today.
type SweepRequest struct {
	SectionID int `json:"section_id" binding:"required"`
}

// OpenShiftRequest opens the check-in window for a scheduled class today.
type OpenShiftRequest struct {
	ClassSessionID int `json:"class_session_id" binding:"required"`
}
