package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance-backend/internal/faceclient"
	"github.com/campuskit/attendance-backend/internal/model"
	"github.com/campuskit/attendance-backend/internal/response"
	"github.com/campuskit/attendance-backend/internal/service"
	"github.com/campuskit/attendance-backend/internal/validator"
)

// AttendanceHandler exposes the kiosk and professor attendance endpoints.
type AttendanceHandler struct {
	attendance  *service.AttendanceService
	recognition *service.RecognitionService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(att *service.AttendanceService, rec *service.RecognitionService) *AttendanceHandler {
	return &AttendanceHandler{attendance: att, recognition: rec}
}

// failRecognition maps pipeline errors to response codes shared by the
// identify endpoints.
func failRecognition(c *gin.Context, err error) {
	switch {
	case errors.Is(err, faceclient.ErrNoFaceDetected):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrNoFaceDetected)
	case errors.Is(err, faceclient.ErrUnavailable):
		response.Fail(c, http.StatusBadGateway, response.ErrFaceServiceDown)
	case errors.Is(err, service.ErrNoRegisteredFaces):
		response.Fail(c, http.StatusNotFound, response.ErrNoRegisteredFaces)
	case errors.Is(err, service.ErrFaceNotRecognized):
		response.Fail(c, http.StatusNotFound, response.ErrFaceNotRegistered)
	case errors.Is(err, service.ErrAttendanceLocked):
		response.Fail(c, http.StatusForbidden, response.ErrAttendanceLocked)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// Identify godoc
// POST /api/v1/kiosk/identify
// Identifies one camera frame against the section's enrollment pool and
// records the matched student's check-in.
func (h *AttendanceHandler) Identify(c *gin.Context) {
	var req model.IdentifyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.recognition.Identify(c.Request.Context(), req)
	if err != nil {
		failRecognition(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// IdentifyBatch godoc
// POST /api/v1/kiosk/identify/batch
// Identifies a burst of frames; each student checks in at most once.
func (h *AttendanceHandler) IdentifyBatch(c *gin.Context) {
	var req model.BatchIdentifyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	results, err := h.recognition.IdentifyBatch(c.Request.Context(), req)
	if err != nil {
		failRecognition(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"identified": results})
}

// Mark godoc
// POST /api/v1/attendance/mark
// Records attendance for an already-identified student. Used by the
// professor console for manual overrides when the camera cannot match.
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req model.MarkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.attendance.RecordCheckIn(c.Request.Context(), req.SectionID, req.StudentID, req.MatchConfidence, req.ScheduleID)
	if err != nil {
		if errors.Is(err, service.ErrAttendanceLocked) {
			response.Fail(c, http.StatusForbidden, response.ErrAttendanceLocked)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	status := http.StatusCreated
	if result.AlreadyMarked {
		status = http.StatusOK
	}
	response.Success(c, status, result)
}

// ClassInfo godoc
// GET /api/v1/kiosk/sections/:id/class-info
// Returns today's schedule, session ID, lock state, and shift state.
func (h *AttendanceHandler) ClassInfo(c *gin.Context) {
	sectionID, ok := pathID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	info, err := h.attendance.ClassToday(c.Request.Context(), sectionID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, info)
}

// TodayStats godoc
// GET /api/v1/kiosk/sections/:id/today
func (h *AttendanceHandler) TodayStats(c *gin.Context) {
	sectionID, ok := pathID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	stats, err := h.attendance.TodayStats(c.Request.Context(), sectionID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// SessionRecords godoc
// GET /api/v1/attendance/sections/:id/records
// Lists today's check-in records of a section, oldest first.
func (h *AttendanceHandler) SessionRecords(c *gin.Context) {
	sectionID, ok := pathID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	records, err := h.attendance.SessionRecords(c.Request.Context(), sectionID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// Sweep godoc
// POST /api/v1/attendance/sweep
// Marks every still-unrecorded student of the section absent for today.
// Safe to call repeatedly.
func (h *AttendanceHandler) Sweep(c *gin.Context) {
	var req model.SweepRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.attendance.SweepAbsences(c.Request.Context(), req.SectionID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, result)
}
