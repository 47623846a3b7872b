package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance-backend/internal/middleware"
	"github.com/campuskit/attendance-backend/internal/model"
	"github.com/campuskit/attendance-backend/internal/response"
	"github.com/campuskit/attendance-backend/internal/service"
	"github.com/campuskit/attendance-backend/internal/validator"
)

// ShiftHandler exposes the professor's open/close shift endpoints.
type ShiftHandler struct {
	attendance *service.AttendanceService
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(att *service.AttendanceService) *ShiftHandler {
	return &ShiftHandler{attendance: att}
}

func failShift(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrScheduleNotFound)
	case errors.Is(err, service.ErrNotScheduleOwner):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// Open godoc
// POST /api/v1/shifts/open
// Opens (or re-opens) today's check-in window for one scheduled class.
func (h *ShiftHandler) Open(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.OpenShiftRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	shift, err := h.attendance.OpenShift(c.Request.Context(), claims.UserID, req.ClassSessionID)
	if err != nil {
		failShift(c, err)
		return
	}
	response.Success(c, http.StatusOK, shift)
}

// Close godoc
// POST /api/v1/shifts/close
func (h *ShiftHandler) Close(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.OpenShiftRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.attendance.CloseShift(c.Request.Context(), claims.UserID, req.ClassSessionID); err != nil {
		failShift(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
