package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance-backend/internal/faceclient"
	"github.com/campuskit/attendance-backend/internal/middleware"
	"github.com/campuskit/attendance-backend/internal/model"
	"github.com/campuskit/attendance-backend/internal/response"
	"github.com/campuskit/attendance-backend/internal/service"
	"github.com/campuskit/attendance-backend/internal/validator"
)

// FaceHandler exposes face enrollment endpoints.
type FaceHandler struct {
	recognition *service.RecognitionService
}

// NewFaceHandler creates a new FaceHandler.
func NewFaceHandler(rec *service.RecognitionService) *FaceHandler {
	return &FaceHandler{recognition: rec}
}

// Register godoc
// POST /api/v1/students/me/face
// Registers (or re-registers) the authenticated student's face sample.
func (h *FaceHandler) Register(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.RegisterFaceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	reg, err := h.recognition.RegisterFace(c.Request.Context(), claims.UserID, req.Image)
	if err != nil {
		switch {
		case errors.Is(err, faceclient.ErrNoFaceDetected):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrNoFaceDetected)
		case errors.Is(err, faceclient.ErrUnavailable):
			response.Fail(c, http.StatusBadGateway, response.ErrFaceServiceDown)
		case errors.Is(err, service.ErrNoSectionAssigned):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusCreated, reg)
}

// Status godoc
// GET /api/v1/students/me/face
// Reports whether the authenticated student has completed face registration.
func (h *FaceHandler) Status(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	reg, err := h.recognition.RegistrationStatus(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	registered := reg != nil && reg.IsActive && reg.HasEmbedding()
	response.Success(c, http.StatusOK, gin.H{
		"registered":   registered,
		"registration": reg,
	})
}

// Remove godoc
// DELETE /api/v1/admin/students/:id/face
// Deactivates a student's face registration (admin action).
func (h *FaceHandler) Remove(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.recognition.RemoveFace(c.Request.Context(), studentID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
