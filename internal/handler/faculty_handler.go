package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance-backend/internal/faceclient"
	"github.com/campuskit/attendance-backend/internal/middleware"
	"github.com/campuskit/attendance-backend/internal/model"
	"github.com/campuskit/attendance-backend/internal/repository"
	"github.com/campuskit/attendance-backend/internal/response"
	"github.com/campuskit/attendance-backend/internal/service"
	"github.com/campuskit/attendance-backend/internal/validator"
)

// FacultyHandler exposes the admin-side faculty management endpoints.
type FacultyHandler struct {
	faculty *service.FacultyService
}

// NewFacultyHandler creates a new FacultyHandler.
func NewFacultyHandler(faculty *service.FacultyService) *FacultyHandler {
	return &FacultyHandler{faculty: faculty}
}

// List godoc
// GET /api/v1/admin/professors
func (h *FacultyHandler) List(c *gin.Context) {
	professors, err := h.faculty.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"professors": professors})
}

// Get godoc
// GET /api/v1/admin/professors/:id
func (h *FacultyHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	professor, err := h.faculty.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, professor)
}

// Create godoc
// POST /api/v1/admin/professors
func (h *FacultyHandler) Create(c *gin.Context) {
	var req model.CreateProfessorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	professor, err := h.faculty.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateProfessor) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, professor)
}

// Update godoc
// PUT /api/v1/admin/professors/:id
func (h *FacultyHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateProfessorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	professor, err := h.faculty.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrDuplicateProfessor):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, professor)
}

// RegisterFace godoc
// POST /api/v1/professor/face
// Registers (or re-registers) the authenticated professor's face sample
// for face login.
func (h *FacultyHandler) RegisterFace(c *gin.Context) {
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

	reg, err := h.faculty.RegisterFace(c.Request.Context(), claims.UserID, req.Image)
	if err != nil {
		switch {
		case errors.Is(err, faceclient.ErrNoFaceDetected):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrNoFaceDetected)
		case errors.Is(err, faceclient.ErrUnavailable):
			response.Fail(c, http.StatusBadGateway, response.ErrFaceServiceDown)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusCreated, reg)
}

// FaceStatus godoc
// GET /api/v1/professor/face
func (h *FacultyHandler) FaceStatus(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	reg, err := h.faculty.FaceStatus(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	registered := reg != nil && reg.IsActive && len(reg.Embedding) > 0
	response.Success(c, http.StatusOK, gin.H{
		"registered":   registered,
		"registration": reg,
	})
}

// RemoveFace godoc
// DELETE /api/v1/professor/face
func (h *FacultyHandler) RemoveFace(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.faculty.RemoveFace(c.Request.Context(), claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// Delete godoc
// DELETE /api/v1/admin/professors/:id
func (h *FacultyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.faculty.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
