package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance-backend/internal/middleware"
	"github.com/campuskit/attendance-backend/internal/response"
	"github.com/campuskit/attendance-backend/internal/service"
)

// ReportHandler exposes attendance history and report endpoints.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// SectionReport godoc
// GET /api/v1/reports/sections/:id?from=2026-03-01&to=2026-03-31
// Aggregates per-student attendance over a date range. Defaults to the
// trailing 30 days.
func (h *ReportHandler) SectionReport(c *gin.Context) {
	sectionID, ok := pathID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"from": "must be YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"to": "must be YYYY-MM-DD"})
			return
		}
		// Inclusive end date: extend to the following midnight.
		to = parsed.AddDate(0, 0, 1)
	}

	report, err := h.reports.SectionReport(c.Request.Context(), sectionID, from, to)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// MyHistory godoc
// GET /api/v1/students/me/attendance?page=&per_page=
// The student portal's own attendance history, newest first.
func (h *ReportHandler) MyHistory(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	records, err := h.reports.StudentHistory(c.Request.Context(), claims.UserID,
		queryInt(c, "page", 1), queryInt(c, "per_page", 50))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// StudentHistory godoc
// GET /api/v1/reports/students/:id?page=&per_page=
// A student's attendance history for staff review.
func (h *ReportHandler) StudentHistory(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	records, err := h.reports.StudentHistory(c.Request.Context(), studentID,
		queryInt(c, "page", 1), queryInt(c, "per_page", 50))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"records": records})
}
