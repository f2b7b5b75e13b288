package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hephzi-centre/admin-api/internal/models"
	"github.com/hephzi-centre/admin-api/internal/service"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
	"github.com/hephzi-centre/admin-api/pkg/response"
)

// ReportHandler manages daily report endpoints including publication and
// export.
type ReportHandler struct {
	reports *service.ReportService
	exports *service.ExportService
}

// NewReportHandler constructs handler. exports may be nil when the feature
// is disabled.
func NewReportHandler(reports *service.ReportService, exports *service.ExportService) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

// Submit godoc
// @Summary Submit a daily report
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body models.SubmitReportRequest true "Report payload"
// @Success 201 {object} response.Envelope
// @Router /reports [post]
func (h *ReportHandler) Submit(c *gin.Context) {
	var req models.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	report, err := h.reports.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, report)
}

// List godoc
// @Summary List daily reports
// @Tags Reports
// @Produce json
// @Param week query string false "Week start date (YYYY-MM-DD)"
// @Param mentorId query string false "Filter by mentor"
// @Param studentId query string false "Filter by student"
// @Success 200 {object} response.Envelope
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	filter := models.ReportFilter{
		WeekStart: c.Query("week"),
		MentorID:  c.Query("mentorId"),
		StudentID: c.Query("studentId"),
	}
	reports, err := h.reports.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}

// Choices godoc
// @Summary List per-category session choices for a report
// @Tags Reports
// @Produce json
// @Param studentId query string true "Student ID"
// @Param date query string true "Report date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /reports/choices [get]
func (h *ReportHandler) Choices(c *gin.Context) {
	choices, err := h.reports.SessionChoices(c.Request.Context(), c.Query("studentId"), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, choices, nil)
}

// Update godoc
// @Summary Patch a daily report
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param payload body models.UpdateReportRequest true "Patch payload"
// @Success 200 {object} response.Envelope
// @Router /reports/{id} [patch]
func (h *ReportHandler) Update(c *gin.Context) {
	var req models.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	report, err := h.reports.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Publish godoc
// @Summary Set a report's publication flag
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param payload body models.PublishReportRequest true "Publication flag"
// @Success 200 {object} response.Envelope
// @Router /reports/{id}/publish [put]
func (h *ReportHandler) Publish(c *gin.Context) {
	var req models.PublishReportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsPublished == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "isPublished is required"))
		return
	}
	report, err := h.reports.SetPublished(c.Request.Context(), c.Param("id"), *req.IsPublished)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// CreateExport godoc
// @Summary Request an export of a week's published reports
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body models.CreateExportRequest true "Export request"
// @Success 202 {object} response.Envelope
// @Router /reports/export [post]
func (h *ReportHandler) CreateExport(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	var req models.CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	job, err := h.exports.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job, nil)
}

// ExportStatus godoc
// @Summary Get export job status
// @Tags Reports
// @Produce json
// @Param id path string true "Export job ID"
// @Success 200 {object} response.Envelope
// @Router /reports/export/{id} [get]
func (h *ReportHandler) ExportStatus(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	job, err := h.exports.Find(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// DownloadExport godoc
// @Summary Download an export artefact with a signed token
// @Tags Reports
// @Produce octet-stream
// @Param id path string true "Export job ID"
// @Param token query string true "Signed download token"
// @Success 200
// @Router /reports/export/{id}/download [get]
func (h *ReportHandler) DownloadExport(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	file, name, err := h.exports.Open(c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	c.Header("Content-Disposition", "attachment; filename="+name)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}
