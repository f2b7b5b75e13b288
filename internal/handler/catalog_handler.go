package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hephzi-centre/admin-api/internal/models"
	"github.com/hephzi-centre/admin-api/internal/service"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
	"github.com/hephzi-centre/admin-api/pkg/response"
)

// CatalogHandler serves session catalog lookups.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Candidates godoc
// @Summary List candidate sessions for a student and category
// @Tags Sessions
// @Produce json
// @Param category query string true "Session category"
// @Param studentId query string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /sessions [get]
func (h *CatalogHandler) Candidates(c *gin.Context) {
	category, err := models.ParseCategory(c.Query("category"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid category"))
		return
	}
	entries, err := h.catalog.CandidateSessions(c.Request.Context(), category, c.Query("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
