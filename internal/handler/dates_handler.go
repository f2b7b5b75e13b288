package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hephzi-centre/admin-api/internal/models"
	"github.com/hephzi-centre/admin-api/internal/service"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
	"github.com/hephzi-centre/admin-api/pkg/response"
)

// DatesHandler manages the important dates calendar endpoints.
type DatesHandler struct {
	dates *service.DatesService
}

// NewDatesHandler constructs handler.
func NewDatesHandler(dates *service.DatesService) *DatesHandler {
	return &DatesHandler{dates: dates}
}

// List godoc
// @Summary List important dates
// @Tags ImportantDates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /important-dates [get]
func (h *DatesHandler) List(c *gin.Context) {
	dates, err := h.dates.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dates, nil)
}

// Create godoc
// @Summary Add an important date
// @Tags ImportantDates
// @Accept json
// @Produce json
// @Param payload body models.CreateImportantDateRequest true "Date payload"
// @Success 201 {object} response.Envelope
// @Router /important-dates [post]
func (h *DatesHandler) Create(c *gin.Context) {
	var req models.CreateImportantDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	date, err := h.dates.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, date)
}

// Delete godoc
// @Summary Delete an important date
// @Tags ImportantDates
// @Param id path string true "Date ID"
// @Success 204
// @Router /important-dates/{id} [delete]
func (h *DatesHandler) Delete(c *gin.Context) {
	if err := h.dates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
