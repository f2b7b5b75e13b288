package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hephzi-centre/admin-api/internal/models"
	"github.com/hephzi-centre/admin-api/internal/repository"
	"github.com/hephzi-centre/admin-api/internal/service"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
	"github.com/hephzi-centre/admin-api/pkg/response"
)

// MentorHandler manages mentor directory endpoints.
type MentorHandler struct {
	mentors *service.MentorService
}

// NewMentorHandler constructs handler.
func NewMentorHandler(mentors *service.MentorService) *MentorHandler {
	return &MentorHandler{mentors: mentors}
}

// List godoc
// @Summary List mentors
// @Tags Mentors
// @Produce json
// @Param active query bool false "Filter by active flag"
// @Param search query string false "Name or email search"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /mentors [get]
func (h *MentorHandler) List(c *gin.Context) {
	var filter repository.MentorFilter
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}
	filter.Search = c.Query("search")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}

	mentors, pagination, err := h.mentors.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mentors, pagination)
}

// Get godoc
// @Summary Get a mentor
// @Tags Mentors
// @Produce json
// @Param id path string true "Mentor ID"
// @Success 200 {object} response.Envelope
// @Router /mentors/{id} [get]
func (h *MentorHandler) Get(c *gin.Context) {
	mentor, err := h.mentors.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mentor, nil)
}

// Create godoc
// @Summary Add a mentor
// @Tags Mentors
// @Accept json
// @Produce json
// @Param payload body models.CreateMentorRequest true "Mentor payload"
// @Success 201 {object} response.Envelope
// @Router /mentors [post]
func (h *MentorHandler) Create(c *gin.Context) {
	var req models.CreateMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	mentor, err := h.mentors.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mentor)
}

// Update godoc
// @Summary Update a mentor
// @Tags Mentors
// @Accept json
// @Produce json
// @Param id path string true "Mentor ID"
// @Param payload body models.UpdateMentorRequest true "Patch payload"
// @Success 200 {object} response.Envelope
// @Router /mentors/{id} [put]
func (h *MentorHandler) Update(c *gin.Context) {
	var req models.UpdateMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	mentor, err := h.mentors.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mentor, nil)
}

// Deactivate godoc
// @Summary Deactivate a mentor
// @Tags Mentors
// @Param id path string true "Mentor ID"
// @Success 204
// @Router /mentors/{id} [delete]
func (h *MentorHandler) Deactivate(c *gin.Context) {
	if err := h.mentors.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
