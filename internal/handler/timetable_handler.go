package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hephzi-centre/admin-api/internal/models"
	"github.com/hephzi-centre/admin-api/internal/service"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
	"github.com/hephzi-centre/admin-api/pkg/response"
)

// TimetableHandler manages the scheduling grid endpoints.
type TimetableHandler struct {
	timetable *service.TimetableService
}

// NewTimetableHandler constructs handler.
func NewTimetableHandler(timetable *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetable: timetable}
}

// Get godoc
// @Summary Get the timetable grid
// @Tags Timetable
// @Produce json
// @Param week query string false "Week start date (YYYY-MM-DD)"
// @Param mentorId query string false "Filter to one mentor's assignments"
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	week := c.Query("week")
	if mentorID := c.Query("mentorId"); mentorID != "" {
		view, err := h.timetable.MentorView(c.Request.Context(), week, mentorID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, view, nil)
		return
	}
	grid, err := h.timetable.Get(c.Request.Context(), week)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// PutCell godoc
// @Summary Replace all assignments of a timetable cell
// @Tags Timetable
// @Accept json
// @Produce json
// @Param day path string true "Day (monday..friday)"
// @Param slot path string true "Slot (session1..sessionN)"
// @Param week query string false "Week start date (YYYY-MM-DD)"
// @Param payload body models.PutCellRequest true "Cell assignments"
// @Success 200 {object} response.Envelope
// @Router /timetable/{day}/{slot} [put]
func (h *TimetableHandler) PutCell(c *gin.Context) {
	var req models.PutCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	grid, err := h.timetable.PutCell(c.Request.Context(), c.Query("week"), c.Param("day"), c.Param("slot"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// RemoveAssignment godoc
// @Summary Remove one assignment from a timetable cell
// @Tags Timetable
// @Produce json
// @Param day path string true "Day (monday..friday)"
// @Param slot path string true "Slot (session1..sessionN)"
// @Param index path int true "Assignment index within the cell"
// @Param week query string false "Week start date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /timetable/{day}/{slot}/{index} [delete]
func (h *TimetableHandler) RemoveAssignment(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "index must be an integer"))
		return
	}
	grid, err := h.timetable.RemoveAssignment(c.Request.Context(), c.Query("week"), c.Param("day"), c.Param("slot"), index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}
