package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hephzi-centre/admin-api/internal/models"
	"github.com/hephzi-centre/admin-api/internal/service"
	appErrors "github.com/hephzi-centre/admin-api/pkg/errors"
	"github.com/hephzi-centre/admin-api/pkg/response"
)

// PlanHandler manages weekly plan endpoints.
type PlanHandler struct {
	plans    *service.PlanService
	capacity *service.CapacityService
	metrics  *service.MetricsService
}

// NewPlanHandler constructs handler.
func NewPlanHandler(plans *service.PlanService, capacity *service.CapacityService, metrics *service.MetricsService) *PlanHandler {
	return &PlanHandler{plans: plans, capacity: capacity, metrics: metrics}
}

// Get godoc
// @Summary Get a student's weekly plan
// @Tags Plans
// @Produce json
// @Param week path string true "Week start date (YYYY-MM-DD)"
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /plans/{week}/{studentId} [get]
func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.plans.GetPlan(c.Request.Context(), c.Param("week"), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan, nil)
}

// AddSession godoc
// @Summary Add a session to a weekly plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param week path string true "Week start date (YYYY-MM-DD)"
// @Param studentId path string true "Student ID"
// @Param payload body models.PlanSessionRequest true "Category and session id"
// @Success 200 {object} response.Envelope
// @Router /plans/{week}/{studentId}/sessions [post]
func (h *PlanHandler) AddSession(c *gin.Context) {
	var req models.PlanSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	plan, err := h.plans.AddSession(c.Request.Context(), c.Param("week"), c.Param("studentId"), req)
	if err != nil {
		h.countRejection(err)
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan, nil)
}

// RemoveSession godoc
// @Summary Remove a session from a weekly plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param week path string true "Week start date (YYYY-MM-DD)"
// @Param studentId path string true "Student ID"
// @Param payload body models.PlanSessionRequest true "Category and session id"
// @Success 200 {object} response.Envelope
// @Router /plans/{week}/{studentId}/sessions [delete]
func (h *PlanHandler) RemoveSession(c *gin.Context) {
	var req models.PlanSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	plan, err := h.plans.RemoveSession(c.Request.Context(), c.Param("week"), c.Param("studentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan, nil)
}

// Save godoc
// @Summary Replace a student's whole weekly plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param week path string true "Week start date (YYYY-MM-DD)"
// @Param studentId path string true "Student ID"
// @Param payload body models.WeeklyPlan true "Full plan"
// @Success 200 {object} response.Envelope
// @Router /plans/{week}/{studentId} [put]
func (h *PlanHandler) Save(c *gin.Context) {
	var plan models.WeeklyPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	saved, err := h.plans.SavePlan(c.Request.Context(), c.Param("week"), c.Param("studentId"), plan)
	if err != nil {
		h.countRejection(err)
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, saved, nil)
}

// Capacity godoc
// @Summary Get a student's per-category timetable capacity
// @Tags Plans
// @Produce json
// @Param week path string true "Week start date (YYYY-MM-DD)"
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /plans/{week}/{studentId}/capacity [get]
func (h *PlanHandler) Capacity(c *gin.Context) {
	counts, err := h.capacity.Counts(c.Request.Context(), c.Param("studentId"), c.Param("week"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, counts, nil)
}

func (h *PlanHandler) countRejection(err error) {
	appErr := appErrors.FromError(err)
	switch appErr.Code {
	case appErrors.ErrZeroCapacity.Code, appErrors.ErrCategoryAtCapacity.Code, appErrors.ErrDuplicateSession.Code:
		h.metrics.CountPlanRejection(appErr.Code)
	}
}
