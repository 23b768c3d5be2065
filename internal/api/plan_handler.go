package api

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

// CreatePlanRequest defines the expected JSON for creating a plan. Days must
// hold all 7 weekday slots in Monday-first order.
type CreatePlanRequest struct {
	Name string           `json:"name" binding:"required"`
	Days []domain.DaySlot `json:"days" binding:"required"`
}

// TodayResponse is the home-dashboard payload.
type TodayResponse struct {
	Slot          *domain.DaySlot `json:"slot"`
	WeeksWorkouts int             `json:"weeksWorkouts"`
	WorkoutsDone  int             `json:"workoutsDone"`
	// WeeklyGoalPercent is null when the progress ratio is undefined
	// (division by zero), mirroring the NaN% the dashboard used to render.
	WeeklyGoalPercent *int `json:"weeklyGoalPercent"`
}

// --- Handler Methods ---

// CreatePlan creates a 7-day plan for the authenticated user.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	uid, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), uid, &domain.Plan{
		Name: req.Name,
		Days: req.Days,
	})
	if err != nil {
		if errors.Is(err, service.ErrPlanValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create plan.")
		}
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// GetPlans lists the authenticated user's plans.
func (h *PlanHandler) GetPlans(c *gin.Context) {
	uid, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plans, err := h.planService.GetPlans(c.Request.Context(), uid)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans.")
		return
	}

	c.JSON(http.StatusOK, plans)
}

// DeletePlan removes a plan. The active-plan pointer is not cleaned up; a
// dangling pointer reads as "no active plan".
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	uid, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), uid, c.Param("planId")); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete plan.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ActivatePlan marks a plan as the user's active plan (last write wins).
func (h *PlanHandler) ActivatePlan(c *gin.Context) {
	uid, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.planService.Activate(c.Request.Context(), uid, c.Param("planId")); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to activate plan.")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetActivePlan resolves the user's active plan, 404 when none is active.
func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	uid, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plan, err := h.planService.ActivePlan(c.Request.Context(), uid)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve active plan.")
		return
	}
	if plan == nil {
		abortWithError(c, http.StatusNotFound, "No active plan.")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetToday resolves today's slot and weekly progress from the active plan.
func (h *PlanHandler) GetToday(c *gin.Context) {
	uid, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	view, err := h.planService.Today(c.Request.Context(), uid, time.Now())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve today's workout.")
		return
	}
	if view == nil {
		abortWithError(c, http.StatusNotFound, "No active plan.")
		return
	}

	resp := TodayResponse{
		Slot:          view.Slot,
		WeeksWorkouts: view.Progress.WeeksWorkouts,
		WorkoutsDone:  view.Progress.WorkoutsDone,
	}
	if percent := view.Progress.Percent(); !math.IsNaN(percent) && !math.IsInf(percent, 0) {
		rounded := int(math.Round(percent))
		resp.WeeklyGoalPercent = &rounded
	}

	c.JSON(http.StatusOK, resp)
}
