package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

// CreateWorkoutRequest defines the expected JSON for creating a workout.
type CreateWorkoutRequest struct {
	Name      string               `json:"name" binding:"required"`
	Exercises []domain.ExerciseRef `json:"exercises"`
}

// UpdateWorkoutRequest assigns a workout to one plan day and optionally
// rewrites the standalone workout record (when workoutId is set).
type UpdateWorkoutRequest struct {
	WorkoutID string               `json:"workoutId"`
	PlanID    string               `json:"planId" binding:"required"`
	DayIndex  *int                 `json:"dayIndex" binding:"required"`
	Name      string               `json:"name" binding:"required"`
	Exercises []domain.ExerciseRef `json:"exercises"`
}

// --- Handler Methods ---

// CreateWorkout creates a standalone workout for the authenticated user.
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	uid, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), uid, &domain.Workout{
		Name:      req.Name,
		Exercises: req.Exercises,
	})
	if err != nil {
		if errors.Is(err, service.ErrWorkoutValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create workout.")
		}
		return
	}

	c.JSON(http.StatusCreated, workout)
}

// UpdateWorkout rewrites a plan day slot and optionally the workout record.
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	uid, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	err = h.workoutService.UpdateWorkout(
		c.Request.Context(),
		uid,
		req.WorkoutID,
		req.PlanID,
		*req.DayIndex,
		&domain.Workout{
			ID:        req.WorkoutID,
			Name:      req.Name,
			Exercises: req.Exercises,
		},
	)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update workout.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteWorkout removes a workout record. Plans referencing it keep their
// day-slot reference; the dashboard tolerates the dangling id.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	uid, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	workoutID := c.Param("workoutId")
	if err := h.workoutService.DeleteWorkout(c.Request.Context(), uid, workoutID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete workout.")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetWorkouts lists the authenticated user's workouts.
func (h *WorkoutHandler) GetWorkouts(c *gin.Context) {
	uid, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	workouts, err := h.workoutService.GetWorkouts(c.Request.Context(), uid)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}

	c.JSON(http.StatusOK, workouts)
}
