package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/service"
	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// ProfileHandler implements the profile and activity log endpoints
type ProfileHandler struct {
	service *service.ProfileService
	logger  *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(service *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger,
	}
}

// GetProfile returns the stored profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile := h.service.Profile()
	if profile == nil {
		respondError(c, h.logger, service.ErrNoProfile, "No profile has been created")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PutProfile creates the profile or replaces the existing one
func (h *ProfileHandler) PutProfile(c *gin.Context) {
	var req model.UserProfile
	if !bindJSON(c, h.logger, &req) {
		return
	}

	profile, err := h.service.SaveProfile(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to save profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PatchProfile applies a partial profile update
func (h *ProfileHandler) PatchProfile(c *gin.Context) {
	var req model.ProfileUpdate
	if !bindJSON(c, h.logger, &req) {
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteProfile removes the profile and every log
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	if err := h.service.ClearAll(c.Request.Context(), c.ClientIP(), c.Request.UserAgent()); err != nil {
		respondError(c, h.logger, err, "Failed to clear profile data")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All profile data has been deleted",
	})
}

// ListWorkouts returns the workout log, newest first
func (h *ProfileHandler) ListWorkouts(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Workouts())
}

// PostWorkout logs a workout
func (h *ProfileHandler) PostWorkout(c *gin.Context) {
	var req model.Workout
	if !bindJSON(c, h.logger, &req) {
		return
	}

	workout, err := h.service.AddWorkout(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to log workout")
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// ListMeals returns the meal log, newest first
func (h *ProfileHandler) ListMeals(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Meals())
}

// PostMeal logs a meal
func (h *ProfileHandler) PostMeal(c *gin.Context) {
	var req model.Meal
	if !bindJSON(c, h.logger, &req) {
		return
	}

	meal, err := h.service.AddMeal(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to log meal")
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// ListProgress returns the progress log, newest first
func (h *ProfileHandler) ListProgress(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Progress())
}

// PostProgress records a body measurement snapshot
func (h *ProfileHandler) PostProgress(c *gin.Context) {
	var req model.ProgressSnapshot
	if !bindJSON(c, h.logger, &req) {
		return
	}

	snapshot, err := h.service.AddProgress(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to record progress")
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}
