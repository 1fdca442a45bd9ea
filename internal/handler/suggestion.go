package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/service"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/suggestion"
	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// SuggestionHandler exposes the rule-based suggestion engine
type SuggestionHandler struct {
	profiles  *service.ProfileService
	reminders *service.ReminderService
	logger    *zap.Logger
	now       func() time.Time
}

// NewSuggestionHandler creates a new SuggestionHandler
func NewSuggestionHandler(profiles *service.ProfileService, reminders *service.ReminderService, logger *zap.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		profiles:  profiles,
		reminders: reminders,
		logger:    logger,
		now:       time.Now,
	}
}

// WorkoutSuggestionResponse is today's suggestion plus the exercises it would prefill
type WorkoutSuggestionResponse struct {
	Date       types.Date              `json:"date"`
	Suggestion model.WorkoutSuggestion `json:"suggestion"`
	Exercises  []model.Exercise        `json:"exercises,omitempty"`
}

// ReminderSuggestionsResponse lists reminder drafts with the preferred time slots
type ReminderSuggestionsResponse struct {
	Reminders             []model.SuggestedReminder `json:"reminders"`
	OptimalWorkoutTime    string                    `json:"optimalWorkoutTime"`
	OptimalMealTimes      []string                  `json:"optimalMealTimes"`
	OptimalHydrationTimes []string                  `json:"optimalHydrationTimes"`
}

// dateParam reads the optional ?date=YYYY-MM-DD query parameter, defaulting to today
func (h *SuggestionHandler) dateParam(c *gin.Context) (time.Time, error) {
	now := h.now()
	raw := c.Query("date")
	if raw == "" {
		return now, nil
	}
	d, err := time.ParseInLocation(types.DateFormat, raw, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be formatted as %s: %w", types.DateFormat, err)
	}
	return d, nil
}

// GetWorkoutSuggestion returns the workout suggested for a day
func (h *SuggestionHandler) GetWorkoutSuggestion(c *gin.Context) {
	day, err := h.dateParam(c)
	if err != nil {
		badRequest(c, h.logger, "Invalid date parameter", err)
		return
	}

	c.JSON(http.StatusOK, WorkoutSuggestionResponse{
		Date:       types.Date{Time: day},
		Suggestion: suggestion.SuggestWorkout(h.profiles.Profile(), day),
	})
}

// ApplyWorkoutSuggestion converts the day's suggestion into pending exercise entries
func (h *SuggestionHandler) ApplyWorkoutSuggestion(c *gin.Context) {
	day, err := h.dateParam(c)
	if err != nil {
		badRequest(c, h.logger, "Invalid date parameter", err)
		return
	}

	s := suggestion.SuggestWorkout(h.profiles.Profile(), day)
	if s.Type == suggestion.TypeInfo {
		respondError(c, h.logger, service.ErrNoProfile, "Profile is incomplete")
		return
	}

	c.JSON(http.StatusOK, WorkoutSuggestionResponse{
		Date:       types.Date{Time: day},
		Suggestion: s,
		Exercises:  suggestion.ApplySuggestedWorkout(s),
	})
}

// GetDietSuggestion returns the daily diet target
func (h *SuggestionHandler) GetDietSuggestion(c *gin.Context) {
	profile := h.profiles.Profile()
	if profile == nil {
		respondError(c, h.logger, service.ErrNoProfile, "No profile has been created")
		return
	}

	diet, ok := suggestion.SuggestDiet(profile)
	if !ok {
		respondError(c, h.logger, fmt.Errorf("no diet rule for goal %q: %w", profile.Goal, service.ErrNotFound), "No diet suggestion available")
		return
	}
	c.JSON(http.StatusOK, diet)
}

// GetFoodSuggestions returns the static food list for ?meal_type=
func (h *SuggestionHandler) GetFoodSuggestions(c *gin.Context) {
	mealType := model.MealType(c.Query("meal_type"))
	if mealType == "" {
		badRequest(c, h.logger, "Missing meal_type parameter", fmt.Errorf("meal_type is required"))
		return
	}
	c.JSON(http.StatusOK, suggestion.SuggestFoodsForMealType(h.profiles.Profile(), mealType))
}

// GetMealSuggestion returns foods tailored to goal, diet and body type
func (h *SuggestionHandler) GetMealSuggestion(c *gin.Context) {
	profile := h.profiles.Profile()
	if profile == nil {
		respondError(c, h.logger, service.ErrNoProfile, "No profile has been created")
		return
	}
	c.JSON(http.StatusOK, suggestion.SuggestMealFoods(profile))
}

// GetReminderSuggestions returns reminder drafts built from the profile
func (h *SuggestionHandler) GetReminderSuggestions(c *gin.Context) {
	profile := h.profiles.Profile()
	if profile == nil {
		respondError(c, h.logger, service.ErrNoProfile, "No profile has been created")
		return
	}

	c.JSON(http.StatusOK, ReminderSuggestionsResponse{
		Reminders:             suggestion.SuggestReminders(profile),
		OptimalWorkoutTime:    suggestion.OptimalWorkoutTime(profile),
		OptimalMealTimes:      suggestion.OptimalMealTimes(profile),
		OptimalHydrationTimes: suggestion.OptimalHydrationTimes(profile),
	})
}

// ApplyReminderSuggestion turns a suggested reminder into a stored reminder
func (h *SuggestionHandler) ApplyReminderSuggestion(c *gin.Context) {
	var req model.SuggestedReminder
	if !bindJSON(c, h.logger, &req) {
		return
	}

	reminder, err := h.reminders.Create(c.Request.Context(), suggestion.ApplySuggestedReminder(req))
	if err != nil {
		respondError(c, h.logger, err, "Failed to create reminder")
		return
	}

	h.logger.Info("suggested reminder accepted", zap.String("reminder_id", reminder.ID))
	c.JSON(http.StatusCreated, reminder)
}
