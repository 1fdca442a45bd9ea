package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups every endpoint handler for registration
type Handlers struct {
	Health      *HealthHandler
	Profile     *ProfileHandler
	Dashboard   *DashboardHandler
	Suggestions *SuggestionHandler
	Reminders   *ReminderHandler
	Reports     *ReportHandler
	OpenAPI     gin.HandlerFunc
}

// RegisterRoutes mounts the health check, the OpenAPI document and the /api/v1 group
func RegisterRoutes(r gin.IRouter, h Handlers) {
	r.GET("/health", h.Health.GetHealth)
	if h.OpenAPI != nil {
		r.GET("/openapi.json", h.OpenAPI)
	}

	v1 := r.Group("/api/v1")

	v1.GET("/profile", h.Profile.GetProfile)
	v1.PUT("/profile", h.Profile.PutProfile)
	v1.PATCH("/profile", h.Profile.PatchProfile)
	v1.DELETE("/profile", h.Profile.DeleteProfile)
	v1.GET("/workouts", h.Profile.ListWorkouts)
	v1.POST("/workouts", h.Profile.PostWorkout)
	v1.GET("/meals", h.Profile.ListMeals)
	v1.POST("/meals", h.Profile.PostMeal)
	v1.GET("/progress", h.Profile.ListProgress)
	v1.POST("/progress", h.Profile.PostProgress)

	v1.GET("/metrics/bmi", h.Dashboard.GetBMI)
	v1.GET("/achievements", h.Dashboard.GetAchievements)
	v1.GET("/dashboard", h.Dashboard.GetDashboard)

	v1.GET("/suggestions/workout", h.Suggestions.GetWorkoutSuggestion)
	v1.POST("/suggestions/workout/apply", h.Suggestions.ApplyWorkoutSuggestion)
	v1.GET("/suggestions/diet", h.Suggestions.GetDietSuggestion)
	v1.GET("/suggestions/foods", h.Suggestions.GetFoodSuggestions)
	v1.GET("/suggestions/meal", h.Suggestions.GetMealSuggestion)
	v1.GET("/suggestions/reminders", h.Suggestions.GetReminderSuggestions)
	v1.POST("/suggestions/reminders/apply", h.Suggestions.ApplyReminderSuggestion)

	v1.GET("/reminders", h.Reminders.ListReminders)
	v1.POST("/reminders", h.Reminders.PostReminder)
	v1.GET("/reminders/today", h.Reminders.GetTodaysReminders)
	v1.GET("/reminders/upcoming", h.Reminders.GetUpcomingReminders)
	v1.PUT("/reminders/:id", h.Reminders.PutReminder)
	v1.DELETE("/reminders/:id", h.Reminders.DeleteReminder)
	v1.POST("/reminders/:id/toggle", h.Reminders.ToggleReminder)
	v1.GET("/notifications/settings", h.Reminders.GetSettings)
	v1.PATCH("/notifications/settings", h.Reminders.PatchSettings)
	v1.POST("/notifications/permission", h.Reminders.RequestPermission)

	v1.POST("/reports/progress", h.Reports.PostProgressReport)
	v1.GET("/reports/:file", h.Reports.GetReport)
	v1.GET("/export", h.Reports.GetExport)
	v1.POST("/export/backup", h.Reports.PostBackup)
}
