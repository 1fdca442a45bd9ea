package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/notify"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/service"
	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// ReminderHandler implements the reminder and notification endpoints
type ReminderHandler struct {
	service  *service.ReminderService
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(service *service.ReminderService, notifier notify.Notifier, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		service:  service,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// createReminderRequest is a reminder whose enabled flag defaults to true when omitted
type createReminderRequest struct {
	model.Reminder
	Enabled *bool `json:"enabled"`
}

// ListReminders returns every reminder
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Reminders())
}

// PostReminder creates a reminder
func (h *ReminderHandler) PostReminder(c *gin.Context) {
	var req createReminderRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	req.Reminder.Enabled = req.Enabled == nil || *req.Enabled

	reminder, err := h.service.Create(c.Request.Context(), req.Reminder)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create reminder")
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

// PutReminder applies a partial update to a reminder
func (h *ReminderHandler) PutReminder(c *gin.Context) {
	id := c.Param("id")

	var req model.ReminderUpdate
	if !bindJSON(c, h.logger, &req) {
		return
	}

	reminder, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update reminder")
		return
	}
	c.JSON(http.StatusOK, reminder)
}

// DeleteReminder removes a reminder
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "Failed to delete reminder")
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleReminder flips a reminder between enabled and disabled
func (h *ReminderHandler) ToggleReminder(c *gin.Context) {
	reminder, err := h.service.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to toggle reminder")
		return
	}
	c.JSON(http.StatusOK, reminder)
}

// GetTodaysReminders returns today's enabled reminders with their time status
func (h *ReminderHandler) GetTodaysReminders(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.TodaysAgenda(h.now()))
}

// GetUpcomingReminders returns reminders due within ?hours= of now
func (h *ReminderHandler) GetUpcomingReminders(c *gin.Context) {
	hours := service.DefaultUpcomingHours
	if raw := c.Query("hours"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > service.MaxUpcomingHours {
			badRequest(c, h.logger, "Invalid hours parameter",
				fmt.Errorf("hours must be an integer between 1 and %d, got %q", service.MaxUpcomingHours, raw))
			return
		}
		hours = n
	}
	c.JSON(http.StatusOK, h.service.UpcomingReminders(h.now(), hours))
}

// GetSettings returns the notification settings
func (h *ReminderHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Settings())
}

// PatchSettings merges a partial settings update
func (h *ReminderHandler) PatchSettings(c *gin.Context) {
	var req model.SettingsUpdate
	if !bindJSON(c, h.logger, &req) {
		return
	}

	settings, err := h.service.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update notification settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// RequestPermission asks the notification channel for permission to deliver alerts
func (h *ReminderHandler) RequestPermission(c *gin.Context) {
	if !h.notifier.Supported() {
		c.JSON(http.StatusOK, gin.H{"supported": false, "granted": false})
		return
	}

	granted, err := h.notifier.RequestPermission(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to request notification permission")
		return
	}

	h.logger.Info("notification permission requested", zap.Bool("granted", granted))
	c.JSON(http.StatusOK, gin.H{"supported": true, "granted": granted})
}
