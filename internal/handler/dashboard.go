package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/service"
)

// DashboardHandler implements the metrics, achievements and dashboard endpoints
type DashboardHandler struct {
	service *service.DashboardService
	logger  *zap.Logger
	now     func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// GetBMI returns the BMI with its category, description and theme
func (h *DashboardHandler) GetBMI(c *gin.Context) {
	metrics, err := h.service.Metrics()
	if err != nil {
		respondError(c, h.logger, err, "Failed to compute body metrics")
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// GetAchievements returns the badge catalog with progress
func (h *DashboardHandler) GetAchievements(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Achievements(h.now()))
}

// GetDashboard returns the day's summary
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	summary, err := h.service.GetSummary(h.now())
	if err != nil {
		respondError(c, h.logger, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, summary)
}
