package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether the storage backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler implements the health check endpoint
type HealthHandler struct {
	storage Pinger
	backend string
	logger  *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. storage may be nil for the in-memory backend.
func NewHealthHandler(storage Pinger, backend string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		backend: backend,
		logger:  logger,
	}
}

// GetHealth checks storage connectivity
func (h *HealthHandler) GetHealth(c *gin.Context) {
	if h.storage != nil {
		if err := h.storage.Ping(c.Request.Context()); err != nil {
			h.logger.Error("health check failed: storage unreachable", zap.Error(err), zap.String("backend", h.backend))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"storage": h.backend,
				"error":   err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"storage": h.backend,
		"service": "fitflow-backend",
		"version": "1.0.0",
	})
}
