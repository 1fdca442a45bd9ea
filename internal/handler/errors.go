package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/service"
)

// Error codes returned in ErrorResponse.Code
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeProfileRequired = "PROFILE_REQUIRED"
	CodeInternal        = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

func stringPtr(s string) *string {
	return &s
}

// respondError maps a service error onto a status code and the standard error body
func respondError(c *gin.Context, logger *zap.Logger, err error, message string) {
	status, code := http.StatusInternalServerError, CodeInternal
	switch {
	case errors.Is(err, service.ErrValidation):
		status, code = http.StatusBadRequest, CodeValidation
	case errors.Is(err, service.ErrNotFound):
		status, code = http.StatusNotFound, CodeNotFound
	case errors.Is(err, service.ErrNoProfile):
		status, code = http.StatusConflict, CodeProfileRequired
	}

	if status >= http.StatusInternalServerError {
		logger.Error(message, zap.Error(err), zap.String("path", c.FullPath()))
		_ = c.Error(err)
	} else {
		logger.Warn(message, zap.Error(err), zap.String("path", c.FullPath()))
	}

	c.JSON(status, ErrorResponse{
		Code:    code,
		Message: message,
		Details: stringPtr(err.Error()),
	})
}

// badRequest writes a VALIDATION_ERROR response for malformed input
func badRequest(c *gin.Context, logger *zap.Logger, message string, err error) {
	logger.Warn(message, zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    CodeValidation,
		Message: message,
		Details: stringPtr(err.Error()),
	})
}

// bindJSON decodes the request body or writes a VALIDATION_ERROR response
func bindJSON(c *gin.Context, logger *zap.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, logger, "Invalid request body", err)
		return false
	}
	return true
}
