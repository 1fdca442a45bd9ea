// Package audit records destructive and data-export operations.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OperationType represents the type of operation performed
type OperationType string

const (
	OperationCreate OperationType = "CREATE"
	OperationUpdate OperationType = "UPDATE"
	OperationDelete OperationType = "DELETE"
	OperationExport OperationType = "EXPORT"
)

// ResourceType represents the type of resource being accessed
type ResourceType string

const (
	ResourceProfile  ResourceType = "profile"
	ResourceReminder ResourceType = "reminder"
	ResourceSettings ResourceType = "notification_settings"
	ResourceReport   ResourceType = "report"
	ResourceBackup   ResourceType = "backup"
)

// Entry is a single audit record
type Entry struct {
	ID             string         `json:"id"`
	OperationType  OperationType  `json:"operationType"`
	ResourceType   ResourceType   `json:"resourceType"`
	ResourceID     string         `json:"resourceId"`
	Timestamp      time.Time      `json:"timestamp"`
	IPAddress      string         `json:"ipAddress,omitempty"`
	UserAgent      string         `json:"userAgent,omitempty"`
	AdditionalData map[string]any `json:"additionalData,omitempty"`
}

// Sink persists audit entries
type Sink interface {
	Write(ctx context.Context, entry Entry) error
	// Recent returns up to limit entries, newest first
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// Logger handles audit logging
type Logger struct {
	sink   Sink
	logger *zap.Logger
}

// NewLogger creates a new audit logger
func NewLogger(sink Sink, logger *zap.Logger) *Logger {
	return &Logger{
		sink:   sink,
		logger: logger,
	}
}

// Log creates an audit log entry
func (l *Logger) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	l.logger.Info("audit log entry",
		zap.String("operation", string(entry.OperationType)),
		zap.String("resource_type", string(entry.ResourceType)),
		zap.String("resource_id", entry.ResourceID),
		zap.Time("timestamp", entry.Timestamp),
		zap.String("ip_address", entry.IPAddress),
	)

	if err := l.sink.Write(ctx, entry); err != nil {
		l.logger.Error("failed to write audit log",
			zap.Error(err),
			zap.String("operation", string(entry.OperationType)),
			zap.String("resource_type", string(entry.ResourceType)),
		)
		return err
	}
	return nil
}

// LogDelete logs a DELETE operation
func (l *Logger) LogDelete(ctx context.Context, resourceType ResourceType, resourceID, ipAddress, userAgent string) error {
	return l.Log(ctx, Entry{
		OperationType: OperationDelete,
		ResourceType:  resourceType,
		ResourceID:    resourceID,
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
	})
}

// LogExport logs an EXPORT operation
func (l *Logger) LogExport(ctx context.Context, resourceType ResourceType, resourceID, ipAddress, userAgent string) error {
	return l.Log(ctx, Entry{
		OperationType: OperationExport,
		ResourceType:  resourceType,
		ResourceID:    resourceID,
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
	})
}

// GetAuditLogs retrieves the most recent audit entries
func (l *Logger) GetAuditLogs(ctx context.Context, limit int) ([]Entry, error) {
	return l.sink.Recent(ctx, limit)
}
