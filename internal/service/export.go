package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/audit"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/azure"
	"github.com/vcscsvcscs/fitflow/apps/backend/pkg/model"
)

// DataExport is the portable copy of everything the installation stores
type DataExport struct {
	ExportedAt time.Time                  `json:"exportedAt"`
	Profile    *model.UserProfile         `json:"profile"`
	Workouts   []model.Workout            `json:"workouts"`
	Meals      []model.Meal               `json:"meals"`
	Progress   []model.ProgressSnapshot   `json:"progress"`
	Reminders  []model.Reminder           `json:"reminders"`
	Settings   model.NotificationSettings `json:"settings"`
}

// ExportService produces data exports and stores backups
type ExportService struct {
	profiles    *ProfileService
	reminders   *ReminderService
	blobClient  azure.BlobStorage
	auditLogger *audit.Logger
	logger      *zap.Logger
	now         func() time.Time
}

// NewExportService creates a new ExportService
func NewExportService(
	profiles *ProfileService,
	reminders *ReminderService,
	blobClient azure.BlobStorage,
	auditLogger *audit.Logger,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		profiles:    profiles,
		reminders:   reminders,
		blobClient:  blobClient,
		auditLogger: auditLogger,
		logger:      logger,
		now:         time.Now,
	}
}

// Export collects the current state
func (s *ExportService) Export() DataExport {
	snap := s.profiles.Snapshot()
	return DataExport{
		ExportedAt: s.now(),
		Profile:    snap.Profile,
		Workouts:   snap.Workouts,
		Meals:      snap.Meals,
		Progress:   snap.Progress,
		Reminders:  s.reminders.Reminders(),
		Settings:   s.reminders.Settings(),
	}
}

// ExportJSON returns the export as indented JSON
func (s *ExportService) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s.Export(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return data, nil
}

// Backup uploads the export to blob storage and returns the blob name
func (s *ExportService) Backup(ctx context.Context, ipAddress, userAgent string) (string, error) {
	data, err := s.ExportJSON()
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("fitflow_%s.json", s.now().UTC().Format("20060102T150405Z"))
	blobPath, err := s.blobClient.UploadBackup(ctx, filename, data)
	if err != nil {
		s.logger.Error("failed to upload backup", zap.Error(err))
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}

	if s.auditLogger != nil {
		if err := s.auditLogger.LogExport(ctx, audit.ResourceBackup, blobPath, ipAddress, userAgent); err != nil {
			s.logger.Warn("failed to write audit log for backup", zap.Error(err))
		}
	}

	s.logger.Info("backup stored successfully",
		zap.String("blob_path", blobPath),
		zap.Int("size_bytes", len(data)),
	)
	return blobPath, nil
}
