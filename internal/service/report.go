package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/achievement"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/audit"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/azure"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/pdf"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/suggestion"
)

// ReportService renders progress reports and stores them in blob storage
type ReportService struct {
	profiles    *ProfileService
	blobClient  azure.BlobStorage
	pdfGen      *pdf.PDFGenerator
	auditLogger *audit.Logger
	logger      *zap.Logger
	now         func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	profiles *ProfileService,
	blobClient azure.BlobStorage,
	pdfGen *pdf.PDFGenerator,
	auditLogger *audit.Logger,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		profiles:    profiles,
		blobClient:  blobClient,
		pdfGen:      pdfGen,
		auditLogger: auditLogger,
		logger:      logger,
		now:         time.Now,
	}
}

// GenerateProgressReport renders the whole history into a PDF, uploads it
// and returns the blob name
func (s *ReportService) GenerateProgressReport(ctx context.Context, ipAddress, userAgent string) (string, error) {
	snap := s.profiles.Snapshot()
	if snap.Profile == nil {
		return "", ErrNoProfile
	}
	profile := snap.Profile
	now := s.now()
	reportID := uuid.New().String()

	s.logger.Info("generating progress report",
		zap.String("report_id", reportID),
		zap.String("profile_id", profile.ID),
	)

	reportData := &pdf.ReportData{
		UserName:     profile.Name,
		DateRange:    fmt.Sprintf("%s a %s", profile.CreatedAt.Format("2006-01-02"), now.Format("2006-01-02")),
		GeneratedAt:  now,
		Profile:      profile,
		Stats:        ComputeProgressStats(snap.Progress),
		Workouts:     snap.Workouts,
		Meals:        snap.Meals,
		Progress:     snap.Progress,
		Achievements: achievement.Evaluate(achievementInput(snap), now),
	}
	if metrics, err := bodyMetrics(profile); err == nil {
		reportData.BMI = metrics.BMI
		reportData.BMILabel = metrics.Category.Label
	}
	if diet, ok := suggestion.SuggestDiet(profile); ok {
		reportData.Diet = &diet
	}

	pdfBytes, err := s.pdfGen.Generate(reportData)
	if err != nil {
		s.logger.Error("failed to generate PDF", zap.Error(err), zap.String("report_id", reportID))
		return "", fmt.Errorf("failed to generate PDF: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.pdf", reportID, now.Format("20060102"))
	blobPath, err := s.blobClient.UploadPDF(ctx, filename, pdfBytes)
	if err != nil {
		s.logger.Error("failed to upload PDF to blob storage", zap.Error(err), zap.String("report_id", reportID))
		return "", fmt.Errorf("failed to upload PDF: %w", err)
	}

	if s.auditLogger != nil {
		if err := s.auditLogger.LogExport(ctx, audit.ResourceReport, blobPath, ipAddress, userAgent); err != nil {
			s.logger.Warn("failed to write audit log for report", zap.Error(err))
		}
	}

	s.logger.Info("progress report generated successfully",
		zap.String("report_id", reportID),
		zap.String("blob_path", blobPath),
	)
	return blobPath, nil
}

// GetReport downloads a previously generated report
func (s *ReportService) GetReport(ctx context.Context, blobPath string) ([]byte, error) {
	if !strings.HasPrefix(blobPath, azure.ReportsPrefix) || blobPath == azure.ReportsPrefix {
		return nil, validationError("report name must start with %q", azure.ReportsPrefix)
	}

	pdfBytes, err := s.blobClient.Download(ctx, blobPath)
	if err != nil {
		s.logger.Error("failed to download PDF from blob storage", zap.Error(err), zap.String("blob_path", blobPath))
		return nil, fmt.Errorf("failed to download PDF: %w", err)
	}
	return pdfBytes, nil
}
