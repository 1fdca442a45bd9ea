package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/azure"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/service"
)

// ReportHandler implements the report and export endpoints
type ReportHandler struct {
	reports *service.ReportService
	exports *service.ExportService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *service.ReportService, exports *service.ExportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		exports: exports,
		logger:  logger,
	}
}

// ReportResponse describes a stored progress report
type ReportResponse struct {
	ReportID    types.UUID `json:"reportId"`
	BlobName    string     `json:"blobName"`
	DownloadURL string     `json:"downloadUrl"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

// BackupResponse describes a stored backup
type BackupResponse struct {
	BlobName  string    `json:"blobName"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostProgressReport renders the progress report and uploads it
func (h *ReportHandler) PostProgressReport(c *gin.Context) {
	blobName, err := h.reports.GenerateProgressReport(c.Request.Context(), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, h.logger, err, "Failed to generate report")
		return
	}

	file := strings.TrimPrefix(blobName, azure.ReportsPrefix)
	reportID, err := parseReportID(file)
	if err != nil {
		respondError(c, h.logger, err, "Failed to generate report")
		return
	}

	c.JSON(http.StatusCreated, ReportResponse{
		ReportID:    reportID,
		BlobName:    blobName,
		DownloadURL: "/api/v1/reports/" + file,
		GeneratedAt: time.Now().UTC(),
	})
}

// GetReport downloads a stored report by file name
func (h *ReportHandler) GetReport(c *gin.Context) {
	file := c.Param("file")
	reportID, err := parseReportID(file)
	if err != nil {
		badRequest(c, h.logger, "Invalid report name", err)
		return
	}

	pdfBytes, err := h.reports.GetReport(c.Request.Context(), azure.ReportsPrefix+file)
	if err != nil {
		h.logger.Error("failed to get report",
			zap.Error(err),
			zap.String("report_id", uuid.UUID(reportID).String()),
		)
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    CodeNotFound,
			Message: "Report not found",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=fitflow_report_%s", file))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// parseReportID extracts the report UUID from a "<uuid>_<date>.pdf" file name
func parseReportID(file string) (types.UUID, error) {
	id, rest, ok := strings.Cut(file, "_")
	if !ok || !strings.HasSuffix(rest, ".pdf") || strings.Contains(rest, "/") {
		return types.UUID{}, fmt.Errorf("report name %q is not <id>_<date>.pdf: %w", file, service.ErrValidation)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return types.UUID{}, fmt.Errorf("report id %q: %w", id, service.ErrValidation)
	}
	return types.UUID(parsed), nil
}

// GetExport returns every stored record as a JSON download
func (h *ReportHandler) GetExport(c *gin.Context) {
	data, err := h.exports.ExportJSON()
	if err != nil {
		respondError(c, h.logger, err, "Failed to export data")
		return
	}

	filename := fmt.Sprintf("fitflow_export_%s.json", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// PostBackup uploads the export to blob storage
func (h *ReportHandler) PostBackup(c *gin.Context) {
	blobName, err := h.exports.Backup(c.Request.Context(), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, h.logger, err, "Failed to create backup")
		return
	}

	c.JSON(http.StatusCreated, BackupResponse{
		BlobName:  blobName,
		CreatedAt: time.Now().UTC(),
	})
}
