package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"erp-backend/internal/models"
	"erp-backend/pkg/export"
	"erp-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReportService interface {
	GetComplianceAlerts(ctx context.Context) ([]models.ComplianceAlertGroup, error)
	GetMaintenancePredictions(ctx context.Context) ([]models.MaintenancePrediction, error)
}

type TableBuilder interface {
	BuildTable(ctx context.Context, kind string) (export.Table, error)
}

type ReportHandler struct {
	reports ReportService
	exports TableBuilder
	now     func() time.Time
}

func NewReportHandler(reports ReportService, exports TableBuilder) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports, now: time.Now}
}

// GetComplianceAlerts lists vehicles whose insurance, registration or
// fitness has lapsed or lapses within the horizon.
func (h *ReportHandler) GetComplianceAlerts(c *gin.Context) {
	groups, err := h.reports.GetComplianceAlerts(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to compute compliance alerts", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Compliance alerts retrieved successfully", groups)
}

func (h *ReportHandler) GetMaintenancePredictions(c *gin.Context) {
	predictions, err := h.reports.GetMaintenancePredictions(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to compute maintenance predictions", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Maintenance predictions retrieved successfully", predictions)
}

// Export streams a CSV or Excel file for /export/:type?format=csv|excel.
func (h *ReportHandler) Export(c *gin.Context) {
	kind := c.Param("type")

	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Unsupported export format", err)
		return
	}

	table, err := h.exports.BuildTable(c.Request.Context(), kind)
	if err != nil {
		respondError(c, "Failed to export "+kind, err)
		return
	}

	var buf bytes.Buffer
	switch format {
	case export.FormatExcel:
		err = export.WriteExcel(&buf, table)
	default:
		err = export.WriteCSV(&buf, table)
	}
	if err != nil {
		respondError(c, "Failed to render export", err)
		return
	}

	filename := export.Filename(kind, format, h.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
