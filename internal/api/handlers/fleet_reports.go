package handlers

import (
	"context"
	"net/http"

	"erp-backend/internal/models"
	"erp-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type FleetReportService interface {
	GetUtilization(ctx context.Context) ([]models.UtilizationEntry, error)
	GetFuelConsumption(ctx context.Context) ([]models.FuelConsumption, error)
	GetMaintenanceCosts(ctx context.Context) ([]models.MaintenanceCost, error)
}

type FleetReportHandler struct {
	reports FleetReportService
}

func NewFleetReportHandler(reports FleetReportService) *FleetReportHandler {
	return &FleetReportHandler{reports: reports}
}

// GetUtilization lists the most recent trips with their vehicles.
func (h *FleetReportHandler) GetUtilization(c *gin.Context) {
	entries, err := h.reports.GetUtilization(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to compute utilization report", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Utilization report retrieved successfully", entries)
}

func (h *FleetReportHandler) GetFuelConsumption(c *gin.Context) {
	rows, err := h.reports.GetFuelConsumption(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to compute fuel consumption report", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Fuel consumption report retrieved successfully", rows)
}

func (h *FleetReportHandler) GetMaintenanceCosts(c *gin.Context) {
	rows, err := h.reports.GetMaintenanceCosts(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to compute maintenance cost report", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Maintenance cost report retrieved successfully", rows)
}
