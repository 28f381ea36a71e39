package handlers

import (
	"context"
	"net/http"
	"strings"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"
	"erp-backend/internal/services"
	"erp-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type MaintenanceService interface {
	CreateRecord(ctx context.Context, req *services.CreateMaintenanceRequest) (*models.MaintenanceRecord, error)
	ListRecords(ctx context.Context, f repository.MaintenanceFilter) ([]*models.MaintenanceRecord, int64, error)
	GetRecord(ctx context.Context, id string) (*models.MaintenanceRecord, error)
	UpdateRecord(ctx context.Context, id string, req *services.UpdateMaintenanceRequest) (*models.MaintenanceRecord, error)
	DeleteRecord(ctx context.Context, id string) error
}

type MaintenanceHandler struct {
	maintenanceService MaintenanceService
	validator          *validator.Validate
}

func NewMaintenanceHandler(maintenanceService MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
		validator:          validator.New(),
	}
}

type maintenanceQuery struct {
	Page      int    `form:"page" validate:"gte=0"`
	Limit     int    `form:"limit" validate:"gte=0,lte=100"`
	VehicleID string `form:"vehicleId"`
	Types     string `form:"type"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=maintenanceDate costPkr createdAt type"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=ASC DESC asc desc"`
}

// splitList turns "oil_change, tyre_change" into its non-empty parts.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (h *MaintenanceHandler) GetRecords(c *gin.Context) {
	var q maintenanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}
	if err := h.validator.Struct(&q); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	page := pageOf(q.Page, q.Limit, 10)
	records, total, err := h.maintenanceService.ListRecords(c.Request.Context(), repository.MaintenanceFilter{
		VehicleID: q.VehicleID,
		Types:     splitList(q.Types),
		Search:    q.Search,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      page,
	})
	if err != nil {
		respondError(c, "Failed to retrieve maintenance records", err)
		return
	}

	utils.PaginatedResponse(c, http.StatusOK, "Maintenance records retrieved successfully", records,
		utils.NewPagination(page.Page, page.Limit, total))
}

func (h *MaintenanceHandler) GetRecord(c *gin.Context) {
	record, err := h.maintenanceService.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Maintenance record not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Maintenance record retrieved successfully", record)
}

func (h *MaintenanceHandler) CreateRecord(c *gin.Context) {
	var req services.CreateMaintenanceRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	record, err := h.maintenanceService.CreateRecord(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to create maintenance record", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Maintenance record created successfully", record)
}

func (h *MaintenanceHandler) UpdateRecord(c *gin.Context) {
	var req services.UpdateMaintenanceRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	record, err := h.maintenanceService.UpdateRecord(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, "Failed to update maintenance record", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Maintenance record updated successfully", record)
}

func (h *MaintenanceHandler) DeleteRecord(c *gin.Context) {
	if err := h.maintenanceService.DeleteRecord(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete maintenance record", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Maintenance record deleted successfully", nil)
}
