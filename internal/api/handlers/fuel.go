package handlers

import (
	"context"
	"net/http"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"
	"erp-backend/internal/services"
	"erp-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FuelService interface {
	CreateFuelLog(ctx context.Context, req *services.CreateFuelLogRequest) (*models.FuelLog, error)
	ListFuelLogs(ctx context.Context, f repository.FuelFilter) ([]*models.FuelLog, int64, error)
	GetStats(ctx context.Context) (*models.FuelStats, error)
}

type FuelHandler struct {
	fuelService FuelService
	validator   *validator.Validate
}

func NewFuelHandler(fuelService FuelService) *FuelHandler {
	return &FuelHandler{
		fuelService: fuelService,
		validator:   validator.New(),
	}
}

type fuelQuery struct {
	Page      int    `form:"page" validate:"gte=0"`
	Limit     int    `form:"limit" validate:"gte=0,lte=100"`
	VehicleID string `form:"vehicleId"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=date quantityLiters totalCost createdAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=ASC DESC asc desc"`
}

func (h *FuelHandler) CreateFuelLog(c *gin.Context) {
	var req services.CreateFuelLogRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	entry, err := h.fuelService.CreateFuelLog(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to create fuel log", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Fuel log created successfully", entry)
}

func (h *FuelHandler) GetFuelLogs(c *gin.Context) {
	var q fuelQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}
	if err := h.validator.Struct(&q); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	page := pageOf(q.Page, q.Limit, 20)
	entries, total, err := h.fuelService.ListFuelLogs(c.Request.Context(), repository.FuelFilter{
		VehicleID: q.VehicleID,
		Search:    q.Search,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      page,
	})
	if err != nil {
		respondError(c, "Failed to retrieve fuel logs", err)
		return
	}

	utils.PaginatedResponse(c, http.StatusOK, "Fuel logs retrieved successfully", entries,
		utils.NewPagination(page.Page, page.Limit, total))
}

func (h *FuelHandler) GetFuelStats(c *gin.Context) {
	stats, err := h.fuelService.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve fuel statistics", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Fuel statistics retrieved successfully", stats)
}
