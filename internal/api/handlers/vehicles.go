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

// VehicleService is what VehicleHandler needs from the vehicle service.
type VehicleService interface {
	CreateVehicle(ctx context.Context, req *services.CreateVehicleRequest) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, f repository.VehicleFilter) ([]*models.Vehicle, int64, error)
	GetVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, req *services.UpdateVehicleRequest) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error
	GetSummary(ctx context.Context) (*models.VehicleSummary, error)
	GetStats(ctx context.Context) (*models.FleetStats, error)
	GetDropdown(ctx context.Context) ([]models.VehicleOption, error)
}

type VehicleHandler struct {
	vehicleService VehicleService
	validator      *validator.Validate
}

func NewVehicleHandler(vehicleService VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		validator:      validator.New(),
	}
}

type vehicleQuery struct {
	Page            int    `form:"page" validate:"gte=0"`
	Limit           int    `form:"limit" validate:"gte=0,lte=100"`
	Search          string `form:"search"`
	Type            string `form:"type"`
	FuelType        string `form:"fuelType"`
	OwnershipStatus string `form:"ownershipStatus"`
	Status          string `form:"status"`
	AssignedSite    string `form:"assignedSite"`
	SortBy          string `form:"sortBy"`
	SortOrder       string `form:"sortOrder" validate:"omitempty,oneof=ASC DESC asc desc"`
}

// GetVehicles lists vehicles with filters and pagination
func (h *VehicleHandler) GetVehicles(c *gin.Context) {
	var q vehicleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}
	if err := h.validator.Struct(&q); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	page := pageOf(q.Page, q.Limit, 20)
	vehicles, total, err := h.vehicleService.ListVehicles(c.Request.Context(), repository.VehicleFilter{
		Search:          q.Search,
		Type:            q.Type,
		FuelType:        q.FuelType,
		OwnershipStatus: q.OwnershipStatus,
		Status:          q.Status,
		AssignedSite:    q.AssignedSite,
		SortBy:          q.SortBy,
		SortOrder:       q.SortOrder,
		Page:            page,
	})
	if err != nil {
		respondError(c, "Failed to retrieve vehicles", err)
		return
	}

	utils.PaginatedResponse(c, http.StatusOK, "Vehicles retrieved successfully", vehicles,
		utils.NewPagination(page.Page, page.Limit, total))
}

// GetVehicle retrieves a specific vehicle by ID
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Vehicle not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle retrieved successfully", vehicle)
}

func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req services.CreateVehicleRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to create vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Vehicle created successfully", vehicle)
}

func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req services.UpdateVehicleRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, "Failed to update vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle updated successfully", vehicle)
}

// DeleteVehicle removes a vehicle together with its trips and maintenance history
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle deleted successfully", nil)
}

func (h *VehicleHandler) GetSummary(c *gin.Context) {
	summary, err := h.vehicleService.GetSummary(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve fleet summary", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Fleet summary retrieved successfully", summary)
}

func (h *VehicleHandler) GetStats(c *gin.Context) {
	stats, err := h.vehicleService.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve fleet stats", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Fleet stats retrieved successfully", stats)
}

// GetDropdown lists active vehicles for selection inputs
func (h *VehicleHandler) GetDropdown(c *gin.Context) {
	options, err := h.vehicleService.GetDropdown(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve vehicles", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicles retrieved successfully", options)
}

// pageOf fills in the list defaults the repository would otherwise apply, so
// the pagination block echoes what was actually served.
func pageOf(page, limit, defaultLimit int) repository.Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return repository.Page{Page: page, Limit: limit}
}
