package handlers

import (
	"context"
	"net/http"
	"time"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"
	"erp-backend/internal/services"
	"erp-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TripService interface {
	CreateTrip(ctx context.Context, req *services.CreateTripRequest) (*models.Trip, error)
	ListTrips(ctx context.Context, f repository.TripFilter) ([]*models.Trip, int64, error)
	GetTrip(ctx context.Context, id string) (*models.Trip, error)
	UpdateTrip(ctx context.Context, id string, req *services.UpdateTripRequest) (*models.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
}

type TripHandler struct {
	tripService TripService
	validator   *validator.Validate
}

func NewTripHandler(tripService TripService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		validator:   validator.New(),
	}
}

type tripQuery struct {
	Page      int       `form:"page" validate:"gte=0"`
	Limit     int       `form:"limit" validate:"gte=0,lte=100"`
	VehicleID string    `form:"vehicleId"`
	Status    string    `form:"status" validate:"omitempty,oneof=in_progress completed cancelled"`
	Search    string    `form:"search"`
	From      time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To        time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

func (h *TripHandler) GetTrips(c *gin.Context) {
	var q tripQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}
	if err := h.validator.Struct(&q); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	page := pageOf(q.Page, q.Limit, 20)
	filter := repository.TripFilter{
		VehicleID: q.VehicleID,
		Status:    q.Status,
		Search:    q.Search,
		From:      q.From,
		Page:      page,
	}
	if !q.To.IsZero() {
		// inclusive of the whole "to" day
		filter.To = q.To.Add(24*time.Hour - time.Nanosecond)
	}

	trips, total, err := h.tripService.ListTrips(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Failed to retrieve trips", err)
		return
	}

	utils.PaginatedResponse(c, http.StatusOK, "Trips retrieved successfully", trips,
		utils.NewPagination(page.Page, page.Limit, total))
}

func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Trip not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trip retrieved successfully", trip)
}

// CreateTrip logs a trip. A trip submitted with meterIn is recorded as completed.
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req services.CreateTripRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to create trip", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Trip created successfully", trip)
}

func (h *TripHandler) UpdateTrip(c *gin.Context) {
	var req services.UpdateTripRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	trip, err := h.tripService.UpdateTrip(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, "Failed to update trip", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trip updated successfully", trip)
}

func (h *TripHandler) DeleteTrip(c *gin.Context) {
	if err := h.tripService.DeleteTrip(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete trip", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trip deleted successfully", nil)
}
