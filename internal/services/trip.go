package services

import (
	"context"
	"errors"
	"fmt"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"
	"erp-backend/pkg/logger"

	log "github.com/sirupsen/logrus"
)

type TripStore interface {
	Create(ctx context.Context, trip *models.Trip) error
	FindByID(ctx context.Context, id string) (*models.Trip, error)
	List(ctx context.Context, f repository.TripFilter) ([]*models.Trip, int64, error)
	Update(ctx context.Context, id string, trip *models.Trip) error
	Delete(ctx context.Context, id string) error
}

// VehicleLookup resolves the vehicle a trip or maintenance record refers to.
type VehicleLookup interface {
	FindByID(ctx context.Context, id string) (*models.Vehicle, error)
}

type TripService struct {
	trips    TripStore
	vehicles VehicleLookup
	log      *log.Entry
}

func NewTripService(trips TripStore, vehicles VehicleLookup) *TripService {
	return &TripService{
		trips:    trips,
		vehicles: vehicles,
		log:      logger.New("trips"),
	}
}

type CreateTripRequest struct {
	VehicleID          string      `json:"vehicleId" validate:"required,len=24,hexadecimal"`
	Destination        string      `json:"destination" validate:"required,max=200"`
	PurposeOfVisit     string      `json:"purposeOfVisit,omitempty"`
	TripDate           models.Date `json:"tripDate"`
	TimeOut            string      `json:"timeOut,omitempty"`
	TimeIn             string      `json:"timeIn,omitempty"`
	MeterOut           float64     `json:"meterOut" validate:"gte=0"`
	MeterIn            *float64    `json:"meterIn,omitempty" validate:"omitempty,gte=0"`
	DriverName         string      `json:"driverName,omitempty"`
	PersonTravelList   []string    `json:"personTravelList,omitempty"`
	FuelAllottedLiters *float64    `json:"fuelAllottedLiters,omitempty" validate:"omitempty,gte=0"`
	FuelCostPKR        *float64    `json:"fuelCostPkr,omitempty" validate:"omitempty,gte=0"`
}

type UpdateTripRequest struct {
	VehicleID          *string      `json:"vehicleId,omitempty" validate:"omitempty,len=24,hexadecimal"`
	Destination        *string      `json:"destination,omitempty" validate:"omitempty,min=1,max=200"`
	PurposeOfVisit     *string      `json:"purposeOfVisit,omitempty"`
	TripDate           *models.Date `json:"tripDate,omitempty"`
	TimeOut            *string      `json:"timeOut,omitempty"`
	TimeIn             *string      `json:"timeIn,omitempty"`
	MeterOut           *float64     `json:"meterOut,omitempty" validate:"omitempty,gte=0"`
	MeterIn            *float64     `json:"meterIn,omitempty" validate:"omitempty,gte=0"`
	DriverName         *string      `json:"driverName,omitempty"`
	PersonTravelList   []string     `json:"personTravelList,omitempty"`
	FuelAllottedLiters *float64     `json:"fuelAllottedLiters,omitempty" validate:"omitempty,gte=0"`
	FuelCostPKR        *float64     `json:"fuelCostPkr,omitempty" validate:"omitempty,gte=0"`
	Status             *string      `json:"status,omitempty" validate:"omitempty,oneof=in_progress completed cancelled"`
}

// resolveVehicle maps an unknown vehicle to a validation-style error so the
// caller sees 400 rather than 404 for the trip itself.
func resolveVehicle(ctx context.Context, vehicles VehicleLookup, id string) (*models.Vehicle, error) {
	vehicle, err := vehicles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, fmt.Errorf("vehicle %s: %w", id, ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to resolve vehicle %s: %w", id, err)
	}
	return vehicle, nil
}

func (s *TripService) CreateTrip(ctx context.Context, req *CreateTripRequest) (*models.Trip, error) {
	if req.TripDate.IsZero() {
		return nil, fmt.Errorf("tripDate is required: %w", ErrInvalidInput)
	}
	if req.MeterIn != nil && *req.MeterIn < req.MeterOut {
		return nil, fmt.Errorf("meterIn %.1f is below meterOut %.1f: %w", *req.MeterIn, req.MeterOut, ErrInvalidInput)
	}

	vehicle, err := resolveVehicle(ctx, s.vehicles, req.VehicleID)
	if err != nil {
		return nil, err
	}

	trip := &models.Trip{
		VehicleID:          vehicle.ID,
		Destination:        req.Destination,
		PurposeOfVisit:     req.PurposeOfVisit,
		TripDate:           req.TripDate.Time,
		TimeOut:            req.TimeOut,
		TimeIn:             req.TimeIn,
		MeterOut:           req.MeterOut,
		MeterIn:            req.MeterIn,
		TotalKm:            models.TripDistance(req.MeterOut, req.MeterIn),
		DriverName:         req.DriverName,
		PersonTravelList:   req.PersonTravelList,
		FuelAllottedLiters: req.FuelAllottedLiters,
		FuelCostPKR:        req.FuelCostPKR,
		Status:             models.TripStatusInProgress,
	}
	if req.MeterIn != nil {
		trip.Status = models.TripStatusCompleted
	}

	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	s.log.WithFields(log.Fields{
		"trip_id":    trip.ID.Hex(),
		"vehicle_id": trip.VehicleID.Hex(),
		"total_km":   trip.TotalKm,
	}).Info("Trip logged")
	return trip, nil
}

func (s *TripService) ListTrips(ctx context.Context, f repository.TripFilter) ([]*models.Trip, int64, error) {
	trips, total, err := s.trips.List(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trips: %w", err)
	}
	return trips, total, nil
}

func (s *TripService) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	trip, err := s.trips.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip %s: %w", id, err)
	}
	return trip, nil
}

// UpdateTrip applies a partial update. Supplying meterIn closes the trip
// and recomputes totalKm against the (possibly updated) meterOut.
func (s *TripService) UpdateTrip(ctx context.Context, id string, req *UpdateTripRequest) (*models.Trip, error) {
	trip, err := s.trips.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip %s: %w", id, err)
	}

	if req.VehicleID != nil && *req.VehicleID != trip.VehicleID.Hex() {
		vehicle, err := resolveVehicle(ctx, s.vehicles, *req.VehicleID)
		if err != nil {
			return nil, err
		}
		trip.VehicleID = vehicle.ID
	}
	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.PurposeOfVisit != nil {
		trip.PurposeOfVisit = *req.PurposeOfVisit
	}
	if req.TripDate != nil {
		trip.TripDate = req.TripDate.Time
	}
	if req.TimeOut != nil {
		trip.TimeOut = *req.TimeOut
	}
	if req.TimeIn != nil {
		trip.TimeIn = *req.TimeIn
	}
	if req.MeterOut != nil {
		trip.MeterOut = *req.MeterOut
	}
	if req.DriverName != nil {
		trip.DriverName = *req.DriverName
	}
	if req.PersonTravelList != nil {
		trip.PersonTravelList = req.PersonTravelList
	}
	if req.FuelAllottedLiters != nil {
		trip.FuelAllottedLiters = req.FuelAllottedLiters
	}
	if req.FuelCostPKR != nil {
		trip.FuelCostPKR = req.FuelCostPKR
	}
	if req.MeterIn != nil {
		trip.MeterIn = req.MeterIn
		if trip.Status == models.TripStatusInProgress {
			trip.Status = models.TripStatusCompleted
		}
	}
	if req.Status != nil {
		trip.Status = *req.Status
	}

	if trip.MeterIn != nil && *trip.MeterIn < trip.MeterOut {
		return nil, fmt.Errorf("meterIn %.1f is below meterOut %.1f: %w", *trip.MeterIn, trip.MeterOut, ErrInvalidInput)
	}
	trip.TotalKm = models.TripDistance(trip.MeterOut, trip.MeterIn)

	if err := s.trips.Update(ctx, id, trip); err != nil {
		return nil, fmt.Errorf("failed to update trip %s: %w", id, err)
	}
	return trip, nil
}

func (s *TripService) DeleteTrip(ctx context.Context, id string) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete trip %s: %w", id, err)
	}
	return nil
}
