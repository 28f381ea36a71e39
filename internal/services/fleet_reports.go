package services

import (
	"context"
	"fmt"

	"erp-backend/internal/models"
)

// utilizationLimit caps the utilization report to the latest trips.
const utilizationLimit = 100

// FleetTotalsSource supplies the rows behind the fleet cost and usage
// reports.
type FleetTotalsSource interface {
	RecentTrips(ctx context.Context, limit int) ([]*models.Trip, error)
	AllVehicles(ctx context.Context) ([]*models.Vehicle, error)
	FuelConsumption(ctx context.Context) ([]models.FuelConsumption, error)
	MaintenanceCosts(ctx context.Context) ([]models.MaintenanceCost, error)
}

type FleetReportService struct {
	source FleetTotalsSource
}

func NewFleetReportService(source FleetTotalsSource) *FleetReportService {
	return &FleetReportService{source: source}
}

// GetUtilization lists the latest trips, newest first, with the vehicle
// each one used.
func (s *FleetReportService) GetUtilization(ctx context.Context) ([]models.UtilizationEntry, error) {
	trips, err := s.source.RecentTrips(ctx, utilizationLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent trips: %w", err)
	}
	vehicles, err := s.source.AllVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	index := indexVehicles(vehicles)

	entries := make([]models.UtilizationEntry, 0, len(trips))
	for _, trip := range trips {
		reg, name := vehicleLabels(index, trip.VehicleID)
		entries = append(entries, models.UtilizationEntry{
			VehicleName:        name,
			RegistrationNumber: reg,
			Destination:        trip.Destination,
			TotalKm:            trip.TotalKm,
			Date:               trip.TripDate,
		})
	}
	return entries, nil
}

func (s *FleetReportService) GetFuelConsumption(ctx context.Context) ([]models.FuelConsumption, error) {
	rows, err := s.source.FuelConsumption(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total fuel consumption: %w", err)
	}
	return rows, nil
}

func (s *FleetReportService) GetMaintenanceCosts(ctx context.Context) ([]models.MaintenanceCost, error) {
	rows, err := s.source.MaintenanceCosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total maintenance costs: %w", err)
	}
	return rows, nil
}
