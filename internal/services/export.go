package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"
	"erp-backend/pkg/export"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Export types
const (
	ExportVehicles    = "vehicles"
	ExportTrips       = "trips"
	ExportMaintenance = "maintenance"
	ExportFuel        = "fuel"
	ExportAssignments = "assignments"
	ExportCompliance  = "compliance"
	ExportPredictions = "predictions"
)

type ExportSource interface {
	AllVehicles(ctx context.Context) ([]*models.Vehicle, error)
	AllTrips(ctx context.Context) ([]*models.Trip, error)
	AllMaintenance(ctx context.Context) ([]*models.MaintenanceRecord, error)
	AllFuelLogs(ctx context.Context) ([]*models.FuelLog, error)
	AllAssignments(ctx context.Context) ([]*models.VehicleAssignment, error)
}

// RepositorySource adapts the fleet repositories to ExportSource and
// FleetTotalsSource.
type RepositorySource struct {
	Vehicles    *repository.VehicleRepository
	Trips       *repository.TripRepository
	Maintenance *repository.MaintenanceRepository
	Fuel        *repository.FuelRepository
	Assignments *repository.AssignmentRepository
}

func (r RepositorySource) AllVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	return r.Vehicles.FindAll(ctx)
}

func (r RepositorySource) AllTrips(ctx context.Context) ([]*models.Trip, error) {
	return r.Trips.FindAll(ctx, repository.TripFilter{})
}

func (r RepositorySource) AllMaintenance(ctx context.Context) ([]*models.MaintenanceRecord, error) {
	return r.Maintenance.FindAll(ctx, time.Time{}, time.Time{})
}

func (r RepositorySource) AllFuelLogs(ctx context.Context) ([]*models.FuelLog, error) {
	return r.Fuel.FindAll(ctx)
}

func (r RepositorySource) AllAssignments(ctx context.Context) ([]*models.VehicleAssignment, error) {
	return r.Assignments.FindAll(ctx)
}

func (r RepositorySource) RecentTrips(ctx context.Context, limit int) ([]*models.Trip, error) {
	return r.Trips.Recent(ctx, limit)
}

func (r RepositorySource) FuelConsumption(ctx context.Context) ([]models.FuelConsumption, error) {
	return r.Fuel.ConsumptionByVehicle(ctx)
}

func (r RepositorySource) MaintenanceCosts(ctx context.Context) ([]models.MaintenanceCost, error) {
	return r.Maintenance.CostsByVehicle(ctx)
}

// ReportSource is the part of ReportService the exporter renders.
type ReportSource interface {
	GetComplianceAlerts(ctx context.Context) ([]models.ComplianceAlertGroup, error)
	GetMaintenancePredictions(ctx context.Context) ([]models.MaintenancePrediction, error)
}

type ExportService struct {
	source  ExportSource
	reports ReportSource
}

func NewExportService(source ExportSource, reports ReportSource) *ExportService {
	return &ExportService{source: source, reports: reports}
}

// BuildTable loads the rows for kind. Unknown kinds fail with ErrInvalidInput.
func (s *ExportService) BuildTable(ctx context.Context, kind string) (export.Table, error) {
	switch kind {
	case ExportVehicles:
		return s.vehicleTable(ctx)
	case ExportTrips:
		return s.tripTable(ctx)
	case ExportMaintenance:
		return s.maintenanceTable(ctx)
	case ExportFuel:
		return s.fuelTable(ctx)
	case ExportAssignments:
		return s.assignmentTable(ctx)
	case ExportCompliance:
		return s.complianceTable(ctx)
	case ExportPredictions:
		return s.predictionTable(ctx)
	default:
		return export.Table{}, fmt.Errorf("unknown export type %q: %w", kind, ErrInvalidInput)
	}
}

func (s *ExportService) vehicleTable(ctx context.Context) (export.Table, error) {
	vehicles, err := s.source.AllVehicles(ctx)
	if err != nil {
		return export.Table{}, fmt.Errorf("load vehicles: %w", err)
	}
	sort.SliceStable(vehicles, func(i, j int) bool {
		return vehicles[i].RegistrationNumber < vehicles[j].RegistrationNumber
	})

	t := export.Table{
		Title: "Vehicle Fleet Registry",
		Columns: []export.Column{
			{Header: "Reg #", Width: 18}, {Header: "Vehicle Name", Width: 25},
			{Header: "Make", Width: 14}, {Header: "Model", Width: 14},
			{Header: "Year", Width: 8}, {Header: "Type", Width: 14},
			{Header: "Fuel Type", Width: 12}, {Header: "Status", Width: 14},
			{Header: "Odometer (km)", Width: 15}, {Header: "Driver", Width: 20},
			{Header: "Site", Width: 20}, {Header: "Ins. Expiry", Width: 14},
			{Header: "Reg. Expiry", Width: 14}, {Header: "Fitness Expiry", Width: 14},
		},
	}
	for _, v := range vehicles {
		t.AddRow(v.RegistrationNumber, v.VehicleName, v.Make, v.Model, v.Year, v.Type,
			v.FuelType, v.Status, v.CurrentOdometerKm, v.CurrentDriverName, v.AssignedSite,
			v.InsuranceExpiry, v.RegistrationExpiry, v.FitnessExpiry)
	}
	return t, nil
}

// vehicleIndex maps ids to vehicles so history rows can show registration
// numbers without a join.
func (s *ExportService) vehicleIndex(ctx context.Context) (map[primitive.ObjectID]*models.Vehicle, error) {
	vehicles, err := s.source.AllVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	return indexVehicles(vehicles), nil
}

func indexVehicles(vehicles []*models.Vehicle) map[primitive.ObjectID]*models.Vehicle {
	index := make(map[primitive.ObjectID]*models.Vehicle, len(vehicles))
	for _, v := range vehicles {
		index[v.ID] = v
	}
	return index
}

func vehicleLabels(index map[primitive.ObjectID]*models.Vehicle, id primitive.ObjectID) (string, string) {
	if v, ok := index[id]; ok {
		return v.RegistrationNumber, v.VehicleName
	}
	return "", ""
}

func (s *ExportService) tripTable(ctx context.Context) (export.Table, error) {
	index, err := s.vehicleIndex(ctx)
	if err != nil {
		return export.Table{}, err
	}
	trips, err := s.source.AllTrips(ctx)
	if err != nil {
		return export.Table{}, fmt.Errorf("load trips: %w", err)
	}

	t := export.Table{
		Title: "Vehicle Trip Logs",
		Columns: []export.Column{
			{Header: "Date", Width: 14}, {Header: "Reg #", Width: 18},
			{Header: "Vehicle", Width: 24}, {Header: "Destination", Width: 24},
			{Header: "Purpose", Width: 20}, {Header: "Driver", Width: 20},
			{Header: "Meter Out", Width: 12}, {Header: "Meter In", Width: 12},
			{Header: "Total KM", Width: 12}, {Header: "Fuel (L)", Width: 10},
			{Header: "Fuel Cost", Width: 12}, {Header: "Status", Width: 12},
		},
	}
	for _, trip := range trips {
		reg, name := vehicleLabels(index, trip.VehicleID)
		t.AddRow(trip.TripDate, reg, name, trip.Destination, trip.PurposeOfVisit, trip.DriverName,
			trip.MeterOut, trip.MeterIn, trip.TotalKm, trip.FuelAllottedLiters, trip.FuelCostPKR, trip.Status)
	}
	return t, nil
}

func (s *ExportService) maintenanceTable(ctx context.Context) (export.Table, error) {
	index, err := s.vehicleIndex(ctx)
	if err != nil {
		return export.Table{}, err
	}
	records, err := s.source.AllMaintenance(ctx)
	if err != nil {
		return export.Table{}, fmt.Errorf("load maintenance: %w", err)
	}

	t := export.Table{
		Title: "Maintenance Records",
		Columns: []export.Column{
			{Header: "Date", Width: 14}, {Header: "Reg #", Width: 18},
			{Header: "Vehicle", Width: 24}, {Header: "Type", Width: 16},
			{Header: "Description", Width: 30}, {Header: "Cost (PKR)", Width: 14},
			{Header: "Shop / Person", Width: 20}, {Header: "Odometer", Width: 12},
			{Header: "Next Odometer", Width: 14}, {Header: "Next Due Date", Width: 14},
			{Header: "Serviced By", Width: 14},
		},
	}
	for _, m := range records {
		reg, name := vehicleLabels(index, m.VehicleID)
		t.AddRow(m.MaintenanceDate, reg, name, m.Type, m.Description, m.CostPKR, m.ShopOrPerson,
			m.OdometerAtMaintenanceKm, m.NextServiceOdometerKm, m.NextServiceDueDate, m.MaintenanceBy)
	}
	return t, nil
}

func (s *ExportService) fuelTable(ctx context.Context) (export.Table, error) {
	index, err := s.vehicleIndex(ctx)
	if err != nil {
		return export.Table{}, err
	}
	entries, err := s.source.AllFuelLogs(ctx)
	if err != nil {
		return export.Table{}, fmt.Errorf("load fuel logs: %w", err)
	}

	t := export.Table{
		Title: "Fuel Logs",
		Columns: []export.Column{
			{Header: "Date", Width: 14}, {Header: "Reg #", Width: 18},
			{Header: "Vehicle", Width: 24}, {Header: "Qty (L)", Width: 10},
			{Header: "Rate (PKR/L)", Width: 14}, {Header: "Total (PKR)", Width: 14},
			{Header: "Odometer", Width: 12}, {Header: "Station", Width: 22},
			{Header: "Payment", Width: 12},
		},
	}
	for _, f := range entries {
		reg, name := vehicleLabels(index, f.VehicleID)
		t.AddRow(f.Date, reg, name, f.QuantityLiters, f.RatePerLiter, f.TotalCost,
			f.OdometerReading, f.StationName, f.PaymentMethod)
	}
	return t, nil
}

func (s *ExportService) assignmentTable(ctx context.Context) (export.Table, error) {
	index, err := s.vehicleIndex(ctx)
	if err != nil {
		return export.Table{}, err
	}
	assignments, err := s.source.AllAssignments(ctx)
	if err != nil {
		return export.Table{}, fmt.Errorf("load assignments: %w", err)
	}

	t := export.Table{
		Title: "Vehicle Assignments",
		Columns: []export.Column{
			{Header: "Date", Width: 14}, {Header: "Reg #", Width: 18},
			{Header: "Vehicle", Width: 24}, {Header: "Assigned To", Width: 22},
			{Header: "Assigned By", Width: 22}, {Header: "Return Date", Width: 14},
			{Header: "Purpose", Width: 30}, {Header: "Status", Width: 12},
		},
	}
	for _, a := range assignments {
		reg, name := vehicleLabels(index, a.VehicleID)
		t.AddRow(a.AssignmentDate, reg, name, a.AssignedTo, a.AssignedBy, a.ReturnDate, a.Purpose, a.Status)
	}
	return t, nil
}

// ComplianceTable flattens alert groups to one row per alert.
func ComplianceTable(groups []models.ComplianceAlertGroup) export.Table {
	t := export.Table{
		Title: "Compliance Alerts",
		Columns: []export.Column{
			{Header: "Reg #", Width: 18}, {Header: "Vehicle", Width: 24},
			{Header: "Document", Width: 14}, {Header: "Expiry Date", Width: 14},
			{Header: "Status", Width: 10}, {Header: "Days Remaining", Width: 14},
		},
	}
	for _, g := range groups {
		for _, a := range g.Alerts {
			t.AddRow(g.RegistrationNumber, g.VehicleName, a.Type, a.ExpiryDate, a.Status, a.DaysRemaining)
		}
	}
	return t
}

func PredictionTable(predictions []models.MaintenancePrediction) export.Table {
	t := export.Table{
		Title: "Maintenance Forecast",
		Columns: []export.Column{
			{Header: "Reg #", Width: 18}, {Header: "Vehicle", Width: 24},
			{Header: "Last Service", Width: 14}, {Header: "Last Service Odometer", Width: 20},
			{Header: "Current Odometer", Width: 16}, {Header: "Avg km/day", Width: 12},
			{Header: "Predicted Service", Width: 16}, {Header: "Days Remaining", Width: 14},
			{Header: "Status", Width: 10}, {Header: "Basis", Width: 10},
		},
	}
	for _, p := range predictions {
		t.AddRow(p.RegistrationNumber, p.VehicleName, p.LastServiceDate, p.LastServiceOdometer,
			p.CurrentOdometer, p.AvgKmPerDay, p.PredictedServiceDate, p.DaysRemaining, p.Status, p.Basis)
	}
	return t
}

func (s *ExportService) complianceTable(ctx context.Context) (export.Table, error) {
	groups, err := s.reports.GetComplianceAlerts(ctx)
	if err != nil {
		return export.Table{}, err
	}
	return ComplianceTable(groups), nil
}

func (s *ExportService) predictionTable(ctx context.Context) (export.Table, error) {
	predictions, err := s.reports.GetMaintenancePredictions(ctx)
	if err != nil {
		return export.Table{}, err
	}
	return PredictionTable(predictions), nil
}
