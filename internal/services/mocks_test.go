package services

import (
	"context"
	"time"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockVehicleStore struct {
	mock.Mock
}

func (m *MockVehicleStore) Create(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	if args.Error(0) == nil && vehicle.ID.IsZero() {
		vehicle.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockVehicleStore) FindByID(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleStore) FindByRegistration(ctx context.Context, reg string) (*models.Vehicle, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleStore) List(ctx context.Context, f repository.VehicleFilter) ([]*models.Vehicle, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Vehicle), args.Get(1).(int64), args.Error(2)
}

// Update echoes the input vehicle when the expectation returns (nil, nil).
func (m *MockVehicleStore) Update(ctx context.Context, id string, vehicle *models.Vehicle) (*models.Vehicle, error) {
	args := m.Called(ctx, id, vehicle)
	if args.Get(0) == nil {
		if args.Error(1) == nil {
			return vehicle, nil
		}
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVehicleStore) Dropdown(ctx context.Context) ([]models.VehicleOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VehicleOption), args.Error(1)
}

func (m *MockVehicleStore) Summary(ctx context.Context) (*models.VehicleSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleSummary), args.Error(1)
}

func (m *MockVehicleStore) Stats(ctx context.Context) (*models.FleetStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FleetStats), args.Error(1)
}

type MockVehicleHistory struct {
	mock.Mock
}

func (m *MockVehicleHistory) DeleteByVehicle(ctx context.Context, vehicleID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTripStore struct {
	mock.Mock
}

func (m *MockTripStore) Create(ctx context.Context, trip *models.Trip) error {
	return m.Called(ctx, trip).Error(0)
}

func (m *MockTripStore) FindByID(ctx context.Context, id string) (*models.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripStore) List(ctx context.Context, f repository.TripFilter) ([]*models.Trip, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Trip), args.Get(1).(int64), args.Error(2)
}

func (m *MockTripStore) Update(ctx context.Context, id string, trip *models.Trip) error {
	return m.Called(ctx, id, trip).Error(0)
}

func (m *MockTripStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockMaintenanceStore struct {
	mock.Mock
}

func (m *MockMaintenanceStore) Create(ctx context.Context, record *models.MaintenanceRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockMaintenanceStore) FindByID(ctx context.Context, id string) (*models.MaintenanceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRecord), args.Error(1)
}

func (m *MockMaintenanceStore) List(ctx context.Context, f repository.MaintenanceFilter) ([]*models.MaintenanceRecord, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.MaintenanceRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockMaintenanceStore) Update(ctx context.Context, id string, record *models.MaintenanceRecord) error {
	return m.Called(ctx, id, record).Error(0)
}

func (m *MockMaintenanceStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type MockExportSource struct {
	mock.Mock
}

func (m *MockExportSource) AllVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockExportSource) AllTrips(ctx context.Context) ([]*models.Trip, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trip), args.Error(1)
}

func (m *MockExportSource) AllMaintenance(ctx context.Context) ([]*models.MaintenanceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MaintenanceRecord), args.Error(1)
}

func (m *MockExportSource) AllFuelLogs(ctx context.Context) ([]*models.FuelLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FuelLog), args.Error(1)
}

func (m *MockExportSource) AllAssignments(ctx context.Context) ([]*models.VehicleAssignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VehicleAssignment), args.Error(1)
}

func (m *MockExportSource) RecentTrips(ctx context.Context, limit int) ([]*models.Trip, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trip), args.Error(1)
}

func (m *MockExportSource) FuelConsumption(ctx context.Context) ([]models.FuelConsumption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FuelConsumption), args.Error(1)
}

func (m *MockExportSource) MaintenanceCosts(ctx context.Context) ([]models.MaintenanceCost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceCost), args.Error(1)
}

type MockFuelStore struct {
	mock.Mock
}

func (m *MockFuelStore) Create(ctx context.Context, entry *models.FuelLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockFuelStore) List(ctx context.Context, f repository.FuelFilter) ([]*models.FuelLog, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.FuelLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockFuelStore) Stats(ctx context.Context) (*models.FuelStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FuelStats), args.Error(1)
}

type MockAssignmentStore struct {
	mock.Mock
}

func (m *MockAssignmentStore) Create(ctx context.Context, assignment *models.VehicleAssignment) error {
	return m.Called(ctx, assignment).Error(0)
}

func (m *MockAssignmentStore) FindByID(ctx context.Context, id string) (*models.VehicleAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleAssignment), args.Error(1)
}

func (m *MockAssignmentStore) List(ctx context.Context, f repository.AssignmentFilter) ([]*models.VehicleAssignment, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.VehicleAssignment), args.Get(1).(int64), args.Error(2)
}

func (m *MockAssignmentStore) Update(ctx context.Context, id string, assignment *models.VehicleAssignment) error {
	return m.Called(ctx, id, assignment).Error(0)
}

func (m *MockAssignmentStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
