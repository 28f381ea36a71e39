package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"
	"erp-backend/internal/services"
	"erp-backend/pkg/export"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// doJSON sends body (if any) as JSON and returns the recorder.
func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Error      any             `json:"error"`
	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	} `json:"pagination"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

type MockVehicleService struct {
	mock.Mock
}

func (m *MockVehicleService) CreateVehicle(ctx context.Context, req *services.CreateVehicleRequest) (*models.Vehicle, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) ListVehicles(ctx context.Context, f repository.VehicleFilter) ([]*models.Vehicle, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Vehicle), args.Get(1).(int64), args.Error(2)
}

func (m *MockVehicleService) GetVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) UpdateVehicle(ctx context.Context, id string, req *services.UpdateVehicleRequest) (*models.Vehicle, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) DeleteVehicle(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVehicleService) GetSummary(ctx context.Context) (*models.VehicleSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleSummary), args.Error(1)
}

func (m *MockVehicleService) GetStats(ctx context.Context) (*models.FleetStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FleetStats), args.Error(1)
}

func (m *MockVehicleService) GetDropdown(ctx context.Context) ([]models.VehicleOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VehicleOption), args.Error(1)
}

type MockTripService struct {
	mock.Mock
}

func (m *MockTripService) CreateTrip(ctx context.Context, req *services.CreateTripRequest) (*models.Trip, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripService) ListTrips(ctx context.Context, f repository.TripFilter) ([]*models.Trip, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Trip), args.Get(1).(int64), args.Error(2)
}

func (m *MockTripService) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripService) UpdateTrip(ctx context.Context, id string, req *services.UpdateTripRequest) (*models.Trip, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripService) DeleteTrip(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockMaintenanceService struct {
	mock.Mock
}

func (m *MockMaintenanceService) CreateRecord(ctx context.Context, req *services.CreateMaintenanceRequest) (*models.MaintenanceRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRecord), args.Error(1)
}

func (m *MockMaintenanceService) ListRecords(ctx context.Context, f repository.MaintenanceFilter) ([]*models.MaintenanceRecord, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.MaintenanceRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockMaintenanceService) GetRecord(ctx context.Context, id string) (*models.MaintenanceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRecord), args.Error(1)
}

func (m *MockMaintenanceService) UpdateRecord(ctx context.Context, id string, req *services.UpdateMaintenanceRequest) (*models.MaintenanceRecord, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRecord), args.Error(1)
}

func (m *MockMaintenanceService) DeleteRecord(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req *services.LoginRequest) (*services.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResponse), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) GetUserProfile(ctx context.Context, userID string) (*models.AuthUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthUser), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GetComplianceAlerts(ctx context.Context) ([]models.ComplianceAlertGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ComplianceAlertGroup), args.Error(1)
}

func (m *MockReportService) GetMaintenancePredictions(ctx context.Context) ([]models.MaintenancePrediction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenancePrediction), args.Error(1)
}

type MockTableBuilder struct {
	mock.Mock
}

func (m *MockTableBuilder) BuildTable(ctx context.Context, kind string) (export.Table, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(export.Table), args.Error(1)
}

type MockFuelService struct {
	mock.Mock
}

func (m *MockFuelService) CreateFuelLog(ctx context.Context, req *services.CreateFuelLogRequest) (*models.FuelLog, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FuelLog), args.Error(1)
}

func (m *MockFuelService) ListFuelLogs(ctx context.Context, f repository.FuelFilter) ([]*models.FuelLog, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.FuelLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockFuelService) GetStats(ctx context.Context) (*models.FuelStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FuelStats), args.Error(1)
}

type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) CreateAssignment(ctx context.Context, req *services.CreateAssignmentRequest) (*models.VehicleAssignment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleAssignment), args.Error(1)
}

func (m *MockAssignmentService) ListAssignments(ctx context.Context, f repository.AssignmentFilter) ([]*models.VehicleAssignment, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.VehicleAssignment), args.Get(1).(int64), args.Error(2)
}

func (m *MockAssignmentService) GetAssignment(ctx context.Context, id string) (*models.VehicleAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleAssignment), args.Error(1)
}

func (m *MockAssignmentService) UpdateAssignment(ctx context.Context, id string, req *services.UpdateAssignmentRequest) (*models.VehicleAssignment, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleAssignment), args.Error(1)
}

func (m *MockAssignmentService) DeleteAssignment(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockFleetReportService struct {
	mock.Mock
}

func (m *MockFleetReportService) GetUtilization(ctx context.Context) ([]models.UtilizationEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UtilizationEntry), args.Error(1)
}

func (m *MockFleetReportService) GetFuelConsumption(ctx context.Context) ([]models.FuelConsumption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FuelConsumption), args.Error(1)
}

func (m *MockFleetReportService) GetMaintenanceCosts(ctx context.Context) ([]models.MaintenanceCost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceCost), args.Error(1)
}
