package services

import (
	"context"
	"testing"
	"time"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMaintenanceService_CreateRecord(t *testing.T) {
	vehicles := new(MockVehicleStore)
	records := new(MockMaintenanceStore)
	v := storedVehicle("LEA-1")
	vehicles.On("FindByID", mock.Anything, v.ID.Hex()).Return(v, nil)
	records.On("Create", mock.Anything, mock.AnythingOfType("*models.MaintenanceRecord")).Return(nil)

	due := &models.Date{Time: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)}
	got, err := NewMaintenanceService(records, vehicles).CreateRecord(context.Background(), &CreateMaintenanceRequest{
		VehicleID:               v.ID.Hex(),
		MaintenanceDate:         models.Date{Time: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		CostPKR:                 18500,
		OdometerAtMaintenanceKm: km(40100),
		NextServiceDueDate:      due,
	})

	require.NoError(t, err)
	assert.Equal(t, v.ID, got.VehicleID)
	assert.Equal(t, models.MaintenanceTypeRoutineCheck, got.Type)
	assert.Equal(t, models.MaintenanceByExternal, got.MaintenanceBy)
	assert.Equal(t, 40100.0, *got.OdometerAtMaintenanceKm)
	assert.Equal(t, due.Time, *got.NextServiceDueDate)
}

func TestMaintenanceService_CreateUnknownVehicle(t *testing.T) {
	vehicles := new(MockVehicleStore)
	records := new(MockMaintenanceStore)
	vehicles.On("FindByID", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	_, err := NewMaintenanceService(records, vehicles).CreateRecord(context.Background(), &CreateMaintenanceRequest{
		VehicleID:       primitive.NewObjectID().Hex(),
		MaintenanceDate: models.Date{Time: time.Now()},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMaintenanceService_UpdatePartial(t *testing.T) {
	records := new(MockMaintenanceStore)
	existing := &models.MaintenanceRecord{
		ID:          primitive.NewObjectID(),
		VehicleID:   primitive.NewObjectID(),
		Type:        models.MaintenanceTypeOilChange,
		Description: "Engine oil and filter",
		CostPKR:     9000,
	}
	id := existing.ID.Hex()
	records.On("FindByID", mock.Anything, id).Return(existing, nil)
	records.On("Update", mock.Anything, id, mock.Anything).Return(nil)

	cost := 9500.0
	got, err := NewMaintenanceService(records, new(MockVehicleStore)).UpdateRecord(context.Background(), id, &UpdateMaintenanceRequest{CostPKR: &cost})

	require.NoError(t, err)
	assert.Equal(t, 9500.0, got.CostPKR)
	assert.Equal(t, "Engine oil and filter", got.Description)
	assert.Equal(t, models.MaintenanceTypeOilChange, got.Type)
}

func TestMaintenanceService_GetNotFound(t *testing.T) {
	records := new(MockMaintenanceStore)
	records.On("FindByID", mock.Anything, "507f1f77bcf86cd799439011").Return(nil, repository.ErrNotFound)

	_, err := NewMaintenanceService(records, new(MockVehicleStore)).GetRecord(context.Background(), "507f1f77bcf86cd799439011")
	assert.ErrorIs(t, err, ErrNotFound)
}
