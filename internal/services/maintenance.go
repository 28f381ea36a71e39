package services

import (
	"context"
	"fmt"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"
	"erp-backend/pkg/logger"

	log "github.com/sirupsen/logrus"
)

type MaintenanceStore interface {
	Create(ctx context.Context, record *models.MaintenanceRecord) error
	FindByID(ctx context.Context, id string) (*models.MaintenanceRecord, error)
	List(ctx context.Context, f repository.MaintenanceFilter) ([]*models.MaintenanceRecord, int64, error)
	Update(ctx context.Context, id string, record *models.MaintenanceRecord) error
	Delete(ctx context.Context, id string) error
}

type MaintenanceService struct {
	records  MaintenanceStore
	vehicles VehicleLookup
	log      *log.Entry
}

func NewMaintenanceService(records MaintenanceStore, vehicles VehicleLookup) *MaintenanceService {
	return &MaintenanceService{
		records:  records,
		vehicles: vehicles,
		log:      logger.New("maintenance"),
	}
}


type CreateMaintenanceRequest struct {
	VehicleID               string       `json:"vehicleId" validate:"required,len=24,hexadecimal"`
	Type                    string       `json:"type,omitempty" validate:"omitempty,oneof=oil_change tyre_change brake_service engine_repair body_work electrical ac_service routine_check major_service other"`
	Description             string       `json:"description,omitempty" validate:"max=1000"`
	MaintenanceDate         models.Date  `json:"maintenanceDate"`
	CostPKR                 float64      `json:"costPkr" validate:"gte=0"`
	ShopOrPerson            string       `json:"shopOrPerson,omitempty"`
	OdometerAtMaintenanceKm *float64     `json:"odometerAtMaintenanceKm,omitempty" validate:"omitempty,gte=0"`
	NextServiceOdometerKm   *float64     `json:"nextServiceOdometerKm,omitempty" validate:"omitempty,gte=0"`
	NextServiceDueDate      *models.Date `json:"nextServiceDueDate,omitempty"`
	MaintenanceBy           string       `json:"maintenanceBy,omitempty" validate:"omitempty,oneof=internal external dealership"`
	DocumentURLs            []string     `json:"documentUrls,omitempty" validate:"omitempty,dive,url"`
}

type UpdateMaintenanceRequest struct {
	VehicleID               *string      `json:"vehicleId,omitempty" validate:"omitempty,len=24,hexadecimal"`
	Type                    *string      `json:"type,omitempty" validate:"omitempty,oneof=oil_change tyre_change brake_service engine_repair body_work electrical ac_service routine_check major_service other"`
	Description             *string      `json:"description,omitempty" validate:"omitempty,max=1000"`
	MaintenanceDate         *models.Date `json:"maintenanceDate,omitempty"`
	CostPKR                 *float64     `json:"costPkr,omitempty" validate:"omitempty,gte=0"`
	ShopOrPerson            *string      `json:"shopOrPerson,omitempty"`
	OdometerAtMaintenanceKm *float64     `json:"odometerAtMaintenanceKm,omitempty" validate:"omitempty,gte=0"`
	NextServiceOdometerKm   *float64     `json:"nextServiceOdometerKm,omitempty" validate:"omitempty,gte=0"`
	NextServiceDueDate      *models.Date `json:"nextServiceDueDate,omitempty"`
	MaintenanceBy           *string      `json:"maintenanceBy,omitempty" validate:"omitempty,oneof=internal external dealership"`
	DocumentURLs            []string     `json:"documentUrls,omitempty" validate:"omitempty,dive,url"`
}

func (s *MaintenanceService) CreateRecord(ctx context.Context, req *CreateMaintenanceRequest) (*models.MaintenanceRecord, error) {
	if req.MaintenanceDate.IsZero() {
		return nil, fmt.Errorf("maintenanceDate is required: %w", ErrInvalidInput)
	}

	vehicle, err := resolveVehicle(ctx, s.vehicles, req.VehicleID)
	if err != nil {
		return nil, err
	}

	record := &models.MaintenanceRecord{
		VehicleID:               vehicle.ID,
		Type:                    orDefault(req.Type, models.MaintenanceTypeRoutineCheck),
		Description:             req.Description,
		MaintenanceDate:         req.MaintenanceDate.Time,
		CostPKR:                 req.CostPKR,
		ShopOrPerson:            req.ShopOrPerson,
		OdometerAtMaintenanceKm: req.OdometerAtMaintenanceKm,
		NextServiceOdometerKm:   req.NextServiceOdometerKm,
		NextServiceDueDate:      req.NextServiceDueDate.Ptr(),
		MaintenanceBy:           orDefault(req.MaintenanceBy, models.MaintenanceByExternal),
		DocumentURLs:            req.DocumentURLs,
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create maintenance record: %w", err)
	}

	s.log.WithFields(log.Fields{
		"record_id":  record.ID.Hex(),
		"vehicle_id": vehicle.ID.Hex(),
		"type":       record.Type,
	}).Info("Maintenance recorded")
	return record, nil
}

func (s *MaintenanceService) ListRecords(ctx context.Context, f repository.MaintenanceFilter) ([]*models.MaintenanceRecord, int64, error) {
	records, total, err := s.records.List(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list maintenance records: %w", err)
	}
	return records, total, nil
}

func (s *MaintenanceService) GetRecord(ctx context.Context, id string) (*models.MaintenanceRecord, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance record %s: %w", id, err)
	}
	return record, nil
}

func (s *MaintenanceService) UpdateRecord(ctx context.Context, id string, req *UpdateMaintenanceRequest) (*models.MaintenanceRecord, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance record %s: %w", id, err)
	}

	if req.VehicleID != nil && *req.VehicleID != record.VehicleID.Hex() {
		vehicle, err := resolveVehicle(ctx, s.vehicles, *req.VehicleID)
		if err != nil {
			return nil, err
		}
		record.VehicleID = vehicle.ID
	}
	if req.Type != nil {
		record.Type = *req.Type
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.MaintenanceDate != nil {
		record.MaintenanceDate = req.MaintenanceDate.Time
	}
	if req.CostPKR != nil {
		record.CostPKR = *req.CostPKR
	}
	if req.ShopOrPerson != nil {
		record.ShopOrPerson = *req.ShopOrPerson
	}
	if req.OdometerAtMaintenanceKm != nil {
		record.OdometerAtMaintenanceKm = req.OdometerAtMaintenanceKm
	}
	if req.NextServiceOdometerKm != nil {
		record.NextServiceOdometerKm = req.NextServiceOdometerKm
	}
	if req.NextServiceDueDate != nil {
		record.NextServiceDueDate = req.NextServiceDueDate.Ptr()
	}
	if req.MaintenanceBy != nil {
		record.MaintenanceBy = *req.MaintenanceBy
	}
	if req.DocumentURLs != nil {
		record.DocumentURLs = req.DocumentURLs
	}

	if err := s.records.Update(ctx, id, record); err != nil {
		return nil, fmt.Errorf("failed to update maintenance record %s: %w", id, err)
	}
	return record, nil
}

func (s *MaintenanceService) DeleteRecord(ctx context.Context, id string) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete maintenance record %s: %w", id, err)
	}
	return nil
}
