package services

import (
	"context"
	"fmt"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"
	"erp-backend/pkg/logger"

	log "github.com/sirupsen/logrus"
)

type FuelStore interface {
	Create(ctx context.Context, entry *models.FuelLog) error
	List(ctx context.Context, f repository.FuelFilter) ([]*models.FuelLog, int64, error)
	Stats(ctx context.Context) (*models.FuelStats, error)
}

type FuelService struct {
	logs     FuelStore
	vehicles VehicleLookup
	log      *log.Entry
}

func NewFuelService(logs FuelStore, vehicles VehicleLookup) *FuelService {
	return &FuelService{
		logs:     logs,
		vehicles: vehicles,
		log:      logger.New("fuel"),
	}
}

type CreateFuelLogRequest struct {
	VehicleID       string      `json:"vehicleId" validate:"required,len=24,hexadecimal"`
	Date            models.Date `json:"date"`
	QuantityLiters  float64     `json:"quantityLiters" validate:"gt=0"`
	RatePerLiter    float64     `json:"ratePerLiter" validate:"gte=0"`
	TotalCost       float64     `json:"totalCost,omitempty" validate:"gte=0"`
	OdometerReading float64     `json:"odometerReading" validate:"gte=0"`
	StationName     string      `json:"stationName,omitempty" validate:"max=200"`
	PaymentMethod   string      `json:"paymentMethod,omitempty" validate:"omitempty,oneof=cash card fuel_card credit"`
	ReceiptURL      string      `json:"receiptUrl,omitempty" validate:"omitempty,url"`
}

// CreateFuelLog records a refuelling. A missing total is quantity times
// rate.
func (s *FuelService) CreateFuelLog(ctx context.Context, req *CreateFuelLogRequest) (*models.FuelLog, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("date is required: %w", ErrInvalidInput)
	}

	vehicle, err := resolveVehicle(ctx, s.vehicles, req.VehicleID)
	if err != nil {
		return nil, err
	}

	entry := &models.FuelLog{
		VehicleID:       vehicle.ID,
		Date:            req.Date.Time,
		QuantityLiters:  req.QuantityLiters,
		RatePerLiter:    req.RatePerLiter,
		TotalCost:       req.TotalCost,
		OdometerReading: req.OdometerReading,
		StationName:     req.StationName,
		PaymentMethod:   orDefault(req.PaymentMethod, models.PaymentCash),
		ReceiptURL:      req.ReceiptURL,
	}
	if entry.TotalCost == 0 {
		entry.TotalCost = roundHalfUp(entry.QuantityLiters * entry.RatePerLiter)
	}

	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create fuel log: %w", err)
	}

	s.log.WithFields(log.Fields{
		"fuel_log_id": entry.ID.Hex(),
		"vehicle_id":  vehicle.ID.Hex(),
		"liters":      entry.QuantityLiters,
	}).Info("Fuel logged")
	return entry, nil
}

func (s *FuelService) ListFuelLogs(ctx context.Context, f repository.FuelFilter) ([]*models.FuelLog, int64, error) {
	entries, total, err := s.logs.List(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list fuel logs: %w", err)
	}
	return entries, total, nil
}

func (s *FuelService) GetStats(ctx context.Context) (*models.FuelStats, error) {
	stats, err := s.logs.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute fuel stats: %w", err)
	}
	return stats, nil
}
