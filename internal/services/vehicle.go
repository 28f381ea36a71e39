package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"
	"erp-backend/pkg/cache"
	"erp-backend/pkg/logger"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleStore is the vehicle persistence the service depends on.
type VehicleStore interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	FindByID(ctx context.Context, id string) (*models.Vehicle, error)
	FindByRegistration(ctx context.Context, registrationNumber string) (*models.Vehicle, error)
	List(ctx context.Context, f repository.VehicleFilter) ([]*models.Vehicle, int64, error)
	Update(ctx context.Context, id string, vehicle *models.Vehicle) (*models.Vehicle, error)
	Delete(ctx context.Context, id string) error
	Dropdown(ctx context.Context) ([]models.VehicleOption, error)
	Summary(ctx context.Context) (*models.VehicleSummary, error)
	Stats(ctx context.Context) (*models.FleetStats, error)
}

// VehicleHistory is a collection keyed by vehicle that is purged with it.
type VehicleHistory interface {
	DeleteByVehicle(ctx context.Context, vehicleID primitive.ObjectID) (int64, error)
}

const dropdownCacheKey = "vehicles:dropdown"

type VehicleService struct {
	vehicles     VehicleStore
	history      []VehicleHistory
	intervals    ForecastPolicy
	cacheManager cache.CacheManager
	cacheConfig  cache.CacheConfig
	log          *log.Entry
}

func NewVehicleService(vehicles VehicleStore, history ...VehicleHistory) *VehicleService {
	return &VehicleService{
		vehicles:    vehicles,
		history:     history,
		intervals:   DefaultForecastPolicy(),
		cacheConfig: cache.DefaultCacheConfig(),
		log:         logger.New("vehicles"),
	}
}

// SetForecastPolicy sets the service intervals given to vehicles created
// without their own.
func (s *VehicleService) SetForecastPolicy(policy ForecastPolicy) {
	s.intervals = policy.withDefaults()
}

// SetCacheManager enables read-through caching of single vehicles and the
// dropdown list.
func (s *VehicleService) SetCacheManager(cacheManager cache.CacheManager) {
	s.cacheManager = cacheManager
}

func (s *VehicleService) SetCacheConfig(config cache.CacheConfig) {
	s.cacheConfig = config
}

type CreateVehicleRequest struct {
	RegistrationNumber      string       `json:"registrationNumber" validate:"required,max=20"`
	VehicleName             string       `json:"vehicleName" validate:"required,max=100"`
	Make                    string       `json:"make,omitempty" validate:"max=50"`
	Model                   string       `json:"model,omitempty" validate:"max=50"`
	Year                    int          `json:"year,omitempty" validate:"omitempty,gte=1950,lte=2100"`
	Color                   string       `json:"color,omitempty"`
	ChassisNumber           string       `json:"chassisNumber,omitempty"`
	EngineNumber            string       `json:"engineNumber,omitempty"`
	Type                    string       `json:"type,omitempty" validate:"omitempty,oneof=sedan suv pickup truck bus van motorcycle heavy_equipment"`
	FuelType                string       `json:"fuelType,omitempty" validate:"omitempty,oneof=petrol diesel cng electric hybrid"`
	OwnershipStatus         string       `json:"ownershipStatus,omitempty" validate:"omitempty,oneof=company_owned leased rented contractor"`
	Status                  string       `json:"status,omitempty" validate:"omitempty,oneof=active in_maintenance inactive decommissioned"`
	AssignedSite            string       `json:"assignedSite,omitempty"`
	AssignedDepartment      string       `json:"assignedDepartment,omitempty"`
	CurrentDriverName       string       `json:"currentDriverName,omitempty"`
	CurrentOdometerKm       float64      `json:"currentOdometerKm,omitempty" validate:"gte=0"`
	MaintenanceIntervalKm   int          `json:"maintenanceIntervalKm,omitempty" validate:"gte=0"`
	MaintenanceIntervalDays int          `json:"maintenanceIntervalDays,omitempty" validate:"gte=0"`
	InsuranceExpiry         *models.Date `json:"insuranceExpiry,omitempty"`
	RegistrationExpiry      *models.Date `json:"registrationExpiry,omitempty"`
	FitnessExpiry           *models.Date `json:"fitnessExpiry,omitempty"`
}

// UpdateVehicleRequest is a partial update; nil fields are left unchanged.
type UpdateVehicleRequest struct {
	RegistrationNumber      *string      `json:"registrationNumber,omitempty" validate:"omitempty,min=1,max=20"`
	VehicleName             *string      `json:"vehicleName,omitempty" validate:"omitempty,min=1,max=100"`
	Make                    *string      `json:"make,omitempty"`
	Model                   *string      `json:"model,omitempty"`
	Year                    *int         `json:"year,omitempty" validate:"omitempty,gte=1950,lte=2100"`
	Color                   *string      `json:"color,omitempty"`
	ChassisNumber           *string      `json:"chassisNumber,omitempty"`
	EngineNumber            *string      `json:"engineNumber,omitempty"`
	Type                    *string      `json:"type,omitempty" validate:"omitempty,oneof=sedan suv pickup truck bus van motorcycle heavy_equipment"`
	FuelType                *string      `json:"fuelType,omitempty" validate:"omitempty,oneof=petrol diesel cng electric hybrid"`
	OwnershipStatus         *string      `json:"ownershipStatus,omitempty" validate:"omitempty,oneof=company_owned leased rented contractor"`
	Status                  *string      `json:"status,omitempty" validate:"omitempty,oneof=active in_maintenance inactive decommissioned"`
	AssignedSite            *string      `json:"assignedSite,omitempty"`
	AssignedDepartment      *string      `json:"assignedDepartment,omitempty"`
	CurrentDriverName       *string      `json:"currentDriverName,omitempty"`
	CurrentOdometerKm       *float64     `json:"currentOdometerKm,omitempty" validate:"omitempty,gte=0"`
	MaintenanceIntervalKm   *int         `json:"maintenanceIntervalKm,omitempty" validate:"omitempty,gt=0"`
	MaintenanceIntervalDays *int         `json:"maintenanceIntervalDays,omitempty" validate:"omitempty,gt=0"`
	InsuranceExpiry         *models.Date `json:"insuranceExpiry,omitempty"`
	RegistrationExpiry      *models.Date `json:"registrationExpiry,omitempty"`
	FitnessExpiry           *models.Date `json:"fitnessExpiry,omitempty"`
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (s *VehicleService) CreateVehicle(ctx context.Context, req *CreateVehicleRequest) (*models.Vehicle, error) {
	reg := strings.TrimSpace(req.RegistrationNumber)
	if err := s.ensureRegistrationFree(ctx, reg, ""); err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		RegistrationNumber:      reg,
		VehicleName:             strings.TrimSpace(req.VehicleName),
		Make:                    req.Make,
		Model:                   req.Model,
		Year:                    req.Year,
		Color:                   req.Color,
		ChassisNumber:           req.ChassisNumber,
		EngineNumber:            req.EngineNumber,
		Type:                    orDefault(req.Type, models.VehicleTypeSedan),
		FuelType:                orDefault(req.FuelType, models.FuelTypePetrol),
		OwnershipStatus:         orDefault(req.OwnershipStatus, models.OwnershipCompanyOwned),
		Status:                  orDefault(req.Status, models.VehicleStatusActive),
		AssignedSite:            req.AssignedSite,
		AssignedDepartment:      req.AssignedDepartment,
		CurrentDriverName:       req.CurrentDriverName,
		CurrentOdometerKm:       req.CurrentOdometerKm,
		MaintenanceIntervalKm:   req.MaintenanceIntervalKm,
		MaintenanceIntervalDays: req.MaintenanceIntervalDays,
		InsuranceExpiry:         req.InsuranceExpiry.Ptr(),
		RegistrationExpiry:      req.RegistrationExpiry.Ptr(),
		FitnessExpiry:           req.FitnessExpiry.Ptr(),
	}
	if vehicle.MaintenanceIntervalKm == 0 {
		vehicle.MaintenanceIntervalKm = s.intervals.DefaultIntervalKm
	}
	if vehicle.MaintenanceIntervalDays == 0 {
		vehicle.MaintenanceIntervalDays = s.intervals.DefaultIntervalDays
	}

	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("vehicle %q already exists: %w", reg, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.invalidateLists(ctx)
	s.log.WithFields(log.Fields{"vehicle_id": vehicle.ID.Hex(), "registration": reg}).Info("Vehicle created")
	return vehicle, nil
}

// ensureRegistrationFree fails with ErrConflict when another vehicle than
// exceptID already uses reg.
func (s *VehicleService) ensureRegistrationFree(ctx context.Context, reg, exceptID string) error {
	existing, err := s.vehicles.FindByRegistration(ctx, reg)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check registration: %w", err)
	case existing.ID.Hex() == exceptID:
		return nil
	default:
		return fmt.Errorf("vehicle %q already exists: %w", reg, ErrConflict)
	}
}

func (s *VehicleService) ListVehicles(ctx context.Context, f repository.VehicleFilter) ([]*models.Vehicle, int64, error) {
	vehicles, total, err := s.vehicles.List(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, total, nil
}

// GetVehicleByID reads through the cache when one is configured. Cache
// failures are logged and fall back to the database.
func (s *VehicleService) GetVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	if s.cacheManager != nil {
		cached, err := s.cacheManager.GetVehicle(ctx, id)
		if err != nil {
			s.log.WithError(err).WithField("vehicle_id", id).Warn("Cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	vehicle, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle %s: %w", id, err)
	}

	if s.cacheManager != nil {
		if err := s.cacheManager.SetVehicle(ctx, vehicle, s.cacheConfig.VehicleDataTTL); err != nil {
			s.log.WithError(err).WithField("vehicle_id", id).Warn("Cache write failed")
		}
	}
	return vehicle, nil
}

func (s *VehicleService) UpdateVehicle(ctx context.Context, id string, req *UpdateVehicleRequest) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle %s: %w", id, err)
	}

	if req.RegistrationNumber != nil {
		reg := strings.TrimSpace(*req.RegistrationNumber)
		if reg != vehicle.RegistrationNumber {
			if err := s.ensureRegistrationFree(ctx, reg, id); err != nil {
				return nil, err
			}
			vehicle.RegistrationNumber = reg
		}
	}
	applyVehicleUpdate(vehicle, req)

	updated, err := s.vehicles.Update(ctx, id, vehicle)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("vehicle %q already exists: %w", vehicle.RegistrationNumber, ErrConflict)
		}
		return nil, fmt.Errorf("failed to update vehicle %s: %w", id, err)
	}

	s.invalidateVehicle(ctx, id)
	return updated, nil
}

func applyVehicleUpdate(v *models.Vehicle, req *UpdateVehicleRequest) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&v.VehicleName, req.VehicleName)
	setString(&v.Make, req.Make)
	setString(&v.Model, req.Model)
	setString(&v.Color, req.Color)
	setString(&v.ChassisNumber, req.ChassisNumber)
	setString(&v.EngineNumber, req.EngineNumber)
	setString(&v.Type, req.Type)
	setString(&v.FuelType, req.FuelType)
	setString(&v.OwnershipStatus, req.OwnershipStatus)
	setString(&v.Status, req.Status)
	setString(&v.AssignedSite, req.AssignedSite)
	setString(&v.AssignedDepartment, req.AssignedDepartment)
	setString(&v.CurrentDriverName, req.CurrentDriverName)

	if req.Year != nil {
		v.Year = *req.Year
	}
	if req.CurrentOdometerKm != nil {
		v.CurrentOdometerKm = *req.CurrentOdometerKm
	}
	if req.MaintenanceIntervalKm != nil {
		v.MaintenanceIntervalKm = *req.MaintenanceIntervalKm
	}
	if req.MaintenanceIntervalDays != nil {
		v.MaintenanceIntervalDays = *req.MaintenanceIntervalDays
	}
	if req.InsuranceExpiry != nil {
		v.InsuranceExpiry = req.InsuranceExpiry.Ptr()
	}
	if req.RegistrationExpiry != nil {
		v.RegistrationExpiry = req.RegistrationExpiry.Ptr()
	}
	if req.FitnessExpiry != nil {
		v.FitnessExpiry = req.FitnessExpiry.Ptr()
	}
}

// DeleteVehicle removes the vehicle and then its trips and maintenance
// history. Every history store is attempted; failures are joined into the
// returned error after the cache has been invalidated.
func (s *VehicleService) DeleteVehicle(ctx context.Context, id string) error {
	vehicle, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get vehicle %s: %w", id, err)
	}

	if err := s.vehicles.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vehicle %s: %w", id, err)
	}

	entry := s.log.WithField("vehicle_id", id)
	var errs []error
	for _, h := range s.history {
		removed, err := h.DeleteByVehicle(ctx, vehicle.ID)
		if err != nil {
			entry.WithError(err).Error("Failed to delete vehicle history")
			errs = append(errs, err)
			continue
		}
		entry.WithField("removed", removed).Debug("Deleted vehicle history")
	}

	s.invalidateVehicle(ctx, id)
	if len(errs) > 0 {
		return fmt.Errorf("delete vehicle history %s: %w", id, errors.Join(errs...))
	}
	entry.Info("Vehicle deleted")
	return nil
}

func (s *VehicleService) GetSummary(ctx context.Context) (*models.VehicleSummary, error) {
	summary, err := s.vehicles.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize vehicles: %w", err)
	}
	return summary, nil
}

func (s *VehicleService) GetStats(ctx context.Context) (*models.FleetStats, error) {
	stats, err := s.vehicles.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute fleet stats: %w", err)
	}
	return stats, nil
}

// GetDropdown lists active vehicles, cached under the list tag so any
// vehicle write drops it.
func (s *VehicleService) GetDropdown(ctx context.Context) ([]models.VehicleOption, error) {
	if s.cacheManager != nil {
		var cached []models.VehicleOption
		found, err := s.cacheManager.Get(ctx, dropdownCacheKey, &cached)
		if err != nil {
			s.log.WithError(err).Warn("Cache read failed")
		} else if found {
			return cached, nil
		}
	}

	choices, err := s.vehicles.Dropdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle options: %w", err)
	}

	if s.cacheManager != nil {
		if err := s.cacheManager.Set(ctx, dropdownCacheKey, choices, s.cacheConfig.ListTTL, cache.TagVehicleLists); err != nil {
			s.log.WithError(err).Warn("Cache write failed")
		}
	}
	return choices, nil
}

func (s *VehicleService) invalidateVehicle(ctx context.Context, id string) {
	if s.cacheManager == nil {
		return
	}
	if err := s.cacheManager.InvalidateVehicle(ctx, id); err != nil {
		s.log.WithError(err).WithField("vehicle_id", id).Warn("Failed to invalidate vehicle cache")
	}
	s.invalidateLists(ctx)
}

func (s *VehicleService) invalidateLists(ctx context.Context) {
	if s.cacheManager == nil {
		return
	}
	if err := s.cacheManager.InvalidateByTag(ctx, cache.TagVehicleLists); err != nil {
		s.log.WithError(err).Warn("Failed to invalidate vehicle lists")
	}
}
