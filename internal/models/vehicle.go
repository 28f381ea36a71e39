package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Vehicle struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RegistrationNumber      string             `bson:"registration_number" json:"registrationNumber" validate:"required"`
	VehicleName             string             `bson:"vehicle_name" json:"vehicleName" validate:"required"`
	Make                    string             `bson:"make,omitempty" json:"make,omitempty"`
	Model                   string             `bson:"model,omitempty" json:"model,omitempty"`
	Year                    int                `bson:"year,omitempty" json:"year,omitempty"`
	Color                   string             `bson:"color,omitempty" json:"color,omitempty"`
	ChassisNumber           string             `bson:"chassis_number,omitempty" json:"chassisNumber,omitempty"`
	EngineNumber            string             `bson:"engine_number,omitempty" json:"engineNumber,omitempty"`
	Type                    string             `bson:"type" json:"type"`
	FuelType                string             `bson:"fuel_type" json:"fuelType"`
	OwnershipStatus         string             `bson:"ownership_status" json:"ownershipStatus"`
	Status                  string             `bson:"status" json:"status"`
	AssignedSite            string             `bson:"assigned_site,omitempty" json:"assignedSite,omitempty"`
	AssignedDepartment      string             `bson:"assigned_department,omitempty" json:"assignedDepartment,omitempty"`
	CurrentDriverName       string             `bson:"current_driver_name,omitempty" json:"currentDriverName,omitempty"`
	CurrentOdometerKm       float64            `bson:"current_odometer_km" json:"currentOdometerKm"`
	MaintenanceIntervalKm   int                `bson:"maintenance_interval_km" json:"maintenanceIntervalKm"`
	MaintenanceIntervalDays int                `bson:"maintenance_interval_days" json:"maintenanceIntervalDays"`
	InsuranceExpiry         *time.Time         `bson:"insurance_expiry,omitempty" json:"insuranceExpiry,omitempty"`
	RegistrationExpiry      *time.Time         `bson:"registration_expiry,omitempty" json:"registrationExpiry,omitempty"`
	FitnessExpiry           *time.Time         `bson:"fitness_expiry,omitempty" json:"fitnessExpiry,omitempty"`
	CreatedAt               time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt               time.Time          `bson:"updated_at" json:"updatedAt"`
}

// VehicleOption is the compact shape used by dropdowns.
type VehicleOption struct {
	ID                 primitive.ObjectID `bson:"_id" json:"id"`
	RegistrationNumber string             `bson:"registration_number" json:"registrationNumber"`
	VehicleName        string             `bson:"vehicle_name" json:"vehicleName"`
}

// VehicleSummary aggregates fleet composition counts.
type VehicleSummary struct {
	Total         int64            `json:"total"`
	Active        int64            `json:"active"`
	InMaintenance int64            `json:"inMaintenance"`
	Inactive      int64            `json:"inactive"`
	ByType        map[string]int64 `json:"byType"`
	ByOwnership   map[string]int64 `json:"byOwnership"`
	ByFuel        map[string]int64 `json:"byFuel"`
}

// FleetStats is the dashboard view of vehicle availability.
type FleetStats struct {
	Total     int64       `json:"total"`
	Available int64       `json:"available"`
	Assigned  int64       `json:"assigned"`
	ByType    []TypeCount `json:"byType"`
}

type TypeCount struct {
	Type  string `bson:"_id" json:"type"`
	Count int64  `bson:"count" json:"count"`
}

// Vehicle types
const (
	VehicleTypeSedan          = "sedan"
	VehicleTypeSUV            = "suv"
	VehicleTypePickup         = "pickup"
	VehicleTypeTruck          = "truck"
	VehicleTypeBus            = "bus"
	VehicleTypeVan            = "van"
	VehicleTypeMotorcycle     = "motorcycle"
	VehicleTypeHeavyEquipment = "heavy_equipment"
)

// Fuel types
const (
	FuelTypePetrol   = "petrol"
	FuelTypeDiesel   = "diesel"
	FuelTypeCNG      = "cng"
	FuelTypeElectric = "electric"
	FuelTypeHybrid   = "hybrid"
)

// Ownership statuses
const (
	OwnershipCompanyOwned = "company_owned"
	OwnershipLeased       = "leased"
	OwnershipRented       = "rented"
	OwnershipContractor   = "contractor"
)

// Vehicle statuses
const (
	VehicleStatusActive         = "active"
	VehicleStatusInMaintenance  = "in_maintenance"
	VehicleStatusInactive       = "inactive"
	VehicleStatusDecommissioned = "decommissioned"
)

// Service intervals applied to vehicles created without their own policy.
const (
	DefaultMaintenanceIntervalKm   = 5000
	DefaultMaintenanceIntervalDays = 180
)
