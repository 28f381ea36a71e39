package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MaintenanceRecord struct {
	ID                      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID               primitive.ObjectID `json:"vehicleId" bson:"vehicle_id"`
	Type                    string             `json:"type" bson:"type"`
	Description             string             `json:"description" bson:"description"`
	MaintenanceDate         time.Time          `json:"maintenanceDate" bson:"maintenance_date"`
	CostPKR                 float64            `json:"costPkr" bson:"cost_pkr"`
	ShopOrPerson            string             `json:"shopOrPerson,omitempty" bson:"shop_or_person,omitempty"`
	OdometerAtMaintenanceKm *float64           `json:"odometerAtMaintenanceKm,omitempty" bson:"odometer_at_maintenance_km,omitempty"`
	NextServiceOdometerKm   *float64           `json:"nextServiceOdometerKm,omitempty" bson:"next_service_odometer_km,omitempty"`
	NextServiceDueDate      *time.Time         `json:"nextServiceDueDate,omitempty" bson:"next_service_due_date,omitempty"`
	MaintenanceBy           string             `json:"maintenanceBy" bson:"maintenance_by"`
	DocumentURLs            []string           `json:"documentUrls,omitempty" bson:"document_urls,omitempty"`
	CreatedAt               time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt               time.Time          `json:"updatedAt" bson:"updated_at"`
}

// Maintenance types
const (
	MaintenanceTypeOilChange    = "oil_change"
	MaintenanceTypeTyreChange   = "tyre_change"
	MaintenanceTypeBrakeService = "brake_service"
	MaintenanceTypeEngineRepair = "engine_repair"
	MaintenanceTypeBodyWork     = "body_work"
	MaintenanceTypeElectrical   = "electrical"
	MaintenanceTypeACService    = "ac_service"
	MaintenanceTypeRoutineCheck = "routine_check"
	MaintenanceTypeMajorService = "major_service"
	MaintenanceTypeOther        = "other"
)

// Who performed the work
const (
	MaintenanceByInternal   = "internal"
	MaintenanceByExternal   = "external"
	MaintenanceByDealership = "dealership"
)
