package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UtilizationEntry is one recent trip labelled with its vehicle.
type UtilizationEntry struct {
	VehicleName        string    `json:"vehicleName"`
	RegistrationNumber string    `json:"registrationNumber"`
	Destination        string    `json:"destination"`
	TotalKm            float64   `json:"totalKm"`
	Date               time.Time `json:"date"`
}

// FuelConsumption totals the fuel logs of one vehicle.
type FuelConsumption struct {
	VehicleID          primitive.ObjectID `json:"vehicleId" bson:"_id"`
	VehicleName        string             `json:"vehicleName" bson:"vehicle_name"`
	RegistrationNumber string             `json:"registrationNumber" bson:"registration_number"`
	TotalLiters        float64            `json:"totalLiters" bson:"total_liters"`
	TotalCost          float64            `json:"totalCost" bson:"total_cost"`
}

// MaintenanceCost totals the maintenance spend of one vehicle.
type MaintenanceCost struct {
	VehicleID          primitive.ObjectID `json:"vehicleId" bson:"_id"`
	VehicleName        string             `json:"vehicleName" bson:"vehicle_name"`
	RegistrationNumber string             `json:"registrationNumber" bson:"registration_number"`
	TotalCost          float64            `json:"totalCost" bson:"total_cost"`
	TotalRecords       int64              `json:"totalRecords" bson:"total_records"`
}
