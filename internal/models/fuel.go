package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FuelLog is one refuelling of a vehicle.
type FuelLog struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID       primitive.ObjectID `json:"vehicleId" bson:"vehicle_id"`
	Date            time.Time          `json:"date" bson:"date"`
	QuantityLiters  float64            `json:"quantityLiters" bson:"quantity_liters"`
	RatePerLiter    float64            `json:"ratePerLiter" bson:"rate_per_liter"`
	TotalCost       float64            `json:"totalCost" bson:"total_cost"`
	OdometerReading float64            `json:"odometerReading" bson:"odometer_reading"`
	StationName     string             `json:"stationName,omitempty" bson:"station_name,omitempty"`
	PaymentMethod   string             `json:"paymentMethod" bson:"payment_method"`
	ReceiptURL      string             `json:"receiptUrl,omitempty" bson:"receipt_url,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updated_at"`
}

// FuelStats totals every fuel log.
type FuelStats struct {
	TotalLiters  float64 `json:"totalLiters" bson:"total_liters"`
	TotalCost    float64 `json:"totalCost" bson:"total_cost"`
	TotalEntries int64   `json:"totalEntries" bson:"total_entries"`
}

// Payment methods
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentFuelCard = "fuel_card"
	PaymentCredit   = "credit"
)
