package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceContext is a vehicle together with the history the predictor
// needs: its latest service and the trips of the usage window.
type MaintenanceContext struct {
	Vehicle           Vehicle
	LatestMaintenance *MaintenanceRecord
	RecentTrips       []Trip
}

type MaintenancePrediction struct {
	VehicleID            primitive.ObjectID `json:"vehicleId"`
	RegistrationNumber   string             `json:"registrationNumber"`
	VehicleName          string             `json:"vehicleName"`
	LastServiceDate      time.Time          `json:"lastServiceDate"`
	LastServiceOdometer  float64            `json:"lastServiceOdometer"`
	CurrentOdometer      float64            `json:"currentOdometer"`
	AvgKmPerDay          float64            `json:"avgKmPerDay"`
	PredictedServiceDate time.Time          `json:"predictedServiceDate"`
	DaysRemaining        int                `json:"daysRemaining"`
	Status               string             `json:"status"`
	Basis                string             `json:"basis"`
}

// Prediction statuses
const (
	PredictionOverdue  = "overdue"
	PredictionUrgent   = "urgent"
	PredictionUpcoming = "upcoming"
)

// Which trigger determined the due date
const (
	BasisMileage = "mileage"
	BasisTime    = "time"
)
