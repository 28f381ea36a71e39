package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComplianceAlert flags one document that has lapsed or lapses inside the
// look-ahead horizon.
type ComplianceAlert struct {
	Type          string    `json:"type"`
	ExpiryDate    time.Time `json:"expiryDate"`
	Status        string    `json:"status"`
	DaysRemaining int       `json:"daysRemaining"`
}

// ComplianceAlertGroup holds every alert raised for a single vehicle.
type ComplianceAlertGroup struct {
	VehicleID          primitive.ObjectID `json:"vehicleId"`
	RegistrationNumber string             `json:"registrationNumber"`
	VehicleName        string             `json:"vehicleName"`
	Alerts             []ComplianceAlert  `json:"alerts"`
}

// Document labels, in the order they are checked.
const (
	ComplianceInsurance    = "Insurance"
	ComplianceRegistration = "Registration"
	ComplianceFitness      = "Fitness"
)

// Alert statuses
const (
	ComplianceExpired  = "expired"
	ComplianceExpiring = "expiring"
)
