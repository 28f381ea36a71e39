package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Trip struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID          primitive.ObjectID `json:"vehicleId" bson:"vehicle_id"`
	Destination        string             `json:"destination" bson:"destination"`
	PurposeOfVisit     string             `json:"purposeOfVisit,omitempty" bson:"purpose_of_visit,omitempty"`
	TripDate           time.Time          `json:"tripDate" bson:"trip_date"`
	TimeOut            string             `json:"timeOut,omitempty" bson:"time_out,omitempty"`
	TimeIn             string             `json:"timeIn,omitempty" bson:"time_in,omitempty"`
	MeterOut           float64            `json:"meterOut" bson:"meter_out"`
	MeterIn            *float64           `json:"meterIn,omitempty" bson:"meter_in,omitempty"`
	TotalKm            float64            `json:"totalKm" bson:"total_km"`
	DriverName         string             `json:"driverName" bson:"driver_name"`
	PersonTravelList   []string           `json:"personTravelList,omitempty" bson:"person_travel_list,omitempty"`
	FuelAllottedLiters *float64           `json:"fuelAllottedLiters,omitempty" bson:"fuel_allotted_liters,omitempty"`
	FuelCostPKR        *float64           `json:"fuelCostPkr,omitempty" bson:"fuel_cost_pkr,omitempty"`
	Status             string             `json:"status" bson:"status"`
	CreatedAt          time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updated_at"`
}

// Trip statuses
const (
	TripStatusInProgress = "in_progress"
	TripStatusCompleted  = "completed"
	TripStatusCancelled  = "cancelled"
)

// TripDistance is meterIn minus meterOut, or zero while the trip is open.
func TripDistance(meterOut float64, meterIn *float64) float64 {
	if meterIn == nil {
		return 0
	}
	return *meterIn - meterOut
}
