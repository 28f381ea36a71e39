package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleAssignment hands a vehicle to a person until it is returned.
type VehicleAssignment struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID      primitive.ObjectID `json:"vehicleId" bson:"vehicle_id"`
	AssignedTo     string             `json:"assignedTo" bson:"assigned_to"`
	AssignedBy     string             `json:"assignedBy" bson:"assigned_by"`
	AssignmentDate time.Time          `json:"assignmentDate" bson:"assignment_date"`
	ReturnDate     *time.Time         `json:"returnDate,omitempty" bson:"return_date,omitempty"`
	Purpose        string             `json:"purpose,omitempty" bson:"purpose,omitempty"`
	Status         string             `json:"status" bson:"status"`
	CreatedAt      time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updated_at"`
}

// Assignment statuses
const (
	AssignmentActive    = "active"
	AssignmentReturned  = "returned"
	AssignmentCancelled = "cancelled"
)
