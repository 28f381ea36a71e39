package services

import (
	"context"
	"fmt"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"
	"erp-backend/pkg/logger"

	log "github.com/sirupsen/logrus"
)

type AssignmentStore interface {
	Create(ctx context.Context, assignment *models.VehicleAssignment) error
	FindByID(ctx context.Context, id string) (*models.VehicleAssignment, error)
	List(ctx context.Context, f repository.AssignmentFilter) ([]*models.VehicleAssignment, int64, error)
	Update(ctx context.Context, id string, assignment *models.VehicleAssignment) error
	Delete(ctx context.Context, id string) error
}

type AssignmentService struct {
	assignments AssignmentStore
	vehicles    VehicleLookup
	log         *log.Entry
}

func NewAssignmentService(assignments AssignmentStore, vehicles VehicleLookup) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		vehicles:    vehicles,
		log:         logger.New("assignments"),
	}
}

type CreateAssignmentRequest struct {
	VehicleID      string       `json:"vehicleId" validate:"required,len=24,hexadecimal"`
	AssignedTo     string       `json:"assignedTo" validate:"required,max=100"`
	AssignedBy     string       `json:"assignedBy" validate:"required,max=100"`
	AssignmentDate models.Date  `json:"assignmentDate"`
	ReturnDate     *models.Date `json:"returnDate,omitempty"`
	Purpose        string       `json:"purpose,omitempty" validate:"max=500"`
	Status         string       `json:"status,omitempty" validate:"omitempty,oneof=active returned cancelled"`
}

// UpdateAssignmentRequest is a partial update; returning a vehicle is a
// returnDate plus status "returned".
type UpdateAssignmentRequest struct {
	VehicleID      *string      `json:"vehicleId,omitempty" validate:"omitempty,len=24,hexadecimal"`
	AssignedTo     *string      `json:"assignedTo,omitempty" validate:"omitempty,min=1,max=100"`
	AssignedBy     *string      `json:"assignedBy,omitempty" validate:"omitempty,min=1,max=100"`
	AssignmentDate *models.Date `json:"assignmentDate,omitempty"`
	ReturnDate     *models.Date `json:"returnDate,omitempty"`
	Purpose        *string      `json:"purpose,omitempty" validate:"omitempty,max=500"`
	Status         *string      `json:"status,omitempty" validate:"omitempty,oneof=active returned cancelled"`
}

func checkReturnDate(a *models.VehicleAssignment) error {
	if a.ReturnDate != nil && a.ReturnDate.Before(a.AssignmentDate) {
		return fmt.Errorf("returnDate is before assignmentDate: %w", ErrInvalidInput)
	}
	return nil
}

func (s *AssignmentService) CreateAssignment(ctx context.Context, req *CreateAssignmentRequest) (*models.VehicleAssignment, error) {
	if req.AssignmentDate.IsZero() {
		return nil, fmt.Errorf("assignmentDate is required: %w", ErrInvalidInput)
	}

	vehicle, err := resolveVehicle(ctx, s.vehicles, req.VehicleID)
	if err != nil {
		return nil, err
	}

	assignment := &models.VehicleAssignment{
		VehicleID:      vehicle.ID,
		AssignedTo:     req.AssignedTo,
		AssignedBy:     req.AssignedBy,
		AssignmentDate: req.AssignmentDate.Time,
		ReturnDate:     req.ReturnDate.Ptr(),
		Purpose:        req.Purpose,
		Status:         orDefault(req.Status, models.AssignmentActive),
	}
	if err := checkReturnDate(assignment); err != nil {
		return nil, err
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.log.WithFields(log.Fields{
		"assignment_id": assignment.ID.Hex(),
		"vehicle_id":    vehicle.ID.Hex(),
		"assigned_to":   assignment.AssignedTo,
	}).Info("Vehicle assigned")
	return assignment, nil
}

func (s *AssignmentService) ListAssignments(ctx context.Context, f repository.AssignmentFilter) ([]*models.VehicleAssignment, int64, error) {
	assignments, total, err := s.assignments.List(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, total, nil
}

func (s *AssignmentService) GetAssignment(ctx context.Context, id string) (*models.VehicleAssignment, error) {
	assignment, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment %s: %w", id, err)
	}
	return assignment, nil
}

func (s *AssignmentService) UpdateAssignment(ctx context.Context, id string, req *UpdateAssignmentRequest) (*models.VehicleAssignment, error) {
	assignment, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment %s: %w", id, err)
	}

	if req.VehicleID != nil && *req.VehicleID != assignment.VehicleID.Hex() {
		vehicle, err := resolveVehicle(ctx, s.vehicles, *req.VehicleID)
		if err != nil {
			return nil, err
		}
		assignment.VehicleID = vehicle.ID
	}
	if req.AssignedTo != nil {
		assignment.AssignedTo = *req.AssignedTo
	}
	if req.AssignedBy != nil {
		assignment.AssignedBy = *req.AssignedBy
	}
	if req.AssignmentDate != nil {
		assignment.AssignmentDate = req.AssignmentDate.Time
	}
	if req.ReturnDate != nil {
		assignment.ReturnDate = req.ReturnDate.Ptr()
	}
	if req.Purpose != nil {
		assignment.Purpose = *req.Purpose
	}
	if req.Status != nil {
		assignment.Status = *req.Status
	}
	if err := checkReturnDate(assignment); err != nil {
		return nil, err
	}

	if err := s.assignments.Update(ctx, id, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment %s: %w", id, err)
	}
	return assignment, nil
}

func (s *AssignmentService) DeleteAssignment(ctx context.Context, id string) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete assignment %s: %w", id, err)
	}
	return nil
}
