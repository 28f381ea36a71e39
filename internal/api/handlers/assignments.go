package handlers

import (
	"context"
	"net/http"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"
	"erp-backend/internal/services"
	"erp-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AssignmentService interface {
	CreateAssignment(ctx context.Context, req *services.CreateAssignmentRequest) (*models.VehicleAssignment, error)
	ListAssignments(ctx context.Context, f repository.AssignmentFilter) ([]*models.VehicleAssignment, int64, error)
	GetAssignment(ctx context.Context, id string) (*models.VehicleAssignment, error)
	UpdateAssignment(ctx context.Context, id string, req *services.UpdateAssignmentRequest) (*models.VehicleAssignment, error)
	DeleteAssignment(ctx context.Context, id string) error
}

type AssignmentHandler struct {
	assignmentService AssignmentService
	validator         *validator.Validate
}

func NewAssignmentHandler(assignmentService AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		validator:         validator.New(),
	}
}

type assignmentQuery struct {
	Page      int    `form:"page" validate:"gte=0"`
	Limit     int    `form:"limit" validate:"gte=0,lte=100"`
	VehicleID string `form:"vehicleId"`
	Status    string `form:"status" validate:"omitempty,oneof=active returned cancelled"`
	Search    string `form:"search"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=ASC DESC asc desc"`
}

func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req services.CreateAssignmentRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to create assignment", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Assignment created successfully", assignment)
}

func (h *AssignmentHandler) GetAssignments(c *gin.Context) {
	var q assignmentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}
	if err := h.validator.Struct(&q); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	page := pageOf(q.Page, q.Limit, 20)
	assignments, total, err := h.assignmentService.ListAssignments(c.Request.Context(), repository.AssignmentFilter{
		VehicleID: q.VehicleID,
		Status:    q.Status,
		Search:    q.Search,
		SortOrder: q.SortOrder,
		Page:      page,
	})
	if err != nil {
		respondError(c, "Failed to retrieve assignments", err)
		return
	}

	utils.PaginatedResponse(c, http.StatusOK, "Assignments retrieved successfully", assignments,
		utils.NewPagination(page.Page, page.Limit, total))
}

func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	assignment, err := h.assignmentService.GetAssignment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Assignment not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignment retrieved successfully", assignment)
}

// UpdateAssignment serves both PUT and PATCH; absent fields are kept.
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	var req services.UpdateAssignmentRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	assignment, err := h.assignmentService.UpdateAssignment(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, "Failed to update assignment", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignment updated successfully", assignment)
}

func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	if err := h.assignmentService.DeleteAssignment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete assignment", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignment deleted successfully", nil)
}
