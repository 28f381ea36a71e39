package handlers

import (
	"net/http"
	"testing"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"
	"erp-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAssignmentRouter(svc *MockAssignmentService) *gin.Engine {
	h := NewAssignmentHandler(svc)
	router := gin.New()
	router.POST("/assignments", h.CreateAssignment)
	router.GET("/assignments", h.GetAssignments)
	router.GET("/assignments/:id", h.GetAssignment)
	router.PUT("/assignments/:id", h.UpdateAssignment)
	router.PATCH("/assignments/:id", h.UpdateAssignment)
	router.DELETE("/assignments/:id", h.DeleteAssignment)
	return router
}

func TestAssignmentHandler_Create(t *testing.T) {
	svc := new(MockAssignmentService)
	svc.On("CreateAssignment", mock.Anything, mock.MatchedBy(func(req *services.CreateAssignmentRequest) bool {
		return req.AssignedTo == "Imran" && req.AssignmentDate.Day() == 1 && req.ReturnDate == nil
	})).Return(&models.VehicleAssignment{AssignedTo: "Imran", Status: models.AssignmentActive}, nil)

	w := doJSON(setupAssignmentRouter(svc), http.MethodPost, "/assignments", `{
		"vehicleId":"507f1f77bcf86cd799439011",
		"assignedTo":"Imran",
		"assignedBy":"Transport Office",
		"assignmentDate":"2024-06-01"
	}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"active"`)
}

func TestAssignmentHandler_CreateRequiresAssignee(t *testing.T) {
	svc := new(MockAssignmentService)
	w := doJSON(setupAssignmentRouter(svc), http.MethodPost, "/assignments",
		`{"vehicleId":"507f1f77bcf86cd799439011","assignedBy":"Office","assignmentDate":"2024-06-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateAssignment", mock.Anything, mock.Anything)
}

func TestAssignmentHandler_ListFilters(t *testing.T) {
	svc := new(MockAssignmentService)
	svc.On("ListAssignments", mock.Anything, repository.AssignmentFilter{
		Status: models.AssignmentReturned,
		Search: "imran",
		Page:   repository.Page{Page: 1, Limit: 20},
	}).Return([]*models.VehicleAssignment{}, int64(0), nil)

	w := doJSON(setupAssignmentRouter(svc), http.MethodGet, "/assignments?status=returned&search=imran", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	svc.AssertExpectations(t)

	w = doJSON(setupAssignmentRouter(svc), http.MethodGet, "/assignments?status=lost", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignmentHandler_GetUpdateDelete(t *testing.T) {
	svc := new(MockAssignmentService)
	svc.On("GetAssignment", mock.Anything, "a1").Return(nil, services.ErrNotFound)
	svc.On("UpdateAssignment", mock.Anything, "a2", mock.MatchedBy(func(req *services.UpdateAssignmentRequest) bool {
		return req.Status != nil && *req.Status == models.AssignmentReturned && req.AssignedTo == nil
	})).Return(&models.VehicleAssignment{Status: models.AssignmentReturned}, nil)
	svc.On("UpdateAssignment", mock.Anything, "a4", mock.Anything).Return(nil, services.ErrInvalidInput)
	svc.On("DeleteAssignment", mock.Anything, "a3").Return(nil)
	router := setupAssignmentRouter(svc)

	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodGet, "/assignments/a1", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodPatch, "/assignments/a2",
		`{"status":"returned","returnDate":"2024-06-03"}`).Code)
	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodPut, "/assignments/a2", `{"status":"returned"}`).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPut, "/assignments/a2", `{"status":"lost"}`).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPatch, "/assignments/a4",
		`{"returnDate":"2020-01-01"}`).Code)
	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodDelete, "/assignments/a3", nil).Code)
}
