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

func setupMaintenanceRouter(svc *MockMaintenanceService) *gin.Engine {
	h := NewMaintenanceHandler(svc)
	router := gin.New()
	router.GET("/maintenance", h.GetRecords)
	router.POST("/maintenance", h.CreateRecord)
	router.GET("/maintenance/:id", h.GetRecord)
	router.PUT("/maintenance/:id", h.UpdateRecord)
	router.DELETE("/maintenance/:id", h.DeleteRecord)
	return router
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"oil_change", "tyre_change"}, splitList("oil_change, tyre_change,,"))
	assert.Nil(t, splitList(""))
}

func TestMaintenanceHandler_ListFilters(t *testing.T) {
	svc := new(MockMaintenanceService)
	svc.On("ListRecords", mock.Anything, repository.MaintenanceFilter{
		Types:     []string{"oil_change", "brake_service"},
		Search:    "filter",
		SortBy:    "costPkr",
		SortOrder: "DESC",
		Page:      repository.Page{Page: 1, Limit: 10},
	}).Return([]*models.MaintenanceRecord{{CostPKR: 100}}, int64(1), nil)

	w := doJSON(setupMaintenanceRouter(svc), http.MethodGet,
		"/maintenance?type=oil_change,brake_service&search=filter&sortBy=costPkr&sortOrder=DESC", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decode(t, w)
	assert.Equal(t, 10, env.Pagination.Limit)
	assert.Equal(t, 1, env.Pagination.TotalPages)
}

func TestMaintenanceHandler_ListRejectsUnknownSort(t *testing.T) {
	w := doJSON(setupMaintenanceRouter(new(MockMaintenanceService)), http.MethodGet, "/maintenance?sortBy=mechanic", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMaintenanceHandler_Create(t *testing.T) {
	svc := new(MockMaintenanceService)
	svc.On("CreateRecord", mock.Anything, mock.MatchedBy(func(req *services.CreateMaintenanceRequest) bool {
		return req.Type == "oil_change" && req.NextServiceDueDate != nil
	})).Return(&models.MaintenanceRecord{Type: "oil_change"}, nil)
	router := setupMaintenanceRouter(svc)

	w := doJSON(router, http.MethodPost, "/maintenance", `{
		"vehicleId":"507f1f77bcf86cd799439011",
		"type":"oil_change",
		"maintenanceDate":"2024-06-01",
		"costPkr":8500,
		"nextServiceDueDate":"2024-12-01T00:00:00Z"
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/maintenance", `{"vehicleId":"507f1f77bcf86cd799439011","type":"detailing"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMaintenanceHandler_GetUpdateDelete(t *testing.T) {
	svc := new(MockMaintenanceService)
	svc.On("GetRecord", mock.Anything, "m1").Return(&models.MaintenanceRecord{Description: "pads"}, nil)
	svc.On("UpdateRecord", mock.Anything, "m2", mock.Anything).Return(nil, services.ErrNotFound)
	svc.On("DeleteRecord", mock.Anything, "m3").Return(services.ErrInvalidID)
	router := setupMaintenanceRouter(svc)

	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodGet, "/maintenance/m1", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodPut, "/maintenance/m2", `{"costPkr":10}`).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodDelete, "/maintenance/m3", nil).Code)
}
