package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"erp-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupFleetReportRouter(svc *MockFleetReportService) *gin.Engine {
	h := NewFleetReportHandler(svc)
	router := gin.New()
	router.GET("/reports/utilization", h.GetUtilization)
	router.GET("/reports/fuel-consumption", h.GetFuelConsumption)
	router.GET("/reports/maintenance-costs", h.GetMaintenanceCosts)
	return router
}

func TestFleetReportHandler_Reports(t *testing.T) {
	svc := new(MockFleetReportService)
	svc.On("GetUtilization", mock.Anything).Return([]models.UtilizationEntry{
		{RegistrationNumber: "LEA-1", Destination: "Kohat", TotalKm: 120},
	}, nil)
	svc.On("GetFuelConsumption", mock.Anything).Return([]models.FuelConsumption{
		{RegistrationNumber: "LEA-1", TotalLiters: 80},
	}, nil)
	svc.On("GetMaintenanceCosts", mock.Anything).Return([]models.MaintenanceCost{}, nil)
	router := setupFleetReportRouter(svc)

	w := doJSON(router, http.MethodGet, "/reports/utilization", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []models.UtilizationEntry
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Kohat", entries[0].Destination)

	w = doJSON(router, http.MethodGet, "/reports/fuel-consumption", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalLiters":80`)

	w = doJSON(router, http.MethodGet, "/reports/maintenance-costs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(decode(t, w).Data))
}

func TestFleetReportHandler_Failure(t *testing.T) {
	svc := new(MockFleetReportService)
	svc.On("GetMaintenanceCosts", mock.Anything).Return(nil, errors.New("aggregate failed"))

	w := doJSON(setupFleetReportRouter(svc), http.MethodGet, "/reports/maintenance-costs", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, decode(t, w).Success)
}
