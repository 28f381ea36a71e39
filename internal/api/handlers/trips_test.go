package handlers

import (
	"net/http"
	"testing"
	"time"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"
	"erp-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTripRouter(svc *MockTripService) *gin.Engine {
	h := NewTripHandler(svc)
	router := gin.New()
	router.GET("/trips", h.GetTrips)
	router.POST("/trips", h.CreateTrip)
	router.GET("/trips/:id", h.GetTrip)
	router.PUT("/trips/:id", h.UpdateTrip)
	router.DELETE("/trips/:id", h.DeleteTrip)
	return router
}

func TestTripHandler_ListDateRangeIsInclusive(t *testing.T) {
	svc := new(MockTripService)
	svc.On("ListTrips", mock.Anything, mock.MatchedBy(func(f repository.TripFilter) bool {
		return f.VehicleID == "507f1f77bcf86cd799439011" &&
			f.Status == models.TripStatusCompleted &&
			f.From.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) &&
			f.To.Equal(time.Date(2024, 6, 30, 23, 59, 59, 999999999, time.UTC)) &&
			f.Page == repository.Page{Page: 1, Limit: 20}
	})).Return([]*models.Trip{}, int64(0), nil)

	w := doJSON(setupTripRouter(svc), http.MethodGet,
		"/trips?vehicleId=507f1f77bcf86cd799439011&status=completed&from=2024-06-01&to=2024-06-30", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	svc.AssertExpectations(t)
}

func TestTripHandler_ListRejectsUnknownStatus(t *testing.T) {
	svc := new(MockTripService)
	w := doJSON(setupTripRouter(svc), http.MethodGet, "/trips?status=parked", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTripHandler_Create(t *testing.T) {
	svc := new(MockTripService)
	svc.On("CreateTrip", mock.Anything, mock.MatchedBy(func(req *services.CreateTripRequest) bool {
		return req.MeterIn != nil && *req.MeterIn == 1250 && req.TripDate.Day() == 10
	})).Return(&models.Trip{TotalKm: 250, Status: models.TripStatusCompleted}, nil)

	w := doJSON(setupTripRouter(svc), http.MethodPost, "/trips", `{
		"vehicleId":"507f1f77bcf86cd799439011",
		"destination":"Kohat",
		"tripDate":"2024-06-10",
		"meterOut":1000,
		"meterIn":1250
	}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"totalKm":250`)
}

func TestTripHandler_CreateInvalidInputIs400(t *testing.T) {
	svc := new(MockTripService)
	svc.On("CreateTrip", mock.Anything, mock.Anything).Return(nil, services.ErrInvalidInput)

	w := doJSON(setupTripRouter(svc), http.MethodPost, "/trips",
		`{"vehicleId":"507f1f77bcf86cd799439011","destination":"Kohat","meterOut":10,"meterIn":5}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTripHandler_CreateRejectsMalformedVehicleID(t *testing.T) {
	svc := new(MockTripService)
	w := doJSON(setupTripRouter(svc), http.MethodPost, "/trips", `{"vehicleId":"nope","destination":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateTrip", mock.Anything, mock.Anything)
}

func TestTripHandler_GetUpdateDelete(t *testing.T) {
	svc := new(MockTripService)
	svc.On("GetTrip", mock.Anything, "t1").Return(nil, services.ErrNotFound)
	svc.On("UpdateTrip", mock.Anything, "t2", mock.Anything).Return(&models.Trip{Status: models.TripStatusCancelled}, nil)
	svc.On("DeleteTrip", mock.Anything, "t3").Return(nil)
	router := setupTripRouter(svc)

	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodGet, "/trips/t1", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodPut, "/trips/t2", `{"status":"cancelled"}`).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPut, "/trips/t2", `{"status":"lost"}`).Code)
	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodDelete, "/trips/t3", nil).Code)
}
