package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"erp-backend/internal/api/handlers"
	"erp-backend/pkg/jwt"
	"erp-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, *jwt.JWTUtil) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "fleet_test_total", Help: "test"}))

	cfg := ratelimit.DefaultConfig()
	cfg.Limits[ratelimit.CategoryAuthLogin] = ratelimit.RateLimit{RequestsPerMinute: 2, BurstSize: 2, WindowSize: time.Minute}

	util := jwt.NewJWTUtil("routes-secret", time.Hour)
	router := gin.New()
	SetupRoutes(router, Dependencies{
		JWT:         util,
		RateLimiter: ratelimit.NewMemoryRateLimiter(cfg),
		Gatherer:    reg,
		Health:      handlers.NewHealthHandler(func(context.Context) error { return nil }, nil),
	})
	return router, util
}

func serve(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRoutes_PublicEndpoints(t *testing.T) {
	router, _ := setupRouter(t)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/health", "").Code)

	w := serve(router, http.MethodGet, "/api/v1/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fleet_test_total")
}

func TestRoutes_FleetRequiresToken(t *testing.T) {
	router, util := setupRouter(t)

	for _, path := range []string{
		"/api/v1/fleet/vehicles",
		"/api/v1/fleet/vehicles/compliance",
		"/api/v1/fleet/vehicles/maintenance-predictions",
		"/api/v1/fleet/trips",
		"/api/v1/fleet/maintenance",
		"/api/v1/fleet/fuel",
		"/api/v1/fleet/fuel/stats",
		"/api/v1/fleet/assignments",
		"/api/v1/fleet/assignments/507f1f77bcf86cd799439011",
		"/api/v1/fleet/reports/utilization",
		"/api/v1/fleet/reports/fuel-consumption",
		"/api/v1/fleet/reports/maintenance-costs",
		"/api/v1/fleet/stats",
		"/api/v1/fleet/export/vehicles",
		"/api/v1/auth/profile",
	} {
		assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, path, "").Code, path)
	}

	// a valid token gets past auth; the bad format is rejected before any service call
	token, err := util.GenerateToken("u1", "u1@pel.com.pk", "viewer")
	require.NoError(t, err)
	w := serve(router, http.MethodGet, "/api/v1/fleet/export/vehicles?format=pdf", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestRoutes_LoginIsRateLimited(t *testing.T) {
	router, _ := setupRouter(t)

	// empty bodies fail validation but still consume the login bucket
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/api/v1/auth/login", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/api/v1/auth/login", "").Code)

	w := serve(router, http.MethodPost, "/api/v1/auth/login", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
