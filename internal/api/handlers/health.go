package handlers

import (
	"context"
	"net/http"
	"time"

	"erp-backend/pkg/redis"

	"github.com/gin-gonic/gin"
)

// RedisHealth is the part of the self-healing redis client the health check reads.
type RedisHealth interface {
	HealthCheck(ctx context.Context) redis.HealthStatus
	GetConnectionStats() map[string]interface{}
}

type HealthHandler struct {
	pingMongo func(ctx context.Context) error
	redis     RedisHealth
	now       func() time.Time
}

type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Services  map[string]interface{} `json:"services"`
}

// NewHealthHandler takes the Mongo ping and an optional redis client.
// A nil redis reports the cache as disabled.
func NewHealthHandler(pingMongo func(ctx context.Context) error, redisClient RedisHealth) *HealthHandler {
	return &HealthHandler{
		pingMongo: pingMongo,
		redis:     redisClient,
		now:       time.Now,
	}
}

// HealthCheck answers 503 when MongoDB is unreachable. Redis only backs the
// cache and rate limiter, both of which fail open, so losing it is "degraded".
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: h.now(),
		Services:  make(map[string]interface{}),
	}

	mongoStatus := h.checkMongoDB(c.Request.Context())
	response.Services["mongodb"] = mongoStatus

	redisStatus := h.checkRedis(c.Request.Context())
	response.Services["redis"] = redisStatus

	code := http.StatusOK
	switch {
	case !mongoStatus["healthy"].(bool):
		response.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	case redisStatus["enabled"].(bool) && !redisStatus["healthy"].(bool):
		response.Status = "degraded"
	}

	c.JSON(code, response)
}

func (h *HealthHandler) checkMongoDB(ctx context.Context) map[string]interface{} {
	status := map[string]interface{}{
		"service": "mongodb",
		"healthy": false,
	}

	if h.pingMongo == nil {
		status["error"] = "Database client not initialized"
		return status
	}

	start := time.Now()
	err := h.pingMongo(ctx)
	status["responseTime"] = time.Since(start).String()
	if err != nil {
		status["error"] = err.Error()
		return status
	}
	status["healthy"] = true
	status["message"] = "Connected"
	return status
}

func (h *HealthHandler) checkRedis(ctx context.Context) map[string]interface{} {
	status := map[string]interface{}{
		"service": "redis",
		"enabled": h.redis != nil,
		"healthy": false,
	}

	if h.redis == nil {
		status["message"] = "Disabled"
		return status
	}

	healthStatus := h.redis.HealthCheck(ctx)
	status["healthy"] = healthStatus.IsConnected
	status["connectionInfo"] = healthStatus.ConnectionInfo
	status["responseTime"] = healthStatus.ResponseTime.String()
	status["lastPing"] = healthStatus.LastPing
	if healthStatus.Error != "" {
		status["error"] = healthStatus.Error
	}
	status["connectionStats"] = h.redis.GetConnectionStats()

	return status
}
