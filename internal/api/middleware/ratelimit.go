package middleware

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"erp-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RateLimitMiddleware creates a rate limiting middleware
func RateLimitMiddleware(limiter ratelimit.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := getClientID(c)
		category := ratelimit.Category(c.Request.Method, c.Request.URL.Path)

		decision, err := limiter.Allow(c.Request.Context(), clientID, category)
		if err != nil {
			// fail open
			log.WithError(err).WithField("category", category).Warn("Rate limiter unavailable")
			c.Header("X-RateLimit-Error", "Rate limiter unavailable")
			c.Next()
			return
		}

		setRateLimitHeaders(c, decision)

		if !decision.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "Rate limit exceeded",
				"message":    fmt.Sprintf("Too many requests. Try again in %v", decision.RetryAfter.Round(time.Second)),
				"code":       "RATE_LIMIT_EXCEEDED",
				"retryAfter": retryAfterSeconds(decision.RetryAfter),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getClientID prefers the authenticated user, then an API key, then
// the client address plus a hash of its User-Agent.
func getClientID(c *gin.Context) string {
	if userID, exists := c.Get(ContextUserID); exists {
		if uid, ok := userID.(string); ok && uid != "" {
			return "user:" + uid
		}
	}

	if apiKey := c.GetHeader("X-API-Key"); apiKey != "" {
		return "api:" + hashString(apiKey)
	}

	return fmt.Sprintf("anon:%s:%s", getClientIP(c), hashString(c.GetHeader("User-Agent")))
}

// getClientIP extracts the real client IP address
func getClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}

	return c.ClientIP()
}

func hashString(s string) string {
	if s == "" {
		return "unknown"
	}
	h := fnv.New32a()
	h.Write([]byte(s))
	return fmt.Sprintf("%08x", h.Sum32())
}

func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

func setRateLimitHeaders(c *gin.Context, d ratelimit.Decision) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit.RequestsPerMinute))
	c.Header("X-RateLimit-Window", strconv.Itoa(int(d.Limit.WindowSize.Seconds())))
	c.Header("X-RateLimit-Burst", strconv.Itoa(d.Limit.BurstSize))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(max(d.Remaining, 0)))

	if !d.Allowed {
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(d.RetryAfter)))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(d.RetryAfter).Unix(), 10))
	}
}
