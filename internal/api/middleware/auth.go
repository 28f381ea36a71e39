package middleware

import (
	"net/http"
	"strings"

	"erp-backend/pkg/jwt"
	"erp-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthMiddleware accepts "Bearer <token>" or a bare token.
func AuthMiddleware(jwtUtil *jwt.JWTUtil) gin.HandlerFunc {
	log := logger.New("auth")

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			log.WithError(err).WithField("path", c.Request.URL.Path).Debug("Rejected token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}
