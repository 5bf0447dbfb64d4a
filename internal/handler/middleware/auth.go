package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"booking-concierge/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const ctxUserIDKey = "user_id"

type AuthMiddleware struct {
	jwtService *jwt.Service
}

func NewAuthMiddleware(jwtService *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// RequireAuth guards direct-query endpoints with a bearer token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		token := strings.TrimSpace(authHeader[len("Bearer "):])
		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, claims.Subject)
		c.Set("jwt_claims", map[string]any{
			"user_id": claims.Subject,
		})
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}
