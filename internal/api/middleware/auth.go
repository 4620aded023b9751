package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tokentasks/internal/domain"
	"tokentasks/internal/services"
)

// userContextKey is the gin context key the authenticated caregiver is stored under.
const userContextKey = "caregiver"

// AuthMiddleware gates caregiver-only routes behind a valid session token.
type AuthMiddleware struct {
	authService services.AuthService
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireCaregiver validates the bearer token and stores the caregiver in the
// request context.
func (m *AuthMiddleware) RequireCaregiver() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"type":    "AUTHENTICATION_ERROR",
					"code":    "MISSING_TOKEN",
					"message": "Caregiver session token is required",
				},
			})
			return
		}

		user, err := m.authService.ValidateSession(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"type":    "AUTHENTICATION_ERROR",
					"code":    "INVALID_TOKEN",
					"message": "Invalid or expired session token",
				},
			})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// GetCaregiverFromContext extracts the authenticated caregiver, if any.
func GetCaregiverFromContext(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
