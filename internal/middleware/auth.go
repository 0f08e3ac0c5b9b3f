package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/repository"
)

const authContextKey = "authContext"

// AuthContext is the authenticated identity attached to the request after a
// successful verification. It lives only for the request's lifetime.
type AuthContext struct {
	AdminID  int64
	Username string
	Role     string
}

// GetAuthContext returns the identity set by Auth, if any.
func GetAuthContext(c *gin.Context) (AuthContext, bool) {
	v, ok := c.Get(authContextKey)
	if !ok {
		return AuthContext{}, false
	}
	ac, ok := v.(AuthContext)
	return ac, ok
}

// Auth creates a Gin middleware for JWT authentication. The gate fails
// closed: extraction, verification, identity load and the active check each
// reject with 401. The messages stay distinct for debuggability; all paths
// share the status code.
func Auth(tokens *auth.TokenManager, admins repository.AdminRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearer(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Access denied. No token provided.",
			})
			return
		}

		adminID, err := tokens.Verify(tokenString)
		if err != nil {
			// Expiry, bad signature and malformed tokens collapse into one
			// external outcome; the log keeps them apart.
			logger.Warn("Token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid token",
			})
			return
		}

		admin, err := admins.GetByID(adminID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				logger.Warn("Token valid but admin not found", zap.Int64("admin_id", adminID))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"status":  "error",
					"message": "Token is valid but admin not found",
				})
				return
			}
			logger.Error("Failed to load admin during authentication", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Server error in authentication",
			})
			return
		}

		if !admin.IsActive {
			logger.Warn("Deactivated admin attempted access", zap.Int64("admin_id", adminID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Admin account is deactivated",
			})
			return
		}

		c.Set(authContextKey, AuthContext{
			AdminID:  admin.ID,
			Username: admin.Username,
			Role:     admin.Role,
		})

		c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated role is
// in the given set. Must run after Auth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := GetAuthContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Access denied. No token provided.",
			})
			return
		}

		for _, role := range roles {
			if ac.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Access denied. Insufficient permissions.",
		})
	}
}

// extractBearer pulls the token out of an "Authorization: Bearer <token>"
// header. Anything else counts as no token.
func extractBearer(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
