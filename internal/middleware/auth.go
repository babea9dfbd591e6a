package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/suteetoe/platformadmin/pkg/jwtutil"
	"github.com/suteetoe/platformadmin/pkg/logger"
	"github.com/suteetoe/platformadmin/prometheus"
)

// AuthMiddleware validates the JWT token from the Authorization header
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid authorization format, expected Bearer token"})
		}

		// Extract the token
		tokenString := parts[1]

		// Validate the token
		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or expired token"})
		}

		// Store user info in context for later use
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("user_role", claims.Role)

		// Token is valid, proceed with the request
		return next(c)
	}
}

// RequireSuperAdmin restricts a route group to users carrying the superadmin role claim.
// Must run after AuthMiddleware.
func RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		role, ok := c.Get("user_role").(string)
		if !ok || role != jwtutil.RoleSuperAdmin {
			log.Warn("Non-superadmin attempted platform-admin operation",
				zap.String("role", role),
				zap.String("path", c.Path()))
			prometheus.RecordAuthError("not_superadmin")
			return c.JSON(http.StatusForbidden, echo.Map{"message": "superadmin role required"})
		}

		return next(c)
	}
}
