package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopcart/backend/internal/interfaces/http/dto"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
}

// RequireRoles creates middleware that lets the request through only when
// the caller holds at least one of roles. It must run after the JWT middleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return RequireRolesWithConfig(RoleConfig{}, roles...)
}

// RequireRolesWithConfig creates role middleware with custom config
func RequireRolesWithConfig(cfg RoleConfig, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetJWTUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}

		held := GetJWTRoles(c)
		if !hasAnyRole(held, roles) {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Role check failed",
					zap.String("user_id", userID),
					zap.Strings("required_any", roles),
					zap.Strings("held", held),
					zap.String("path", c.Request.URL.Path))
			}
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Insufficient role for this operation", GetRequestID(c)))
			return
		}

		c.Next()
	}
}

// HasRole reports whether the authenticated caller holds role
func HasRole(c *gin.Context, role string) bool {
	return slices.Contains(GetJWTRoles(c), role)
}

func hasAnyRole(held, required []string) bool {
	for _, r := range required {
		if slices.Contains(held, r) {
			return true
		}
	}
	return false
}
