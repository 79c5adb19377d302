package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/zurichjs/rewards/internal/auth"
	"github.com/zurichjs/rewards/internal/config"
	"github.com/zurichjs/rewards/internal/logger"
	"github.com/zurichjs/rewards/internal/types"
)

// AuthenticateMiddleware validates the auth provider's session JWT from
// the Authorization header and places the caller's identity in the
// request context.
func AuthenticateMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	validator := auth.NewValidator(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := validator.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debugw("failed to validate token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = types.SetUserID(ctx, claims.UserID)
		ctx = types.SetUserEmail(ctx, claims.Email)
		ctx = types.SetRoles(ctx, claims.Roles)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AdminMiddleware gates the coupon lifecycle and credit management
// routes. A caller passes with the admin role in their token or by
// appearing on the configured allowlist.
func AdminMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if types.IsAdmin(ctx) || lo.Contains(cfg.Auth.AdminUserIDs, types.GetUserID(ctx)) {
			c.Next()
			return
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		c.Abort()
	}
}
