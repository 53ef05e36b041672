package middleware

import (
	"edutrack_backend/internal/config"
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/util"
	"edutrack_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the auth provider's access token and stores the caller's
// model.Identity on the context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.Auth.JWTSecret)
		if err != nil {
			logger.Log.Debug("JWT verification failed", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		util.SetIdentity(c, claims.Identity())
		c.Next()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := util.GetIdentity(c)
		if !ok {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		for _, role := range roles {
			if id.Role == role {
				c.Next()
				return
			}
		}

		util.Forbidden(c)
		c.Abort()
	}
}
