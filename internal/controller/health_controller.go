package controller

import (
	"edutrack_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewHealthController accepts nil db (memory driver) and nil rdb (cache disabled).
func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// @Summary Health check
// @Description Reports database and cache status
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	components := gin.H{"database": "memory", "cache": "disabled"}

	// database
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			util.InternalServerError(ctx)
			return
		}
		if err := sqlDB.PingContext(ctx.Request.Context()); err != nil {
			util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		components["database"] = "up"
	}

	if c.Redis != nil {
		if err := c.Redis.Ping(ctx.Request.Context()).Err(); err != nil {
			// degraded, not down
			components["cache"] = "down"
		} else {
			components["cache"] = "up"
		}
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
