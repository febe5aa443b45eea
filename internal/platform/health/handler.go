package health

import (
	"net/http"

	"github.com/SlpAus/skillsprint-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// Handler 处理 GET /health
// 报告进程存活状态以及数据库和Redis的可用性。
func Handler(c *gin.Context) {
	dbStatus := "up"
	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	redisStatus := "disabled"
	if database.RedisEnabled() {
		if database.IsRedisHealthy() {
			redisStatus = "up"
		} else {
			redisStatus = "down"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       dbStatus == "up",
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
