package api

import (
	"github.com/SlpAus/skillsprint-backend/internal/checkin"
	"github.com/SlpAus/skillsprint-backend/internal/platform/health"
	"github.com/SlpAus/skillsprint-backend/internal/sprint"
	"github.com/SlpAus/skillsprint-backend/internal/task"
	"github.com/SlpAus/skillsprint-backend/internal/user"
	"github.com/SlpAus/skillsprint-backend/internal/xp"
	"github.com/gin-gonic/gin"
)

// Handlers 汇集了所有模块的Handler，由main在装配完成后传入。
type Handlers struct {
	Users    *user.Handler
	Sprints  *sprint.Handler
	Tasks    *task.Handler
	XP       *xp.Handler
	Checkins *checkin.Handler
}

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/health", health.Handler)

	api := router.Group("/api")
	{
		// 用户与认证相关的路由组 /api/users
		userRoutes := api.Group("/users")
		{
			userRoutes.POST("", h.Users.Register)
			userRoutes.POST("/login", h.Users.Login)
			userRoutes.POST("/logout", user.RequireAuth(), h.Users.Logout)

			// 经验值聚合挂在用户路由下，与前端的历史约定保持一致
			userRoutes.GET("/xp/total", user.RequireAuth(), h.XP.TotalXP)
			userRoutes.GET("/xp/sprint/:sprintId", user.RequireAuth(), h.XP.SprintXP)

			userRoutes.GET("/:id", h.Users.GetByID)
		}

		// 冲刺相关的路由组 /api/sprints，全部需要认证
		sprintRoutes := api.Group("/sprints", user.RequireAuth())
		{
			sprintRoutes.POST("", h.Sprints.Create)
			sprintRoutes.GET("", h.Sprints.List)
			sprintRoutes.GET("/:id", h.Sprints.GetByID)

			// 每日打卡
			sprintRoutes.POST("/:id/checkins", h.Checkins.Create)
			sprintRoutes.GET("/:id/checkins", h.Checkins.List)
		}

		// 任务相关的路由组 /api/tasks，全部需要认证
		taskRoutes := api.Group("/tasks", user.RequireAuth())
		{
			taskRoutes.POST("", h.Tasks.Create)
			taskRoutes.GET("", h.Tasks.List)
			taskRoutes.GET("/status/:status", h.Tasks.ListByStatus)
			taskRoutes.GET("/:id", h.Tasks.GetByID)
			taskRoutes.PATCH("/:id", h.Tasks.PatchTask)
			taskRoutes.PATCH("/:id/status", h.Tasks.UpdateStatus)
			taskRoutes.DELETE("/:id", h.Tasks.Delete)
		}

		// 排行榜是公开数据，不需要认证
		api.GET("/xp/leaderboard", h.XP.Leaderboard)
	}
}
