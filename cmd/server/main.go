package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/skillsprint-backend/api"
	"github.com/SlpAus/skillsprint-backend/internal/checkin"
	"github.com/SlpAus/skillsprint-backend/internal/generator"
	"github.com/SlpAus/skillsprint-backend/internal/platform/config"
	"github.com/SlpAus/skillsprint-backend/internal/platform/database"
	"github.com/SlpAus/skillsprint-backend/internal/platform/health"
	"github.com/SlpAus/skillsprint-backend/internal/platform/shutdown"
	"github.com/SlpAus/skillsprint-backend/internal/platform/startup"
	"github.com/SlpAus/skillsprint-backend/internal/sprint"
	"github.com/SlpAus/skillsprint-backend/internal/task"
	"github.com/SlpAus/skillsprint-backend/internal/user"
	"github.com/SlpAus/skillsprint-backend/internal/xp"
	"github.com/SlpAus/skillsprint-backend/pkg/lifecycle"
	"github.com/SlpAus/skillsprint-backend/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env用于本地开发时注入生成服务的API密钥等敏感配置
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}

	token.Configure(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMinutes)
	database.InitDB(cfg.Database)
	database.InitRedis(cfg.Database.Redis)

	// 阻塞式获取初始Run ID，之后的健康检查以它为基准判断Redis是否重启过
	health.InitializeRunID()

	// 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 装配各模块的服务和Handler
	xpService := xp.NewService(database.DB)
	userService := user.NewService(database.DB)
	taskService := task.NewService(database.DB, xpService)
	planClient := generator.NewOpenRouterClient(cfg.Generator)
	sprintService := sprint.NewService(database.DB, planClient)
	checkinService := checkin.NewService(database.DB)

	handlers := &api.Handlers{
		Users:    user.NewHandler(userService),
		Sprints:  sprint.NewHandler(sprintService),
		Tasks:    task.NewHandler(taskService),
		XP:       xp.NewHandler(xpService),
		Checkins: checkin.NewHandler(checkinService, sprintService),
	}

	// 创建生命周期管理器并启动后台健康检查器
	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()

	healthHandle, err := gracefulMgr.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(fmt.Sprintf("无法注册健康检查器: %v", err))
	}
	go health.StartRedisHealthCheck(healthHandle)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, handlers)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 阻塞等待停机信号
	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
