package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/FitnessArc/fitness-arc-backend/api"
	"github.com/FitnessArc/fitness-arc-backend/internal/leaderboard"
	"github.com/FitnessArc/fitness-arc-backend/internal/platform/config"
	"github.com/FitnessArc/fitness-arc-backend/internal/platform/database"
	"github.com/FitnessArc/fitness-arc-backend/internal/platform/health"
	"github.com/FitnessArc/fitness-arc-backend/internal/platform/shutdown"
	"github.com/FitnessArc/fitness-arc-backend/internal/platform/startup"
	"github.com/FitnessArc/fitness-arc-backend/pkg/lifecycle"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env文件是可选的，仅本地开发使用
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}

	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 1. 阻塞式获取初始Run ID
	health.InitializeRunID()

	// 2. 执行应用首次启动初始化流程（迁移、种子数据、缓存预热）
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 3. 阻塞式执行一次启动后健康检查
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	// 4. 创建两阶段停机所需的生命周期管理器
	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()

	// 5. 启动后台服务：健康检查器与排行榜周期刷新
	healthHandle, err := forcefulMgr.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(err)
	}
	health.StartRedisHealthCheck(healthHandle)

	refreshHandle, err := gracefulMgr.NewServiceHandle("leaderboard-refresher")
	if err != nil {
		panic(err)
	}
	refreshInterval := time.Duration(cfg.Leaderboard.RefreshIntervalMinutes) * time.Minute
	leaderboard.StartPeriodicRefresher(refreshHandle, refreshInterval)

	// 6. 组装HTTP服务器
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic("服务器启动失败: " + err.Error())
		}
	}()

	// 7. 阻塞等待停机信号，并编排两阶段优雅停机
	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
