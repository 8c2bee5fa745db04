package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/wayfind/res/internal/chain"
	"github.com/wayfind/res/internal/config"
	"github.com/wayfind/res/internal/database"
	"github.com/wayfind/res/internal/logger"
	"github.com/wayfind/res/internal/monitor"
	"github.com/wayfind/res/internal/router"
	"github.com/wayfind/res/internal/task"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	initLogger(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 启用时初始化链上燃烧事件监听
	if cfg.Chain.Enabled {
		chainClient, err := chain.Init(cfg.Chain)
		if err != nil {
			log.Fatalf("Failed to initialize chain client: %v", err)
		}

		burnMonitor, err := monitor.NewBurnMonitor(chainClient, db, cfg)
		if err != nil {
			log.Fatalf("Failed to create burn monitor: %v", err)
		}
		if err := burnMonitor.Start(); err != nil {
			log.Fatalf("Failed to start burn monitor: %v", err)
		}
		defer burnMonitor.Stop()
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, cfg)

	// 启动定时任务
	manager := task.Start(db, cfg)
	defer manager.Stop()

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initLogger 按配置初始化全局日志器
func initLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	var l *logger.Logger
	var err error
	if cfg.Output == "file" {
		l, err = logger.NewWithFileRotation(level, cfg.File)
	} else {
		l, err = logger.New(level)
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	logger.SetDefaultLogger(l)
}
