// @title Easy Pulse Feedback API
// @version 1.0
// @description 问卷创建与匿名回答收集服务。

// @host localhost:8080
// @BasePath /api

package main

import (
	"flag"
	"log"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/app"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/config"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/logger"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	application.Run()
}
