// 手动初始化数据库并写入内置模板
//
// 正常启动时应用会自动完成这一步（release 模式除外）。
// 此脚本用于首次部署或只想准备数据库不起服务的场景。
//
// 用法: go run scripts/seed_templates.go

package main

import (
	"log"
	"os"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/config"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/database"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	// 强制执行迁移和种子数据，无视运行模式
	cfg.ForceMigrate = true

	db, err := database.InitDB(&cfg)
	if err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	var count int64
	db.Model(&model.SurveyTemplate{}).Count(&count)
	log.Printf("模板库就绪，共 %d 个模板", count)
}
