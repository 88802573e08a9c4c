package controller

import (
	"log"
	"testing"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/config"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/repository"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/service"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestEnvironment 起一套与正式路由一致的测试环境：
// 内存sqlite，Redis与导出归档关闭，AI端点指向一个连不上的地址。
func SetupTestEnvironment(t *testing.T) (*gin.Engine, *gorm.DB) {
	return SetupTestEnvironmentWithAI(t, config.AIConfig{
		APIKey:  "test-key",
		BaseURL: "http://127.0.0.1:1",
		Model:   "test-model",
	})
}

// SetupTestEnvironmentWithAI 需要真实AI响应的用例传入自己的端点配置
func SetupTestEnvironmentWithAI(t *testing.T, aiCfg config.AIConfig) (*gin.Engine, *gorm.DB) {
	testing.Init()
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Survey{},
		&model.Question{},
		&model.Response{},
		&model.Answer{},
		&model.SurveyTemplate{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})

	surveyRepo := repository.NewSurveyRepository(db, nil)
	responseRepo := repository.NewResponseRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	aiService := service.NewAIService(aiCfg)
	surveyService := service.NewSurveyService(surveyRepo, aiService, "http://localhost:8080")
	responseService := service.NewResponseService(surveyRepo, responseRepo)
	resultsService := service.NewResultsService(surveyRepo, responseRepo)
	templateService := service.NewTemplateService(templateRepo, surveyRepo)
	archiveService := &service.ExportArchiveService{Enabled: false}

	surveyController := NewSurveyController(surveyService)
	responseController := NewResponseController(responseService)
	resultsController := NewResultsController(resultsService, archiveService)
	templateController := NewTemplateController(templateService)
	healthController := NewHealthController(db, nil)

	// 与router.go保持一致的路由注册
	router := gin.New()
	api := router.Group("/api")
	{
		api.GET("/health", healthController.HealthCheck)

		surveys := api.Group("/surveys")
		{
			surveys.POST("", surveyController.Create)
			surveys.GET("", surveyController.List)
			surveys.POST("/generate", surveyController.Generate)
			surveys.GET("/:id", surveyController.Get)
			surveys.PATCH("/:id", surveyController.Update)
			surveys.DELETE("/:id", surveyController.Delete)
			surveys.GET("/:id/share", surveyController.Share)

			surveys.GET("/:id/form", responseController.GetForm)
			surveys.POST("/:id/responses", responseController.Submit)

			surveys.GET("/:id/results", resultsController.Get)
			surveys.GET("/:id/results/export", resultsController.Export)
		}

		templates := api.Group("/templates")
		{
			templates.GET("", templateController.List)
			templates.POST("/:id/instantiate", templateController.Instantiate)
		}
	}

	return router, db
}

// ClearTables 按外键依赖顺序清空全部表
func ClearTables(db *gorm.DB) {
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Answer{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Response{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Question{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Survey{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.SurveyTemplate{})
}
