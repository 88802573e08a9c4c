package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/config"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/controller"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/repository"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/service"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/configwatcher"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/database"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/logger"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/monitoring"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/security"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
	tracerProvider  *tracesdk.TracerProvider
}

type repositories struct {
	survey   *repository.SurveyRepository
	response *repository.ResponseRepository
	template *repository.TemplateRepository
}

type services struct {
	ai       *service.AIService
	survey   *service.SurveyService
	response *service.ResponseService
	results  *service.ResultsService
	template *service.TemplateService
	archive  *service.ExportArchiveService
}

type controllers struct {
	survey   *controller.SurveyController
	response *controller.ResponseController
	results  *controller.ResultsController
	template *controller.TemplateController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) onConfigReload(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		survey:   repository.NewSurveyRepository(db, rdb),
		response: repository.NewResponseRepository(db),
		template: repository.NewTemplateRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.survey = service.NewSurveyService(repos.survey, s.ai, cfg.Server.PublicOrigin)
	s.response = service.NewResponseService(repos.survey, repos.response)
	s.results = service.NewResultsService(repos.survey, repos.response)
	s.template = service.NewTemplateService(repos.template, repos.survey)
	s.archive = service.NewExportArchiveService(cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		survey:   controller.NewSurveyController(s.survey),
		response: controller.NewResponseController(s.response),
		results:  controller.NewResultsController(s.results, s.archive),
		template: controller.NewTemplateController(s.template),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks() {
	go configwatcher.WatchConfig(filepath.Join("configs", "config.yaml"), a.onConfigReload)
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	app.RegisterConfigCallback(func(c *config.Config) {
		services.survey.SetPublicOrigin(c.Server.PublicOrigin)
	})

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("easy-pulse-feedback", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers)

	app.startBackgroundTasks()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	logger.Log.Sync()

	log.Println("Server exiting")
}
