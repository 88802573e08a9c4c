package app

import (
	"github.com/Rexanaxx/easy-pulse-feedback/docs"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 问卷管理
		surveys := api.Group("/surveys")
		{
			surveys.POST("", c.survey.Create)
			surveys.GET("", c.survey.List)
			surveys.POST("/generate", c.survey.Generate)
			surveys.GET("/:id", c.survey.Get)
			surveys.PATCH("/:id", c.survey.Update)
			surveys.DELETE("/:id", c.survey.Delete)
			surveys.GET("/:id/share", c.survey.Share)

			// 作答端，匿名开放
			surveys.GET("/:id/form", c.response.GetForm)
			surveys.POST("/:id/responses", c.response.Submit)

			// 结果端
			surveys.GET("/:id/results", c.results.Get)
			surveys.GET("/:id/results/export", c.results.Export)
		}

		// 模板库
		templates := api.Group("/templates")
		{
			templates.GET("", c.template.List)
			templates.POST("/:id/instantiate", c.template.Instantiate)
		}
	}
}
