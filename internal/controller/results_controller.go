package controller

import (
	"fmt"
	"net/http"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/service"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/util"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/logger"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ResultsController struct {
	Service *service.ResultsService
	Archive *service.ExportArchiveService
}

func NewResultsController(svc *service.ResultsService, archive *service.ExportArchiveService) *ResultsController {
	return &ResultsController{Service: svc, Archive: archive}
}

// @Summary 结果统计
// @Description 按题型返回选项计数、评分均值或文本列表
// @Tags 结果
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/surveys/{id}/results [get]
func (c *ResultsController) Get(ctx *gin.Context) {
	results, err := c.Service.Load(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, results)
}

// @Summary 导出CSV
// @Description 下载结果的CSV文件，开启归档时同时留档一份
// @Tags 结果
// @Produce text/csv
// @Param id path string true "问卷ID"
// @Success 200 {string} string "CSV内容"
// @Failure 404 {object} util.Response
// @Router /api/surveys/{id}/results/export [get]
func (c *ResultsController) Export(ctx *gin.Context) {
	file, err := c.Service.ExportCSV(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if err := c.Archive.Archive(ctx.Request.Context(), file); err != nil {
		logger.Log.Warn("Export archive failed", zap.String("filename", file.Filename), zap.Error(err))
	}

	monitoring.ExportsGenerated.Inc()
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	ctx.Data(http.StatusOK, "text/csv", file.Content)
}
