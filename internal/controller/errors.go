package controller

import (
	"errors"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/util"

	"github.com/gin-gonic/gin"
)

// respondServiceError 把服务层错误翻译成统一响应：
// 校验失败400、找不到404、生成端点失败502、其余500
func respondServiceError(ctx *gin.Context, err error) {
	var validationErr *util.ValidationError
	var generationErr *util.GenerationError
	switch {
	case errors.As(err, &validationErr):
		util.BadRequest(ctx, validationErr.Message)
	case errors.Is(err, util.ErrSurveyNotFound),
		errors.Is(err, util.ErrSurveyNotOpen),
		errors.Is(err, util.ErrTemplateNotFound):
		util.NotFound(ctx)
	case errors.As(err, &generationErr):
		util.BadGateway(ctx, generationErr.Message)
	default:
		util.LogInternalError(ctx, err)
	}
}
