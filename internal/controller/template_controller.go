package controller

import (
	"github.com/Rexanaxx/easy-pulse-feedback/internal/service"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/util"

	"github.com/gin-gonic/gin"
)

type TemplateController struct {
	Service *service.TemplateService
}

func NewTemplateController(svc *service.TemplateService) *TemplateController {
	return &TemplateController{Service: svc}
}

// @Summary 模板列表
// @Description 按创建时间升序
// @Tags 模板
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/templates [get]
func (c *TemplateController) List(ctx *gin.Context) {
	items, err := c.Service.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, items)
}

// @Summary 从模板建问卷
// @Description 复制模板题目生成一份新草稿
// @Tags 模板
// @Produce json
// @Param id path string true "模板ID"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/templates/{id}/instantiate [post]
func (c *TemplateController) Instantiate(ctx *gin.Context) {
	survey, err := c.Service.Instantiate(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, survey)
}
