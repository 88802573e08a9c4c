package controller

import (
	"github.com/Rexanaxx/easy-pulse-feedback/internal/service"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/util"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type ResponseController struct {
	Service *service.ResponseService
}

func NewResponseController(svc *service.ResponseService) *ResponseController {
	return &ResponseController{Service: svc}
}

// @Summary 加载作答表单
// @Description 仅已发布问卷可见；不存在与未发布均返回404
// @Tags 作答
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/surveys/{id}/form [get]
func (c *ResponseController) GetForm(ctx *gin.Context) {
	draft, err := c.Service.LoadForm(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, draft.Survey)
}

// @Summary 提交回答
// @Description 匿名提交，回答与答案一起落库
// @Tags 作答
// @Accept json
// @Produce json
// @Param id path string true "问卷ID"
// @Param body body service.SubmitResponseRequest true "各题答案"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/surveys/{id}/responses [post]
func (c *ResponseController) Submit(ctx *gin.Context) {
	var req service.SubmitResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	response, err := c.Service.SubmitFromRequest(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	monitoring.ResponsesSubmitted.Inc()
	util.Created(ctx, response)
}
