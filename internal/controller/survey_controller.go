package controller

import (
	"strconv"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/service"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/util"

	"github.com/gin-gonic/gin"
)

type SurveyController struct {
	Service *service.SurveyService
}

func NewSurveyController(svc *service.SurveyService) *SurveyController {
	return &SurveyController{Service: svc}
}

// @Summary 创建问卷
// @Description 连同题目一起保存，状态可为draft或published
// @Tags 问卷
// @Accept json
// @Produce json
// @Param body body service.CreateSurveyRequest true "问卷内容"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/surveys [post]
func (c *SurveyController) Create(ctx *gin.Context) {
	var req service.CreateSurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	survey, err := c.Service.CreateFromRequest(req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, survey)
}

// @Summary 问卷列表
// @Description 管理视图，带题目数与回答数
// @Tags 问卷
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/surveys [get]
func (c *SurveyController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	rows, total, err := c.Service.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  rows,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 问卷详情
// @Description 管理视图，任意状态可见
// @Tags 问卷
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/surveys/{id} [get]
func (c *SurveyController) Get(ctx *gin.Context) {
	survey, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, survey)
}

// @Summary 更新问卷
// @Description 修改标题、描述或状态
// @Tags 问卷
// @Accept json
// @Produce json
// @Param id path string true "问卷ID"
// @Param body body service.SurveyUpdate true "要修改的字段"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/surveys/{id} [patch]
func (c *SurveyController) Update(ctx *gin.Context) {
	var patch service.SurveyUpdate
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	survey, err := c.Service.Update(ctx.Request.Context(), ctx.Param("id"), patch)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, survey)
}

// @Summary 删除问卷
// @Description 连同题目、回答、答案一起删除
// @Tags 问卷
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/surveys/{id} [delete]
func (c *SurveyController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 分享链接
// @Description 返回作答链接与结果链接
// @Tags 问卷
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/surveys/{id}/share [get]
func (c *SurveyController) Share(ctx *gin.Context) {
	links, err := c.Service.ShareLinks(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, links)
}

// @Summary AI生成题目
// @Description 根据提示词生成一组题目，不落库
// @Tags 问卷
// @Accept json
// @Produce json
// @Param body body service.GenerateRequest true "生成提示"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/surveys/generate [post]
func (c *SurveyController) Generate(ctx *gin.Context) {
	var req service.GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.Service.GenerateQuestions(req.Prompt)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"questions": questions})
}
