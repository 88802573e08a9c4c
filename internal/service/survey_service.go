package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/repository"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/util"

	"gorm.io/gorm"
)

type SurveyService struct {
	surveyRepo *repository.SurveyRepository
	aiService  *AIService

	mu           sync.RWMutex
	publicOrigin string
}

func NewSurveyService(surveyRepo *repository.SurveyRepository, aiService *AIService, publicOrigin string) *SurveyService {
	return &SurveyService{
		surveyRepo:   surveyRepo,
		aiService:    aiService,
		publicOrigin: publicOrigin,
	}
}

// QuestionPayload 创建问卷时提交的单题
type QuestionPayload struct {
	Type     model.QuestionType `json:"type"`
	Text     string             `json:"text"`
	Options  []string           `json:"options"`
	Required bool               `json:"required"`
}

type CreateSurveyRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      model.SurveyStatus `json:"status"`
	Questions   []QuestionPayload  `json:"questions"`
}

// CreateFromRequest 把请求体装进草稿再走统一的校验和保存
func (s *SurveyService) CreateFromRequest(req CreateSurveyRequest) (*model.Survey, error) {
	draft := NewSurveyDraft(req.Title, req.Description)
	for _, p := range req.Questions {
		draft.Questions = append(draft.Questions, model.Question{
			Type:     p.Type,
			Text:     p.Text,
			Options:  model.StringSlice(p.Options),
			Required: p.Required,
		})
	}
	draft.ReplaceQuestions(draft.Questions)

	status := req.Status
	if status == "" {
		status = model.SurveyStatusDraft
	}
	return s.Create(draft, status)
}

// Create 校验草稿并在一个事务里写入问卷和题目。
// 校验不通过时不触碰存储；题目顺序以列表位置为准重新编号。
func (s *SurveyService) Create(draft *SurveyDraft, status model.SurveyStatus) (*model.Survey, error) {
	if status != model.SurveyStatusDraft && status != model.SurveyStatusPublished {
		return nil, util.NewValidationError("Status must be draft or published")
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	survey := &model.Survey{
		Title:       strings.TrimSpace(draft.Title),
		Description: draft.Description,
		Status:      status,
	}
	questions := make([]model.Question, len(draft.Questions))
	copy(questions, draft.Questions)
	for i := range questions {
		questions[i].OrderIndex = i
	}

	if err := s.surveyRepo.CreateWithQuestions(survey, questions); err != nil {
		return nil, err
	}
	return survey, nil
}

func validateDraft(draft *SurveyDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return util.NewValidationError("Survey title is required")
	}
	for i, q := range draft.Questions {
		if !q.Type.Valid() {
			return util.NewValidationError("Question %d has unknown type %q", i+1, string(q.Type))
		}
		if strings.TrimSpace(q.Text) == "" {
			return util.NewValidationError("Question %d text is required", i+1)
		}
		if q.Type.RequiresOptions() && len(q.Options) == 0 {
			return util.NewValidationError("Question %d needs at least one option", i+1)
		}
	}
	return nil
}

func (s *SurveyService) Get(id string) (*model.Survey, error) {
	survey, err := s.surveyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSurveyNotFound
		}
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) List(page, limit int) ([]repository.SurveyListRow, int64, error) {
	return s.surveyRepo.List(page, limit)
}

// SurveyUpdate 局部更新，nil字段保持原值
type SurveyUpdate struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Status      *model.SurveyStatus `json:"status"`
}

// Update 修改标题、描述或状态；状态只要求是枚举内的值，不强加状态机
func (s *SurveyService) Update(ctx context.Context, id string, patch SurveyUpdate) (*model.Survey, error) {
	survey, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, util.NewValidationError("Survey title is required")
		}
		survey.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		survey.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, util.NewValidationError("Unknown survey status %q", string(*patch.Status))
		}
		survey.Status = *patch.Status
	}

	// Save只更新问卷行，避免把预加载的题目再写一遍
	stored := *survey
	stored.Questions = nil
	if err := s.surveyRepo.Update(&stored); err != nil {
		return nil, err
	}
	survey.UpdatedAt = stored.UpdatedAt

	s.surveyRepo.InvalidateFormCache(ctx, id)
	return survey, nil
}

func (s *SurveyService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.surveyRepo.Delete(id); err != nil {
		return err
	}
	s.surveyRepo.InvalidateFormCache(ctx, id)
	return nil
}

// SetPublicOrigin 配置热加载时切换分享链接的域名
func (s *SurveyService) SetPublicOrigin(origin string) {
	s.mu.Lock()
	s.publicOrigin = strings.TrimRight(origin, "/")
	s.mu.Unlock()
}

func (s *SurveyService) origin() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.publicOrigin
}

// ShareLinks 拼出问卷的作答链接和结果链接
type ShareLinks struct {
	RespondentURL string `json:"respondentUrl"`
	ResultsURL    string `json:"resultsUrl"`
}

func (s *SurveyService) ShareLinks(id string) (*ShareLinks, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	origin := s.origin()
	return &ShareLinks{
		RespondentURL: fmt.Sprintf("%s/survey/%s", origin, id),
		ResultsURL:    fmt.Sprintf("%s/survey/%s/results", origin, id),
	}, nil
}

type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

func (s *SurveyService) GenerateQuestions(prompt string) ([]model.Question, error) {
	return s.aiService.GenerateQuestions(prompt)
}

// GenerateWithAI 生成成功时整体替换草稿题目，失败时草稿原样保留
func (s *SurveyService) GenerateWithAI(draft *SurveyDraft, prompt string) error {
	questions, err := s.aiService.GenerateQuestions(prompt)
	if err != nil {
		return err
	}
	draft.ReplaceQuestions(questions)
	return nil
}
