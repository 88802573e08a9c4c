package service

import (
	"errors"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/repository"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/util"

	"gorm.io/gorm"
)

type TemplateService struct {
	templateRepo *repository.TemplateRepository
	surveyRepo   *repository.SurveyRepository
}

func NewTemplateService(templateRepo *repository.TemplateRepository, surveyRepo *repository.SurveyRepository) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		surveyRepo:   surveyRepo,
	}
}

type TemplateListItem struct {
	model.SurveyTemplate
	QuestionCount int `json:"questionCount"`
}

// List 按创建时间升序返回全部模板
func (s *TemplateService) List() ([]TemplateListItem, error) {
	templates, err := s.templateRepo.ListAll()
	if err != nil {
		return nil, err
	}
	items := make([]TemplateListItem, 0, len(templates))
	for _, t := range templates {
		items = append(items, TemplateListItem{
			SurveyTemplate: t,
			QuestionCount:  len(t.Questions),
		})
	}
	return items, nil
}

// Instantiate 从模板复制出一份新的草稿问卷。题目的类型、文本、
// 选项、必答标记和序号逐字照搬；模板本身不被改动。
func (s *TemplateService) Instantiate(templateID string) (*model.Survey, error) {
	template, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTemplateNotFound
		}
		return nil, err
	}

	survey := &model.Survey{
		Title:       template.Name,
		Description: template.Description,
		Status:      model.SurveyStatusDraft,
	}
	questions := make([]model.Question, 0, len(template.Questions))
	for _, entry := range template.Questions {
		questions = append(questions, model.Question{
			Type:       entry.Type,
			Text:       entry.Text,
			Options:    model.StringSlice(append([]string(nil), entry.Options...)),
			Required:   entry.Required,
			OrderIndex: entry.OrderIndex,
		})
	}

	if err := s.surveyRepo.CreateWithQuestions(survey, questions); err != nil {
		return nil, err
	}
	return survey, nil
}
