package service

import (
	"context"
	"errors"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/repository"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/util"

	"gorm.io/gorm"
)

// ResponseDraft 一次作答会话的内存累积器。随表单加载创建，
// 提交或离开后丢弃；值以题目ID为键，覆盖写。
type ResponseDraft struct {
	Survey  *model.Survey
	answers map[string]string
}

func NewResponseDraft(survey *model.Survey) *ResponseDraft {
	return &ResponseDraft{
		Survey:  survey,
		answers: make(map[string]string),
	}
}

// RecordAnswer 记录或覆盖一题的当前值；空串视为清除该题作答
func (d *ResponseDraft) RecordAnswer(questionID, value string) error {
	found := false
	for _, q := range d.Survey.Questions {
		if q.ID == questionID {
			found = true
			break
		}
	}
	if !found {
		return util.NewValidationError("Question %s does not belong to this survey", questionID)
	}
	if value == "" {
		delete(d.answers, questionID)
		return nil
	}
	d.answers[questionID] = value
	return nil
}

// Progress 已答题数占总题数的比例，零题时为0
func (d *ResponseDraft) Progress() float64 {
	total := len(d.Survey.Questions)
	if total == 0 {
		return 0
	}
	return float64(len(d.answers)) / float64(total)
}

// MissingRequired 按题目顺序列出尚未作答的必答题
func (d *ResponseDraft) MissingRequired() []model.Question {
	var missing []model.Question
	for _, q := range d.Survey.Questions {
		if q.Required {
			if _, ok := d.answers[q.ID]; !ok {
				missing = append(missing, q)
			}
		}
	}
	return missing
}

// AccumulatedAnswers 按题目顺序导出已录入的答案
func (d *ResponseDraft) AccumulatedAnswers() []model.Answer {
	var answers []model.Answer
	for _, q := range d.Survey.Questions {
		if value, ok := d.answers[q.ID]; ok {
			answers = append(answers, model.Answer{
				QuestionID: q.ID,
				Value:      value,
			})
		}
	}
	return answers
}

type ResponseService struct {
	surveyRepo   *repository.SurveyRepository
	responseRepo *repository.ResponseRepository
}

func NewResponseService(surveyRepo *repository.SurveyRepository, responseRepo *repository.ResponseRepository) *ResponseService {
	return &ResponseService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
	}
}

// LoadForm 只对已发布问卷开放；不存在与未发布对外不可区分
func (s *ResponseService) LoadForm(ctx context.Context, surveyID string) (*ResponseDraft, error) {
	survey, err := s.surveyRepo.FindPublishedForm(ctx, surveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSurveyNotOpen
		}
		return nil, err
	}
	return NewResponseDraft(survey), nil
}

// AnswerPayload 提交的一题作答
type AnswerPayload struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

type SubmitResponseRequest struct {
	Answers []AnswerPayload `json:"answers"`
}

// SubmitFromRequest 走完整的作答流程：加载已发布表单、逐题录入、提交
func (s *ResponseService) SubmitFromRequest(ctx context.Context, surveyID string, req SubmitResponseRequest) (*model.Response, error) {
	draft, err := s.LoadForm(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	for _, a := range req.Answers {
		if err := draft.RecordAnswer(a.QuestionID, a.Value); err != nil {
			return nil, err
		}
	}
	return s.Submit(draft)
}

// Submit 校验必答题后把一次回答连同所有答案作为一个事务落库。
// 校验失败时不写任何行；可选题未作答不产生答案行。
func (s *ResponseService) Submit(draft *ResponseDraft) (*model.Response, error) {
	missing := draft.MissingRequired()
	if len(missing) > 0 {
		return nil, util.NewValidationError("%d required question(s) are missing an answer", len(missing))
	}

	response := &model.Response{SurveyID: draft.Survey.ID}
	if err := s.responseRepo.CreateWithAnswers(response, draft.AccumulatedAnswers()); err != nil {
		return nil, err
	}
	return response, nil
}
