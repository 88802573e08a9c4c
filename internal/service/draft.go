package service

import (
	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/util"
)

// SurveyDraft 问卷编辑器的内存草稿，保存前的所有编辑都落在这里。
// 题目的order_index始终等于其列表位置，增删后统一重排。
type SurveyDraft struct {
	Title       string
	Description string
	Questions   []model.Question
}

func NewSurveyDraft(title, description string) *SurveyDraft {
	return &SurveyDraft{Title: title, Description: description}
}

// AddQuestion 追加一道默认题：单选、一个空选项、非必答
func (d *SurveyDraft) AddQuestion() {
	d.Questions = append(d.Questions, model.Question{
		Type:       model.QuestionTypeMultipleChoice,
		Text:       "",
		Options:    model.StringSlice{""},
		Required:   false,
		OrderIndex: len(d.Questions),
	})
}

func (d *SurveyDraft) RemoveQuestion(i int) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	d.Questions = append(d.Questions[:i], d.Questions[i+1:]...)
	d.reindex()
	return nil
}

func (d *SurveyDraft) UpdateQuestionText(i int, text string) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	d.Questions[i].Text = text
	return nil
}

// UpdateQuestionType 换题型时保留已录入的文本和选项
func (d *SurveyDraft) UpdateQuestionType(i int, t model.QuestionType) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	if !t.Valid() {
		return util.NewValidationError("Unknown question type %q", string(t))
	}
	d.Questions[i].Type = t
	return nil
}

func (d *SurveyDraft) SetQuestionRequired(i int, required bool) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	d.Questions[i].Required = required
	return nil
}

func (d *SurveyDraft) AddOption(qIndex int) error {
	if err := d.checkIndex(qIndex); err != nil {
		return err
	}
	d.Questions[qIndex].Options = append(d.Questions[qIndex].Options, "")
	return nil
}

func (d *SurveyDraft) UpdateOption(qIndex, optIndex int, value string) error {
	if err := d.checkOptionIndex(qIndex, optIndex); err != nil {
		return err
	}
	d.Questions[qIndex].Options[optIndex] = value
	return nil
}

// RemoveOption 允许删到零个选项，校验推迟到保存时
func (d *SurveyDraft) RemoveOption(qIndex, optIndex int) error {
	if err := d.checkOptionIndex(qIndex, optIndex); err != nil {
		return err
	}
	opts := d.Questions[qIndex].Options
	d.Questions[qIndex].Options = append(opts[:optIndex], opts[optIndex+1:]...)
	return nil
}

// ReplaceQuestions 整体替换题目列表并按位置重排，AI生成成功后调用
func (d *SurveyDraft) ReplaceQuestions(questions []model.Question) {
	d.Questions = questions
	d.reindex()
}

func (d *SurveyDraft) reindex() {
	for i := range d.Questions {
		d.Questions[i].OrderIndex = i
	}
}

func (d *SurveyDraft) checkIndex(i int) error {
	if i < 0 || i >= len(d.Questions) {
		return util.NewValidationError("Question index %d out of range", i)
	}
	return nil
}

func (d *SurveyDraft) checkOptionIndex(qIndex, optIndex int) error {
	if err := d.checkIndex(qIndex); err != nil {
		return err
	}
	if optIndex < 0 || optIndex >= len(d.Questions[qIndex].Options) {
		return util.NewValidationError("Option index %d out of range", optIndex)
	}
	return nil
}
