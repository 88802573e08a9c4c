package repository

import (
	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"

	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// CreateWithAnswers 一次提交的回答与所有答案作为一个事务写入
func (r *ResponseRepository) CreateWithAnswers(response *model.Response, answers []model.Answer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(response).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].ResponseID = response.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		response.Answers = answers
		return nil
	})
}

func (r *ResponseRepository) CountBySurvey(surveyID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Response{}).Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}

// ListAnswersBySurvey 先取问卷下的回答ID，再按ID集合拉全部答案，按提交时间升序
func (r *ResponseRepository) ListAnswersBySurvey(surveyID string) ([]model.Answer, error) {
	var responseIDs []string
	if err := r.DB.Model(&model.Response{}).Where("survey_id = ?", surveyID).Pluck("id", &responseIDs).Error; err != nil {
		return nil, err
	}
	if len(responseIDs) == 0 {
		return nil, nil
	}

	var answers []model.Answer
	err := r.DB.Where("response_id IN ?", responseIDs).
		Order("created_at ASC").
		Find(&answers).Error
	return answers, err
}
