package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// formCacheTTL 已发布问卷的表单缓存时长
const formCacheTTL = 5 * time.Minute

type SurveyRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewSurveyRepository(db *gorm.DB, rdb *redis.Client) *SurveyRepository {
	return &SurveyRepository{DB: db, Redis: rdb}
}

// CreateWithQuestions 在一个事务内写入问卷及其全部题目
func (r *SurveyRepository) CreateWithQuestions(survey *model.Survey, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(survey).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].SurveyID = survey.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		survey.Questions = questions
		return nil
	})
}

func (r *SurveyRepository) FindByID(id string) (*model.Survey, error) {
	var survey model.Survey
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&survey, "id = ?", id).Error
	return &survey, err
}

// FindPublishedForm 加载可作答的问卷，优先走Redis缓存；缓存故障时静默退回数据库
func (r *SurveyRepository) FindPublishedForm(ctx context.Context, id string) (*model.Survey, error) {
	key := formCacheKey(id)
	if r.Redis != nil {
		cached, err := r.Redis.Get(ctx, key).Result()
		if err == nil {
			var survey model.Survey
			if err := json.Unmarshal([]byte(cached), &survey); err == nil {
				return &survey, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("Survey form cache read failed", zap.String("surveyId", id), zap.Error(err))
		}
	}

	var survey model.Survey
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&survey, "id = ? AND status = ?", id, model.SurveyStatusPublished).Error
	if err != nil {
		return nil, err
	}

	if r.Redis != nil {
		if data, err := json.Marshal(&survey); err == nil {
			if err := r.Redis.Set(ctx, key, data, formCacheTTL).Err(); err != nil {
				logger.Log.Warn("Survey form cache write failed", zap.String("surveyId", id), zap.Error(err))
			}
		}
	}
	return &survey, nil
}

// InvalidateFormCache 问卷变更后清掉表单缓存
func (r *SurveyRepository) InvalidateFormCache(ctx context.Context, id string) {
	if r.Redis == nil {
		return
	}
	if err := r.Redis.Del(ctx, formCacheKey(id)).Err(); err != nil {
		logger.Log.Warn("Survey form cache invalidation failed", zap.String("surveyId", id), zap.Error(err))
	}
}

func formCacheKey(id string) string {
	return fmt.Sprintf("survey:form:%s", id)
}

type SurveyListRow struct {
	model.Survey
	QuestionCount int `json:"questionCount"`
	ResponseCount int `json:"responseCount"`
}

func (r *SurveyRepository) List(page, limit int) ([]SurveyListRow, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Survey{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []SurveyListRow
	dbQuery := r.DB.Table("surveys s").
		Select("s.*, " +
			"(SELECT COUNT(*) FROM questions q WHERE q.survey_id = s.id) as question_count, " +
			"(SELECT COUNT(*) FROM responses r WHERE r.survey_id = s.id) as response_count")

	if limit > 0 {
		offset := (page - 1) * limit
		dbQuery = dbQuery.Offset(offset).Limit(limit)
	}

	err := dbQuery.Order("s.created_at desc").Scan(&rows).Error
	return rows, total, err
}

func (r *SurveyRepository) Update(survey *model.Survey) error {
	return r.DB.Save(survey).Error
}

// Delete 级联删除问卷、题目、回答与答案，全部在一个事务内完成
func (r *SurveyRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var responseIDs []string
		if err := tx.Model(&model.Response{}).Where("survey_id = ?", id).Pluck("id", &responseIDs).Error; err != nil {
			return err
		}
		if len(responseIDs) > 0 {
			if err := tx.Where("response_id IN ?", responseIDs).Delete(&model.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("survey_id = ?", id).Delete(&model.Response{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Survey{}, "id = ?", id).Error
	})
}
