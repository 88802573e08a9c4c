package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestCreateWithQuestionsPersistsAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewSurveyRepository(db, nil)

	survey := &model.Survey{Title: "Team pulse", Status: model.SurveyStatusDraft}
	questions := []model.Question{
		{Type: model.QuestionTypeRating, Text: "Mood this week?", Required: true, OrderIndex: 0},
		{Type: model.QuestionTypeLongText, Text: "Anything blocking you?", OrderIndex: 1},
	}

	assert.NoError(t, repo.CreateWithQuestions(survey, questions))
	assert.NotEmpty(t, survey.ID)
	assert.Len(t, survey.Questions, 2)
	assert.Equal(t, survey.ID, survey.Questions[0].SurveyID)
	assert.Equal(t, survey.ID, survey.Questions[1].SurveyID)

	var count int64
	db.Model(&model.Question{}).Where("survey_id = ?", survey.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestCreateWithQuestionsRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	repo := NewSurveyRepository(db, nil)

	survey := &model.Survey{Title: "Doomed", Status: model.SurveyStatusDraft}
	questions := []model.Question{
		{Type: model.QuestionTypeShortText, Text: "one"},
		{Type: model.QuestionTypeShortText, Text: "two"},
	}
	// 重复主键让批量插入失败
	questions[0].ID = "clash"
	questions[1].ID = "clash"

	assert.Error(t, repo.CreateWithQuestions(survey, questions))

	var surveys, persisted int64
	db.Model(&model.Survey{}).Count(&surveys)
	db.Model(&model.Question{}).Count(&persisted)
	assert.Equal(t, int64(0), surveys)
	assert.Equal(t, int64(0), persisted)
}

func TestFindByIDReturnsQuestionsInOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewSurveyRepository(db, nil)

	survey := &model.Survey{Title: "Ordered", Status: model.SurveyStatusDraft}
	assert.NoError(t, repo.CreateWithQuestions(survey, nil))

	// 故意倒着写入，读取时按order_index还原
	second := model.Question{SurveyID: survey.ID, Type: model.QuestionTypeShortText, Text: "second", OrderIndex: 1}
	first := model.Question{SurveyID: survey.ID, Type: model.QuestionTypeShortText, Text: "first", OrderIndex: 0}
	assert.NoError(t, db.Create(&second).Error)
	assert.NoError(t, db.Create(&first).Error)

	found, err := repo.FindByID(survey.ID)
	assert.NoError(t, err)
	assert.Len(t, found.Questions, 2)
	assert.Equal(t, "first", found.Questions[0].Text)
	assert.Equal(t, "second", found.Questions[1].Text)
}

func TestFindByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewSurveyRepository(db, nil)

	_, err := repo.FindByID("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindPublishedFormSkipsDraftsAndMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewSurveyRepository(db, nil)

	draft := &model.Survey{Title: "Draft only", Status: model.SurveyStatusDraft}
	assert.NoError(t, repo.CreateWithQuestions(draft, nil))

	_, err := repo.FindPublishedForm(context.Background(), draft.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindPublishedForm(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindPublishedFormReturnsOrderedQuestions(t *testing.T) {
	db := newTestDB(t)
	repo := NewSurveyRepository(db, nil)

	survey := &model.Survey{Title: "Published", Status: model.SurveyStatusPublished}
	assert.NoError(t, repo.CreateWithQuestions(survey, nil))
	second := model.Question{SurveyID: survey.ID, Type: model.QuestionTypeRating, Text: "second", OrderIndex: 1}
	first := model.Question{SurveyID: survey.ID, Type: model.QuestionTypeRating, Text: "first", OrderIndex: 0}
	assert.NoError(t, db.Create(&second).Error)
	assert.NoError(t, db.Create(&first).Error)

	found, err := repo.FindPublishedForm(context.Background(), survey.ID)
	assert.NoError(t, err)
	assert.Equal(t, survey.ID, found.ID)
	assert.Len(t, found.Questions, 2)
	assert.Equal(t, "first", found.Questions[0].Text)
}

func TestListCountsQuestionsAndResponses(t *testing.T) {
	db := newTestDB(t)
	repo := NewSurveyRepository(db, nil)
	responseRepo := NewResponseRepository(db)

	older := &model.Survey{Title: "Older", Status: model.SurveyStatusPublished}
	older.CreatedAt = time.Now().Add(-time.Hour)
	assert.NoError(t, repo.CreateWithQuestions(older, []model.Question{
		{Type: model.QuestionTypeRating, Text: "rate", OrderIndex: 0},
		{Type: model.QuestionTypeShortText, Text: "note", OrderIndex: 1},
	}))
	newer := &model.Survey{Title: "Newer", Status: model.SurveyStatusDraft}
	assert.NoError(t, repo.CreateWithQuestions(newer, nil))

	assert.NoError(t, responseRepo.CreateWithAnswers(&model.Response{SurveyID: older.ID}, nil))

	rows, total, err := repo.List(1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	// created_at倒序，新问卷在前
	assert.Equal(t, "Newer", rows[0].Title)
	assert.Equal(t, 0, rows[0].QuestionCount)
	assert.Equal(t, 0, rows[0].ResponseCount)
	assert.Equal(t, "Older", rows[1].Title)
	assert.Equal(t, 2, rows[1].QuestionCount)
	assert.Equal(t, 1, rows[1].ResponseCount)
}

func TestListPaginates(t *testing.T) {
	db := newTestDB(t)
	repo := NewSurveyRepository(db, nil)

	for i := 0; i < 3; i++ {
		survey := &model.Survey{Title: "s", Status: model.SurveyStatusDraft}
		survey.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		assert.NoError(t, repo.CreateWithQuestions(survey, nil))
	}

	rows, total, err := repo.List(2, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 1)
}

func TestUpdatePersistsChanges(t *testing.T) {
	db := newTestDB(t)
	repo := NewSurveyRepository(db, nil)

	survey := &model.Survey{Title: "Before", Status: model.SurveyStatusDraft}
	assert.NoError(t, repo.CreateWithQuestions(survey, nil))

	survey.Title = "After"
	survey.Status = model.SurveyStatusPublished
	assert.NoError(t, repo.Update(survey))

	found, err := repo.FindByID(survey.ID)
	assert.NoError(t, err)
	assert.Equal(t, "After", found.Title)
	assert.Equal(t, model.SurveyStatusPublished, found.Status)
}

func TestDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewSurveyRepository(db, nil)
	responseRepo := NewResponseRepository(db)

	doomed := &model.Survey{Title: "Doomed", Status: model.SurveyStatusPublished}
	assert.NoError(t, repo.CreateWithQuestions(doomed, []model.Question{
		{Type: model.QuestionTypeShortText, Text: "q", OrderIndex: 0},
	}))
	keeper := &model.Survey{Title: "Keeper", Status: model.SurveyStatusPublished}
	assert.NoError(t, repo.CreateWithQuestions(keeper, []model.Question{
		{Type: model.QuestionTypeShortText, Text: "kq", OrderIndex: 0},
	}))

	assert.NoError(t, responseRepo.CreateWithAnswers(&model.Response{SurveyID: doomed.ID}, []model.Answer{
		{QuestionID: doomed.Questions[0].ID, Value: "gone"},
	}))
	assert.NoError(t, responseRepo.CreateWithAnswers(&model.Response{SurveyID: keeper.ID}, []model.Answer{
		{QuestionID: keeper.Questions[0].ID, Value: "stays"},
	}))

	assert.NoError(t, repo.Delete(doomed.ID))

	var count int64
	db.Model(&model.Survey{}).Where("id = ?", doomed.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&model.Question{}).Where("survey_id = ?", doomed.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&model.Response{}).Where("survey_id = ?", doomed.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// 另一份问卷不受影响
	db.Model(&model.Answer{}).Count(&count)
	assert.Equal(t, int64(1), count)
	remaining, err := repo.FindByID(keeper.ID)
	assert.NoError(t, err)
	assert.Len(t, remaining.Questions, 1)
}

func TestDeleteSurveyWithoutResponses(t *testing.T) {
	db := newTestDB(t)
	repo := NewSurveyRepository(db, nil)

	survey := &model.Survey{Title: "Quiet", Status: model.SurveyStatusDraft}
	assert.NoError(t, repo.CreateWithQuestions(survey, []model.Question{
		{Type: model.QuestionTypeShortText, Text: "q", OrderIndex: 0},
	}))

	assert.NoError(t, repo.Delete(survey.ID))

	_, err := repo.FindByID(survey.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
