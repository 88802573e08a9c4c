package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"
	"github.com/Rexanaxx/easy-pulse-feedback/pkg/database"

	"github.com/stretchr/testify/assert"
)

func TestListTemplates(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	ClearTables(db)

	database.SeedDefaultTemplates(db)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/templates", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []struct {
			model.SurveyTemplate
			QuestionCount int `json:"questionCount"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 3)

	names := make([]string, 0, len(body.Data))
	for _, item := range body.Data {
		names = append(names, item.Name)
		assert.Equal(t, 4, item.QuestionCount)
		assert.Len(t, item.Questions, 4)
	}
	assert.Contains(t, names, "Customer Feedback")
	assert.Contains(t, names, "Event Feedback")
	assert.Contains(t, names, "Employee Pulse")
}

func TestListTemplates_Empty(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	ClearTables(db)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/templates", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []json.RawMessage `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 0)
}

func TestInstantiateTemplate(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	ClearTables(db)

	// 序号故意不连续，实例化时逐字照搬
	template := model.SurveyTemplate{
		Name:        "Onboarding Check",
		Description: "First month impressions.",
		Questions: model.TemplateQuestionList{
			{Type: model.QuestionTypeRating, Text: "How smooth was onboarding?", Required: true, OrderIndex: 2},
			{Type: model.QuestionTypeDropdown, Text: "Which team are you on?", Options: []string{"Platform", "Product", "Support"}, OrderIndex: 0},
		},
	}
	assert.NoError(t, db.Create(&template).Error)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", fmt.Sprintf("/api/templates/%s/instantiate", template.ID), nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data model.Survey `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	created := body.Data
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, template.ID, created.ID)
	assert.Equal(t, "Onboarding Check", created.Title)
	assert.Equal(t, "First month impressions.", created.Description)
	assert.Equal(t, model.SurveyStatusDraft, created.Status)

	assert.Len(t, created.Questions, 2)
	assert.Equal(t, model.QuestionTypeRating, created.Questions[0].Type)
	assert.Equal(t, "How smooth was onboarding?", created.Questions[0].Text)
	assert.True(t, created.Questions[0].Required)
	assert.Equal(t, 2, created.Questions[0].OrderIndex)
	assert.Equal(t, model.StringSlice{"Platform", "Product", "Support"}, created.Questions[1].Options)
	assert.Equal(t, 0, created.Questions[1].OrderIndex)

	var questions int64
	db.Model(&model.Question{}).Where("survey_id = ?", created.ID).Count(&questions)
	assert.Equal(t, int64(2), questions)

	// 模板本身不被改动
	var stored model.SurveyTemplate
	assert.NoError(t, db.First(&stored, "id = ?", template.ID).Error)
	assert.Len(t, stored.Questions, 2)
	assert.Equal(t, 2, stored.Questions[0].OrderIndex)
}

func TestInstantiateTemplate_SeededGallery(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	ClearTables(db)

	database.SeedDefaultTemplates(db)

	var template model.SurveyTemplate
	assert.NoError(t, db.First(&template, "name = ?", "Customer Feedback").Error)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", fmt.Sprintf("/api/templates/%s/instantiate", template.ID), nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data model.Survey `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Customer Feedback", body.Data.Title)
	assert.Len(t, body.Data.Questions, 4)
	for i, q := range body.Data.Questions {
		assert.Equal(t, i, q.OrderIndex)
	}
}

func TestInstantiateTemplate_NotFound(t *testing.T) {
	router, db := SetupTestEnvironment(t)
	ClearTables(db)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/templates/nonexistent/instantiate", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var surveys int64
	db.Model(&model.Survey{}).Count(&surveys)
	assert.Equal(t, int64(0), surveys)
}
