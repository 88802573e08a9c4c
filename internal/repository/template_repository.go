package repository

import (
	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"

	"gorm.io/gorm"
)

type TemplateRepository struct {
	DB *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

func (r *TemplateRepository) ListAll() ([]model.SurveyTemplate, error) {
	var templates []model.SurveyTemplate
	err := r.DB.Order("created_at ASC").Find(&templates).Error
	return templates, err
}

func (r *TemplateRepository) FindByID(id string) (*model.SurveyTemplate, error) {
	var template model.SurveyTemplate
	err := r.DB.First(&template, "id = ?", id).Error
	return &template, err
}
