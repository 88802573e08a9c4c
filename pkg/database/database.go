package database

import (
	"fmt"
	"log"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/config"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release模式下默认跳过迁移，除非显式要求
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		err = db.AutoMigrate(
			&model.Survey{},
			&model.Question{},
			&model.Response{},
			&model.Answer{},
			&model.SurveyTemplate{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")

		SeedDefaultTemplates(db)
	}

	return db, nil
}

// SeedDefaultTemplates 模板库为空时写入内置模板
func SeedDefaultTemplates(db *gorm.DB) {
	var count int64
	db.Model(&model.SurveyTemplate{}).Count(&count)
	if count > 0 {
		return
	}

	defaultTemplates := []model.SurveyTemplate{
		{
			Name:        "Customer Feedback",
			Description: "Measure satisfaction after a purchase or support interaction.",
			Questions: model.TemplateQuestionList{
				{Type: model.QuestionTypeRating, Text: "How satisfied are you with our product?", Required: true, OrderIndex: 0},
				{Type: model.QuestionTypeMultipleChoice, Text: "Would you recommend us to a friend?", Options: []string{"Yes", "No", "Maybe"}, Required: true, OrderIndex: 1},
				{Type: model.QuestionTypeDropdown, Text: "How did you hear about us?", Options: []string{"Search engine", "Social media", "A friend", "Advertising", "Other"}, OrderIndex: 2},
				{Type: model.QuestionTypeLongText, Text: "What could we do better?", OrderIndex: 3},
			},
		},
		{
			Name:        "Event Feedback",
			Description: "Collect attendee impressions right after an event.",
			Questions: model.TemplateQuestionList{
				{Type: model.QuestionTypeRating, Text: "How would you rate the event overall?", Required: true, OrderIndex: 0},
				{Type: model.QuestionTypeShortText, Text: "What was the best part of the event?", OrderIndex: 1},
				{Type: model.QuestionTypeMultipleChoice, Text: "How likely are you to attend again?", Options: []string{"Definitely", "Probably", "Not sure", "Unlikely"}, Required: true, OrderIndex: 2},
				{Type: model.QuestionTypeLongText, Text: "What topics should we cover next time?", OrderIndex: 3},
			},
		},
		{
			Name:        "Employee Pulse",
			Description: "A short recurring check-in on team wellbeing.",
			Questions: model.TemplateQuestionList{
				{Type: model.QuestionTypeRating, Text: "How manageable was your workload this week?", Required: true, OrderIndex: 0},
				{Type: model.QuestionTypeRating, Text: "How supported do you feel by your team?", Required: true, OrderIndex: 1},
				{Type: model.QuestionTypeDropdown, Text: "How is team morale right now?", Options: []string{"Great", "Good", "Okay", "Low"}, OrderIndex: 2},
				{Type: model.QuestionTypeLongText, Text: "What is one thing we should improve?", OrderIndex: 3},
			},
		},
	}
	for _, t := range defaultTemplates {
		db.Create(&t)
	}
}
