package database

import (
	"testing"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := db.AutoMigrate(&model.SurveyTemplate{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestSeedDefaultTemplatesFillsEmptyGallery(t *testing.T) {
	db := newSeedTestDB(t)

	SeedDefaultTemplates(db)

	var templates []model.SurveyTemplate
	assert.NoError(t, db.Order("created_at ASC").Find(&templates).Error)
	assert.Len(t, templates, 3)

	names := make([]string, 0, len(templates))
	for _, tpl := range templates {
		names = append(names, tpl.Name)
		assert.Len(t, tpl.Questions, 4)
		for i, q := range tpl.Questions {
			assert.Equal(t, i, q.OrderIndex)
			assert.True(t, q.Type.Valid())
			if q.Type.RequiresOptions() {
				assert.NotEmpty(t, q.Options)
			}
		}
	}
	assert.Contains(t, names, "Customer Feedback")
	assert.Contains(t, names, "Event Feedback")
	assert.Contains(t, names, "Employee Pulse")
}

func TestSeedDefaultTemplatesSkipsNonEmptyGallery(t *testing.T) {
	db := newSeedTestDB(t)

	existing := model.SurveyTemplate{Name: "Custom"}
	assert.NoError(t, db.Create(&existing).Error)

	SeedDefaultTemplates(db)

	var count int64
	db.Model(&model.SurveyTemplate{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
