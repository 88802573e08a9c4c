package model

// SurveyStatus 问卷生命周期状态
type SurveyStatus string

const (
	SurveyStatusDraft     SurveyStatus = "draft"
	SurveyStatusPublished SurveyStatus = "published"
	SurveyStatusClosed    SurveyStatus = "closed"
	SurveyStatusArchived  SurveyStatus = "archived"
)

// Valid 检查状态是否为已知值
func (s SurveyStatus) Valid() bool {
	switch s {
	case SurveyStatusDraft, SurveyStatusPublished, SurveyStatusClosed, SurveyStatusArchived:
		return true
	}
	return false
}

// Survey 问卷模型
type Survey struct {
	UUIDBase
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      SurveyStatus `gorm:"size:20;not null;default:'draft';index" json:"status"`
	Questions   []Question   `gorm:"foreignKey:SurveyID" json:"questions,omitempty"`
}
