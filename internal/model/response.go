package model

// Response 一次匿名提交
type Response struct {
	UUIDBase
	SurveyID string   `gorm:"type:varchar(36);not null;index" json:"surveyId"`
	Answers  []Answer `gorm:"foreignKey:ResponseID" json:"answers,omitempty"`
}

// Answer 单题作答，所有题型统一存为字符串
type Answer struct {
	UUIDBase
	ResponseID string `gorm:"type:varchar(36);not null;index" json:"responseId"`
	QuestionID string `gorm:"type:varchar(36);not null;index" json:"questionId"`
	Value      string `gorm:"type:text" json:"value"`
}
