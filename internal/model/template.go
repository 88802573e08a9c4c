package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TemplateQuestion 模板中的题目定义，实例化时复制到新问卷
type TemplateQuestion struct {
	Type       QuestionType `json:"type"`
	Text       string       `json:"text"`
	Options    []string     `json:"options,omitempty"`
	Required   bool         `json:"required"`
	OrderIndex int          `json:"orderIndex"`
}

// TemplateQuestionList 以JSON数组形式存储的模板题目列表
type TemplateQuestionList []TemplateQuestion

func (l TemplateQuestionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *TemplateQuestionList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for TemplateQuestionList: %T", value)
	}
}

// SurveyTemplate 预置问卷模板
type SurveyTemplate struct {
	UUIDBase
	Name        string               `gorm:"size:255;not null" json:"name"`
	Description string               `gorm:"type:text" json:"description"`
	Questions   TemplateQuestionList `gorm:"type:json" json:"questions"`
}
