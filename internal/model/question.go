package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// QuestionType 题目类型
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeRating         QuestionType = "rating"
	QuestionTypeShortText      QuestionType = "short_text"
	QuestionTypeLongText       QuestionType = "long_text"
	QuestionTypeDropdown       QuestionType = "dropdown"
)

// Valid 检查题目类型是否为已知值
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeRating, QuestionTypeShortText,
		QuestionTypeLongText, QuestionTypeDropdown:
		return true
	}
	return false
}

// RequiresOptions 选择类题目必须携带选项列表
func (t QuestionType) RequiresOptions() bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeDropdown
}

// StringSlice 以JSON数组形式存储的字符串列表
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for StringSlice: %T", value)
	}
}

// Question 问卷题目
type Question struct {
	UUIDBase
	SurveyID   string       `gorm:"type:varchar(36);not null;index" json:"surveyId"`
	Type       QuestionType `gorm:"size:30;not null" json:"type"`
	Text       string       `gorm:"type:text;not null" json:"text"`
	Options    StringSlice  `gorm:"type:json" json:"options"`
	Required   bool         `gorm:"not null;default:false" json:"required"`
	OrderIndex int          `gorm:"column:order_index;not null;default:0" json:"orderIndex"`
}
