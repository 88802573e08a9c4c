package util

import (
	"errors"
	"fmt"
)

var (
	ErrSurveyNotFound   = errors.New("survey not found")
	ErrSurveyNotOpen    = errors.New("survey not available")
	ErrTemplateNotFound = errors.New("template not found")
)

// ValidationError 输入校验失败，不触发任何持久化
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// GenerationError AI生成端点返回的失败，尽量保留端点自己的描述
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string {
	return e.Message
}

func NewGenerationError(format string, args ...interface{}) *GenerationError {
	return &GenerationError{Message: fmt.Sprintf(format, args...)}
}
