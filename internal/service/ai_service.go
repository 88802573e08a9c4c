package service

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/config"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/util"
)

type AIService struct {
	config config.AIConfig
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{config: cfg}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// generatedQuestion 生成端点返回的题目线格式
type generatedQuestion struct {
	Type       string   `json:"type"`
	Text       string   `json:"text"`
	Options    []string `json:"options,omitempty"`
	Required   bool     `json:"required"`
	OrderIndex int      `json:"order_index"`
}

type generatedQuestionList struct {
	Questions []generatedQuestion `json:"questions"`
}

const generationSystemPrompt = "You are a survey design assistant. Given a topic, produce a short questionnaire. " +
	"Respond with a single JSON object and nothing else, no markdown, shaped exactly as " +
	`{"questions":[{"type":"multiple_choice","text":"...","options":["..."],"required":true,"order_index":0}]}. ` +
	"Valid types are multiple_choice, rating, short_text, long_text and dropdown. " +
	"Only multiple_choice and dropdown questions carry options (2 to 5 of them). " +
	"Produce between 3 and 8 questions."

// GenerateQuestions 把自由文本提示交给生成端点，换回一组可直接放入草稿的题目。
// 任何端点侧失败都包装为GenerationError，调用方的现有题目保持不动。
func (s *AIService) GenerateQuestions(prompt string) ([]model.Question, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, util.NewValidationError("Generation prompt is required")
	}

	reqBody := ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: generationSystemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, util.NewGenerationError("AI generation failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, util.NewGenerationError("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, util.NewGenerationError("AI returned an unreadable response")
	}
	if result.Error != nil {
		return nil, util.NewGenerationError("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return nil, util.NewGenerationError("AI returned no choices")
	}

	return parseGeneratedQuestions(result.Choices[0].Message.Content)
}

// parseGeneratedQuestions 严格解析生成内容并重排序号
func parseGeneratedQuestions(content string) ([]model.Question, error) {
	var list generatedQuestionList
	if err := json.Unmarshal([]byte(stripJSONFence(content)), &list); err != nil {
		return nil, util.NewGenerationError("AI returned a malformed question list")
	}
	if len(list.Questions) == 0 {
		return nil, util.NewGenerationError("AI returned no questions")
	}

	sort.SliceStable(list.Questions, func(i, j int) bool {
		return list.Questions[i].OrderIndex < list.Questions[j].OrderIndex
	})

	questions := make([]model.Question, 0, len(list.Questions))
	for i, gq := range list.Questions {
		qt := model.QuestionType(gq.Type)
		if !qt.Valid() {
			return nil, util.NewGenerationError("AI returned an unsupported question type %q", gq.Type)
		}
		if strings.TrimSpace(gq.Text) == "" {
			return nil, util.NewGenerationError("AI returned a question with empty text")
		}
		questions = append(questions, model.Question{
			Type:       qt,
			Text:       gq.Text,
			Options:    gq.Options,
			Required:   gq.Required,
			OrderIndex: i,
		})
	}
	return questions, nil
}

// stripJSONFence 容忍端点把JSON包进Markdown代码块的习惯
func stripJSONFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
