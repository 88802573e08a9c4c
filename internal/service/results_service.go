package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/repository"
	"github.com/Rexanaxx/easy-pulse-feedback/internal/util"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Analytics 按题型变化的统计结果，三种形态各自只携带自己需要的字段
type Analytics interface {
	isAnalytics()
}

// OptionCount 一个选项值及其出现次数
type OptionCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

// ChoiceBreakdown 选择类题目的计数，顺序为答案中首次出现的顺序，
// 没有出现过的选项不补零
type ChoiceBreakdown []OptionCount

func (ChoiceBreakdown) isAnalytics() {}

// RatingSummary 评分题的均值（一位小数的展示字符串）与计入的评分数
type RatingSummary struct {
	Average string `json:"average"`
	Total   int    `json:"total"`
}

func (RatingSummary) isAnalytics() {}

// TextAnswerList 文本题的原始答案，按提交先后排列
type TextAnswerList []string

func (TextAnswerList) isAnalytics() {}

// QuestionResult 一道题及其统计
type QuestionResult struct {
	Question  model.Question `json:"question"`
	Analytics Analytics      `json:"analytics"`
}

// SurveyResults 结果页的完整数据
type SurveyResults struct {
	Survey        *model.Survey    `json:"survey"`
	ResponseCount int64            `json:"responseCount"`
	Questions     []QuestionResult `json:"questions"`
}

// ExportFile 可下载的导出产物
type ExportFile struct {
	Filename string
	Content  []byte
}

type ResultsService struct {
	surveyRepo   *repository.SurveyRepository
	responseRepo *repository.ResponseRepository
}

func NewResultsService(surveyRepo *repository.SurveyRepository, responseRepo *repository.ResponseRepository) *ResultsService {
	return &ResultsService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
	}
}

// Load 并行取问卷（含题目）与回答数，任一失败则整体失败；
// 只有存在回答时才去取答案
func (s *ResultsService) Load(ctx context.Context, surveyID string) (*SurveyResults, error) {
	var (
		survey *model.Survey
		count  int64
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.surveyRepo.FindByID(surveyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrSurveyNotFound
			}
			return err
		}
		survey = found
		return nil
	})
	g.Go(func() error {
		n, err := s.responseRepo.CountBySurvey(surveyID)
		if err != nil {
			return err
		}
		count = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var answers []model.Answer
	if count > 0 {
		fetched, err := s.responseRepo.ListAnswersBySurvey(surveyID)
		if err != nil {
			return nil, err
		}
		answers = fetched
	}

	byQuestion := make(map[string][]model.Answer)
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}

	results := &SurveyResults{
		Survey:        survey,
		ResponseCount: count,
		Questions:     make([]QuestionResult, 0, len(survey.Questions)),
	}
	for _, q := range survey.Questions {
		results.Questions = append(results.Questions, QuestionResult{
			Question:  q,
			Analytics: AnalyticsFor(q, byQuestion[q.ID]),
		})
	}
	return results, nil
}

// AnalyticsFor 纯函数：一道题加上它的全部答案，算出对应形态的统计
func AnalyticsFor(q model.Question, answers []model.Answer) Analytics {
	switch q.Type {
	case model.QuestionTypeMultipleChoice, model.QuestionTypeDropdown:
		return choiceBreakdown(answers)
	case model.QuestionTypeRating:
		return ratingSummary(answers)
	default:
		return textAnswers(answers)
	}
}

func choiceBreakdown(answers []model.Answer) ChoiceBreakdown {
	breakdown := ChoiceBreakdown{}
	index := make(map[string]int)
	for _, a := range answers {
		if i, ok := index[a.Value]; ok {
			breakdown[i].Count++
			continue
		}
		index[a.Value] = len(breakdown)
		breakdown = append(breakdown, OptionCount{Option: a.Value, Count: 1})
	}
	return breakdown
}

// ratingSummary 无法解析为数字的值既不计入均值也不计入总数
func ratingSummary(answers []model.Answer) RatingSummary {
	var sum float64
	var n int
	for _, a := range answers {
		v, err := strconv.ParseFloat(strings.TrimSpace(a.Value), 64)
		if err != nil {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return RatingSummary{Average: "0.0", Total: 0}
	}
	return RatingSummary{Average: fmt.Sprintf("%.1f", sum/float64(n)), Total: n}
}

func textAnswers(answers []model.Answer) TextAnswerList {
	list := TextAnswerList{}
	for _, a := range answers {
		list = append(list, a.Value)
	}
	return list
}

// ExportCSV 把结果序列化成逗号分隔文本：标题行、回答总数行，
// 然后每道题一个区块，区块之间以空行分隔。只有自由文本答案
// 加引号转义（内部引号写双），其余一概原样输出。
func (s *ResultsService) ExportCSV(ctx context.Context, surveyID string) (*ExportFile, error) {
	results, err := s.Load(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(results.Survey.Title + "\n")
	b.WriteString(fmt.Sprintf("Total Responses,%d\n", results.ResponseCount))

	for _, qr := range results.Questions {
		b.WriteString("\n")
		b.WriteString(qr.Question.Text + "\n")
		switch a := qr.Analytics.(type) {
		case ChoiceBreakdown:
			for _, oc := range a {
				b.WriteString(fmt.Sprintf("%s,%d\n", oc.Option, oc.Count))
			}
		case RatingSummary:
			b.WriteString(fmt.Sprintf("Average Rating,%s\n", a.Average))
		case TextAnswerList:
			for _, text := range a {
				b.WriteString(`"` + strings.ReplaceAll(text, `"`, `""`) + `"` + "\n")
			}
		}
	}

	return &ExportFile{
		Filename: fmt.Sprintf("survey-results-%s.csv", surveyID),
		Content:  []byte(b.String()),
	}, nil
}
