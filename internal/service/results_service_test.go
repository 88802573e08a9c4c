package service

import (
	"testing"

	"github.com/Rexanaxx/easy-pulse-feedback/internal/model"

	"github.com/stretchr/testify/assert"
)

func answersOf(values ...string) []model.Answer {
	answers := make([]model.Answer, 0, len(values))
	for _, v := range values {
		answers = append(answers, model.Answer{Value: v})
	}
	return answers
}

func TestAnalyticsForChoiceCountsInFirstOccurrenceOrder(t *testing.T) {
	q := model.Question{Type: model.QuestionTypeMultipleChoice, Options: model.StringSlice{"Red", "Green", "Blue"}}

	analytics := AnalyticsFor(q, answersOf("Green", "Red", "Green"))

	breakdown, ok := analytics.(ChoiceBreakdown)
	assert.True(t, ok)
	assert.Equal(t, ChoiceBreakdown{
		{Option: "Green", Count: 2},
		{Option: "Red", Count: 1},
	}, breakdown)
}

func TestAnalyticsForChoiceOmitsUnusedOptions(t *testing.T) {
	q := model.Question{Type: model.QuestionTypeDropdown, Options: model.StringSlice{"Mon", "Tue", "Wed"}}

	analytics := AnalyticsFor(q, answersOf("Tue"))

	breakdown, ok := analytics.(ChoiceBreakdown)
	assert.True(t, ok)
	assert.Equal(t, ChoiceBreakdown{{Option: "Tue", Count: 1}}, breakdown)
}

func TestAnalyticsForChoiceNoAnswers(t *testing.T) {
	q := model.Question{Type: model.QuestionTypeMultipleChoice, Options: model.StringSlice{"Yes", "No"}}

	breakdown, ok := AnalyticsFor(q, nil).(ChoiceBreakdown)
	assert.True(t, ok)
	assert.Empty(t, breakdown)
}

func TestAnalyticsForRatingAverage(t *testing.T) {
	q := model.Question{Type: model.QuestionTypeRating}

	summary, ok := AnalyticsFor(q, answersOf("4", "5", "3")).(RatingSummary)
	assert.True(t, ok)
	assert.Equal(t, "4.0", summary.Average)
	assert.Equal(t, 3, summary.Total)
}

func TestAnalyticsForRatingRoundsToOneDecimal(t *testing.T) {
	q := model.Question{Type: model.QuestionTypeRating}

	summary := AnalyticsFor(q, answersOf("1", "2", "2")).(RatingSummary)
	assert.Equal(t, "1.7", summary.Average)
	assert.Equal(t, 3, summary.Total)
}

func TestAnalyticsForRatingSkipsUnparsableValues(t *testing.T) {
	q := model.Question{Type: model.QuestionTypeRating}

	summary := AnalyticsFor(q, answersOf("4", "great", "5")).(RatingSummary)
	assert.Equal(t, "4.5", summary.Average)
	assert.Equal(t, 2, summary.Total)
}

func TestAnalyticsForRatingNoAnswers(t *testing.T) {
	q := model.Question{Type: model.QuestionTypeRating}

	summary := AnalyticsFor(q, nil).(RatingSummary)
	assert.Equal(t, "0.0", summary.Average)
	assert.Equal(t, 0, summary.Total)
}

func TestAnalyticsForTextKeepsSubmissionOrder(t *testing.T) {
	for _, qt := range []model.QuestionType{model.QuestionTypeShortText, model.QuestionTypeLongText} {
		q := model.Question{Type: qt}

		list, ok := AnalyticsFor(q, answersOf("first", "second", "third")).(TextAnswerList)
		assert.True(t, ok)
		assert.Equal(t, TextAnswerList{"first", "second", "third"}, list)
	}
}
