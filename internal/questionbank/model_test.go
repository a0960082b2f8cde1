package questionbank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skotani/lingrade/internal/grading"
)

func validBank() Bank {
	return Bank{
		ID:    "unit-3",
		Title: "Past simple",
		Questions: []Question{
			{
				ID:     "q1",
				Type:   "multiple_choice",
				Text:   "We climbed the highest ___ in the country.",
				Points: 10,
				Options: []Option{
					{ID: "a", Text: "enough"},
					{ID: "b", Text: "mountain", IsCorrect: true},
				},
			},
			{
				ID:            "q2",
				Type:          "verb_form",
				Text:          "She ___ (be) late yesterday.",
				CorrectAnswer: "was",
				Points:        5,
			},
			{
				ID:     "q3",
				Type:   "true_false",
				Text:   "London is the capital of France.",
				Points: 5,
				Options: []Option{
					{ID: "t", Text: "TRUE"},
					{ID: "f", Text: "FALSE", IsCorrect: true},
				},
			},
		},
	}
}

func TestBankValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(b *Bank)
		wantErrs int
	}{
		{
			name:     "valid bank",
			mutate:   func(b *Bank) {},
			wantErrs: 0,
		},
		{
			name:     "missing bank id",
			mutate:   func(b *Bank) { b.ID = " " },
			wantErrs: 1,
		},
		{
			name:     "no questions",
			mutate:   func(b *Bank) { b.Questions = nil },
			wantErrs: 1,
		},
		{
			name:     "unknown question type",
			mutate:   func(b *Bank) { b.Questions[0].Type = "essay" },
			wantErrs: 1,
		},
		{
			name:     "non-positive points",
			mutate:   func(b *Bank) { b.Questions[1].Points = 0 },
			wantErrs: 1,
		},
		{
			name: "multiple choice without a correct option",
			mutate: func(b *Bank) {
				b.Questions[0].Options[1].IsCorrect = false
			},
			wantErrs: 1,
		},
		{
			name: "multiple choice with two correct options",
			mutate: func(b *Bank) {
				b.Questions[0].Options[0].IsCorrect = true
			},
			wantErrs: 1,
		},
		{
			name: "true false with a non-literal option",
			mutate: func(b *Bank) {
				b.Questions[2].Options[0].Text = "yes"
			},
			wantErrs: 1,
		},
		{
			name: "free text without a correct answer",
			mutate: func(b *Bank) {
				b.Questions[1].CorrectAnswer = ""
			},
			wantErrs: 1,
		},
		{
			name: "empty alternative segment",
			mutate: func(b *Bank) {
				b.Questions[1].CorrectAnswer = "was||were"
			},
			wantErrs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank := validBank()
			tt.mutate(&bank)
			errs := bank.Validate()
			assert.Len(t, errs, tt.wantErrs)
		})
	}
}

func TestQuestionToGrading(t *testing.T) {
	q := Question{
		ID:            "q-7",
		Type:          "translate",
		Text:          "Translate: Me gusta aprender inglés.",
		CorrectAnswer: "I like learning English|I love learning English",
		Points:        10,
		Explanation:   "gustar + infinitive",
	}

	converted := q.ToGrading()
	assert.Equal(t, grading.TypeTranslate, converted.Type)
	assert.Equal(t, q.ID, converted.ID)
	assert.Equal(t, q.CorrectAnswer, converted.CorrectAnswer)
	assert.Equal(t, q.Points, converted.Points)
	assert.Equal(t, q.Explanation, converted.Explanation)

	// The converted record must grade correctly end to end.
	engine := grading.NewEngine(grading.DefaultConfig())
	result := engine.Grade(&converted, grading.SubmittedAnswer{FreeText: "I like learning English"})
	require.True(t, result.IsCorrect)
	assert.Equal(t, 10, result.Score)
}

func TestQuestionToGradingOptions(t *testing.T) {
	q := validBank().Questions[0]
	converted := q.ToGrading()
	require.Len(t, converted.Options, 2)
	assert.Equal(t, "mountain", converted.Options[1].Text)
	assert.True(t, converted.Options[1].IsCorrect)
}
