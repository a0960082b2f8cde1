package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(DefaultConfig())
}

func multipleChoiceQuestion() *Question {
	return &Question{
		ID:   "q-mc",
		Text: "We climbed the highest ___ in the country.",
		Type: TypeMultipleChoice,
		Options: []Option{
			{ID: "opt-1", Text: "enough"},
			{ID: "opt-2", Text: "young"},
			{ID: "opt-3", Text: "country"},
			{ID: "opt-4", Text: "mountain", IsCorrect: true},
		},
		Points: 10,
	}
}

func TestEngineGradeMultipleChoice(t *testing.T) {
	tests := []struct {
		name        string
		answer      SubmittedAnswer
		wantCorrect bool
		wantScore   int
	}{
		{
			name:        "correct option by id earns full points",
			answer:      SubmittedAnswer{SelectedOptionID: "opt-4"},
			wantCorrect: true,
			wantScore:   10,
		},
		{
			name:        "wrong option by id",
			answer:      SubmittedAnswer{SelectedOptionID: "opt-2"},
			wantCorrect: false,
		},
		{
			name:        "free text matching correct option text",
			answer:      SubmittedAnswer{FreeText: "  Mountain "},
			wantCorrect: true,
			wantScore:   10,
		},
		{
			name:        "free text matching a wrong option",
			answer:      SubmittedAnswer{FreeText: "young"},
			wantCorrect: false,
		},
		{
			name:        "option id wins over free text",
			answer:      SubmittedAnswer{SelectedOptionID: "opt-1", FreeText: "mountain"},
			wantCorrect: false,
		},
	}

	engine := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Grade(multipleChoiceQuestion(), tt.answer)
			assert.Equal(t, tt.wantCorrect, result.IsCorrect)
			assert.Equal(t, tt.wantScore, result.Score)
			if !tt.wantCorrect {
				assert.NotEmpty(t, result.ErrorCode)
			}
		})
	}
}

func TestEngineGradeMultipleChoiceWithoutCorrectOption(t *testing.T) {
	// Authoring defect: grading must degrade to incorrect, not fail.
	engine := newTestEngine(t)
	q := &Question{
		ID:      "q-broken",
		Type:    TypeMultipleChoice,
		Options: []Option{{ID: "opt-1", Text: "either"}, {ID: "opt-2", Text: "or"}},
		Points:  5,
	}

	result := engine.Grade(q, SubmittedAnswer{SelectedOptionID: "opt-1"})
	assert.False(t, result.IsCorrect)
	assert.Zero(t, result.Score)
}

func TestEngineGradeTrueFalse(t *testing.T) {
	q := &Question{
		ID:   "q-tf",
		Type: TypeTrueFalse,
		Options: []Option{
			{ID: "opt-t", Text: "TRUE", IsCorrect: true},
			{ID: "opt-f", Text: "FALSE"},
		},
		Points: 5,
	}

	tests := []struct {
		name        string
		answer      SubmittedAnswer
		wantCorrect bool
	}{
		{
			name:        "literal true text",
			answer:      SubmittedAnswer{FreeText: " True "},
			wantCorrect: true,
		},
		{
			name:        "literal false text",
			answer:      SubmittedAnswer{FreeText: "false"},
			wantCorrect: false,
		},
		{
			name:        "yes is not a literal token",
			answer:      SubmittedAnswer{FreeText: "yes"},
			wantCorrect: false,
		},
		{
			name:        "selecting the correct option",
			answer:      SubmittedAnswer{SelectedOptionID: "opt-t"},
			wantCorrect: true,
		},
		{
			name:        "selecting the wrong option",
			answer:      SubmittedAnswer{SelectedOptionID: "opt-f"},
			wantCorrect: false,
		},
	}

	engine := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Grade(q, tt.answer)
			assert.Equal(t, tt.wantCorrect, result.IsCorrect)
		})
	}
}

func TestEngineGradeFillBlank(t *testing.T) {
	q := &Question{
		ID:            "q-fb",
		Type:          TypeFillBlank,
		CorrectAnswer: "was|married",
		Points:        10,
	}

	tests := []struct {
		name        string
		freeText    string
		wantCorrect bool
	}{
		{
			name:        "all blanks correct",
			freeText:    "was|married",
			wantCorrect: true,
		},
		{
			name:        "blank count mismatch is always incorrect",
			freeText:    "was",
			wantCorrect: false,
		},
		{
			name:        "one wrong blank invalidates the item",
			freeText:    "was|single",
			wantCorrect: false,
		},
		{
			name:        "contraction-aware equivalence per blank",
			freeText:    "was|married",
			wantCorrect: true,
		},
	}

	engine := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Grade(q, SubmittedAnswer{FreeText: tt.freeText})
			assert.Equal(t, tt.wantCorrect, result.IsCorrect)
		})
	}
}

func TestEngineGradeFillBlankContractions(t *testing.T) {
	engine := newTestEngine(t)
	q := &Question{
		ID:            "q-fb-2",
		Type:          TypeFillBlank,
		CorrectAnswer: "I am|do not",
		Points:        10,
	}

	result := engine.Grade(q, SubmittedAnswer{FreeText: "I'm|don't"})
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 10, result.Score)
}

func TestEngineGradeVerbForm(t *testing.T) {
	q := &Question{
		ID:            "q-vf",
		Type:          TypeVerbForm,
		CorrectAnswer: "was",
		Points:        5,
	}

	tests := []struct {
		name        string
		freeText    string
		wantCorrect bool
		wantCode    string
	}{
		{
			name:        "exact form is correct",
			freeText:    "was",
			wantCorrect: true,
		},
		{
			name:        "case and spacing are forgiven",
			freeText:    "  WAS ",
			wantCorrect: true,
		},
		{
			name:        "agreement counterpart is diagnosed",
			freeText:    "were",
			wantCorrect: false,
			wantCode:    CodeWrongAgreement,
		},
		{
			name:        "unrelated form falls back",
			freeText:    "gone",
			wantCorrect: false,
		},
	}

	engine := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Grade(q, SubmittedAnswer{FreeText: tt.freeText})
			assert.Equal(t, tt.wantCorrect, result.IsCorrect)
			if tt.wantCorrect {
				assert.Equal(t, q.Points, result.Score)
				return
			}
			assert.Zero(t, result.Score)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, result.ErrorCode)
			}
		})
	}
}

func TestEngineGradeVerbFormAlternatives(t *testing.T) {
	engine := newTestEngine(t)
	q := &Question{
		ID:            "q-vf-alt",
		Type:          TypeVerbForm,
		CorrectAnswer: "learned|learnt",
		Points:        5,
	}

	for _, form := range []string{"learned", "learnt"} {
		result := engine.Grade(q, SubmittedAnswer{FreeText: form})
		assert.True(t, result.IsCorrect, "form %q", form)
	}
}

func TestEngineGradeShortAnswer(t *testing.T) {
	q := &Question{
		ID:            "q-sa",
		Type:          TypeShortAnswer,
		CorrectAnswer: "the capital of France|Paris",
		Points:        10,
	}

	tests := []struct {
		name        string
		freeText    string
		wantCorrect bool
	}{
		{
			name:        "verbatim match with an alternative",
			freeText:    "Paris",
			wantCorrect: true,
		},
		{
			name:        "containment of every token regardless of order",
			freeText:    "France has the capital of Paris",
			wantCorrect: true,
		},
		{
			name:        "missing a required token",
			freeText:    "the capital",
			wantCorrect: false,
		},
	}

	engine := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Grade(q, SubmittedAnswer{FreeText: tt.freeText})
			assert.Equal(t, tt.wantCorrect, result.IsCorrect)
		})
	}
}

func TestEngineGradeTranslate(t *testing.T) {
	q := &Question{
		ID:            "q-tr",
		Type:          TypeTranslate,
		CorrectAnswer: "I like learning English|I love learning English",
		Points:        10,
	}

	tests := []struct {
		name        string
		freeText    string
		wantCorrect bool
	}{
		{
			name:        "exact tier accepts a listed alternative",
			freeText:    "I love learning English",
			wantCorrect: true,
		},
		{
			name:        "exact tier forgives contractions and punctuation",
			freeText:    "i like learning english!",
			wantCorrect: true,
		},
		{
			// Keyword tier finds 2 of 3 keywords (below 75%), the
			// fuzzy tier accepts at similarity ~0.87.
			name:        "fuzzy tier nets a near miss",
			freeText:    "I like learn English",
			wantCorrect: true,
		},
		{
			name:        "keyword tier tolerates word order variation",
			freeText:    "learning English is something I like doing",
			wantCorrect: true,
		},
		{
			name:        "unrelated sentence is rejected",
			freeText:    "the weather is nice today",
			wantCorrect: false,
		},
	}

	engine := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Grade(q, SubmittedAnswer{FreeText: tt.freeText})
			assert.Equal(t, tt.wantCorrect, result.IsCorrect, "feedback: %s", result.Feedback)
		})
	}
}

func TestEngineGradeTranslatePartialCredit(t *testing.T) {
	engine := newTestEngine(t)
	q := &Question{
		ID:            "q-tr-partial",
		Type:          TypeTranslate,
		CorrectAnswer: "I like learning English grammar every day",
		Points:        10,
	}

	result := engine.Grade(q, SubmittedAnswer{FreeText: "I like grammar"})
	require.False(t, result.IsCorrect)
	assert.Greater(t, result.Score, 0)
	assert.Less(t, result.Score, q.Points)
	assert.NotEmpty(t, result.ErrorCode)
}

func TestEngineGradeEmptySubmission(t *testing.T) {
	engine := newTestEngine(t)
	questions := []*Question{
		multipleChoiceQuestion(),
		{ID: "q1", Type: TypeVerbForm, CorrectAnswer: "was", Points: 5},
		{ID: "q2", Type: TypeTranslate, CorrectAnswer: "I am here", Points: 5},
	}

	for _, q := range questions {
		for _, freeText := range []string{"", "   ", "\t\n"} {
			result := engine.Grade(q, SubmittedAnswer{FreeText: freeText})
			assert.False(t, result.IsCorrect, "type %s", q.Type)
			assert.Zero(t, result.Score, "type %s", q.Type)
			assert.Equal(t, CodeEmptyAnswer, result.ErrorCode, "type %s", q.Type)
			assert.NotEmpty(t, result.Feedback, "type %s", q.Type)
		}
	}
}

func TestEngineGradeUnsupportedType(t *testing.T) {
	engine := newTestEngine(t)
	q := &Question{ID: "q-bad", Type: QuestionType("essay"), Points: 5}

	result := engine.Grade(q, SubmittedAnswer{FreeText: "anything"})
	assert.False(t, result.IsCorrect)
	assert.Zero(t, result.Score)
	assert.Equal(t, CodeUnsupportedType, result.ErrorCode)
}

func TestEngineGradeIncludesExplanation(t *testing.T) {
	engine := newTestEngine(t)
	q := &Question{
		ID:            "q-expl",
		Type:          TypeVerbForm,
		CorrectAnswer: "was",
		Points:        5,
		Explanation:   "Past tense of be, first person singular.",
	}

	correct := engine.Grade(q, SubmittedAnswer{FreeText: "was"})
	assert.Contains(t, correct.Feedback, q.Explanation)

	wrong := engine.Grade(q, SubmittedAnswer{FreeText: "is"})
	assert.Contains(t, wrong.Feedback, q.Explanation)
}
