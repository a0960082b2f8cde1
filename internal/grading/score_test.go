package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandFraction(t *testing.T) {
	tests := []struct {
		name     string
		weighted float64
		expected float64
	}{
		{name: "full credit band", weighted: 0.97, expected: 1.0},
		{name: "exact full credit threshold", weighted: 0.95, expected: 1.0},
		{name: "ninety percent band", weighted: 0.90, expected: 0.9},
		{name: "eighty percent band", weighted: 0.75, expected: 0.8},
		{name: "half credit band", weighted: 0.60, expected: 0.5},
		{name: "thirty percent band", weighted: 0.35, expected: 0.3},
		{name: "below lowest band", weighted: 0.29, expected: 0.0},
		{name: "zero", weighted: 0.0, expected: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, bandFraction(tt.weighted))
		})
	}
}

func TestPartialScore(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	accepted := []string{"I like learning English"}

	tests := []struct {
		name       string
		submission string
		weights    WeightStrategy
		expected   int
	}{
		{
			name:       "exact match earns full points",
			submission: "I like learning English",
			weights:    GeneralWeights,
			expected:   100,
		},
		{
			name:       "normalized match earns full points",
			submission: "  i like learning english! ",
			weights:    TranslationWeights,
			expected:   100,
		},
		{
			name:       "empty submission earns nothing",
			submission: "   ",
			weights:    GeneralWeights,
			expected:   0,
		},
		{
			name:       "unrelated submission earns nothing",
			submission: "zzz qqq",
			weights:    GeneralWeights,
			expected:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.PartialScore(tt.submission, accepted, 100, tt.weights)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPartialScoreDegenerateInputs(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	assert.Zero(t, engine.PartialScore("anything", nil, 100, GeneralWeights))
	assert.Zero(t, engine.PartialScore("anything", []string{"answer"}, 0, GeneralWeights))
	assert.Zero(t, engine.PartialScore("anything", []string{"answer"}, -5, GeneralWeights))
}

func TestPartialScoreMonotonicInKeywordOverlap(t *testing.T) {
	// Adding more of the reference keywords must never lower the score.
	engine := NewEngine(DefaultConfig())
	accepted := []string{"red apples taste sweet"}

	submissions := []string{
		"nothing",
		"red",
		"red apples",
		"red apples taste",
		"red apples taste sweet",
	}

	prev := -1
	for _, submission := range submissions {
		score := engine.PartialScore(submission, accepted, 100, GeneralWeights)
		assert.GreaterOrEqual(t, score, prev, "submission %q", submission)
		prev = score
	}
	assert.Equal(t, 100, prev)
}

func TestWeightStrategies(t *testing.T) {
	// Both weightings are deliberately preserved as named strategies;
	// they must not be unified silently.
	assert.Equal(t, 0.6, GeneralWeights.Keyword)
	assert.Equal(t, 0.4, GeneralWeights.Similarity)
	assert.Equal(t, 0.7, TranslationWeights.Keyword)
	assert.Equal(t, 0.3, TranslationWeights.Similarity)
	assert.NotEqual(t, GeneralWeights.Name, TranslationWeights.Name)
}

func TestScoreWithFeedback(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	tests := []struct {
		name         string
		question     *Question
		freeText     string
		wantScore    int
		wantFeedback string
	}{
		{
			name: "perfect translation",
			question: &Question{
				Type:          TypeTranslate,
				CorrectAnswer: "I like learning English",
			},
			freeText:     "i like learning english",
			wantScore:    100,
			wantFeedback: "Correct!",
		},
		{
			name: "close translation gets the close hint",
			question: &Question{
				Type:          TypeTranslate,
				CorrectAnswer: "I like learning English",
			},
			freeText:     "I like learning England",
			wantFeedback: "Close, check the grammar.",
		},
		{
			name: "short answer uses the general weighting",
			question: &Question{
				Type:          TypeShortAnswer,
				CorrectAnswer: "photosynthesis",
			},
			freeText:  "photosynthesis",
			wantScore: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, feedback := engine.ScoreWithFeedback(tt.question, tt.freeText)
			if tt.wantScore != 0 {
				assert.Equal(t, tt.wantScore, score)
			}
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
			if tt.wantFeedback != "" {
				assert.Contains(t, feedback, tt.wantFeedback)
			}
			assert.NotEmpty(t, feedback)
		})
	}
}
