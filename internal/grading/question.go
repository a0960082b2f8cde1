// Package grading implements the answer verification and scoring engine.
// Every function in this package is pure: grading a submission never
// touches storage or shared state, so any number of calls may run
// concurrently.
package grading

// QuestionType identifies one of the supported question modalities.
// The vocabulary is closed; callers must not invent new values.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
	TypeFillBlank      QuestionType = "fill_blank"
	TypeVerbForm       QuestionType = "verb_form"
	TypeShortAnswer    QuestionType = "short_answer"
	TypeTranslate      QuestionType = "translate"
)

// Option is a single answer choice for choice-based question types.
type Option struct {
	ID        string
	Text      string
	IsCorrect bool
}

// Question is the correctness definition of a single question, owned
// by the caller and read-only to the engine.
//
// For free-text types, CorrectAnswer holds one or more accepted answers
// separated by "|". For multi-blank fill-blank questions, each segment
// is the accepted answer of one blank, in blank order.
type Question struct {
	ID            string
	Text          string
	Type          QuestionType
	CorrectAnswer string
	Options       []Option
	Points        int
	Explanation   string
}

// SubmittedAnswer is a learner's answer to a single question.
// Exactly one of FreeText and SelectedOptionID is meaningful per type;
// multiple choice accepts either (the option ID wins when both are set).
type SubmittedAnswer struct {
	QuestionID       string
	FreeText         string
	SelectedOptionID string
}

// Result is the outcome of grading one submission.
type Result struct {
	IsCorrect bool
	// Score is in [0, Question.Points]. Exact-match types award all or
	// nothing; translate and short answer may earn partial credit.
	Score     int
	Feedback  string
	ErrorCode string
}

// correctOption returns the option flagged correct, or nil when the
// question data is broken (zero or several flagged options).
func (q *Question) correctOption() *Option {
	var found *Option
	for i := range q.Options {
		if !q.Options[i].IsCorrect {
			continue
		}
		if found != nil {
			return nil
		}
		found = &q.Options[i]
	}
	return found
}
