// Package questionbank loads question banks from YAML files, the
// platform database, or the hosted bank service, and validates
// authoring mistakes before a bank reaches learners.
package questionbank

import (
	"fmt"
	"strings"

	"github.com/skotani/lingrade/internal/grading"
)

// Bank is a named set of questions, typically one lesson's worth.
type Bank struct {
	ID        string     `yaml:"id" json:"id"`
	Title     string     `yaml:"title" json:"title"`
	Language  string     `yaml:"language,omitempty" json:"language,omitempty"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// Question is the authoring-side representation of a question.
type Question struct {
	ID            string   `yaml:"id" json:"id"`
	Type          string   `yaml:"type" json:"type"`
	Text          string   `yaml:"text" json:"text"`
	CorrectAnswer string   `yaml:"correct_answer,omitempty" json:"correct_answer,omitempty"`
	Options       []Option `yaml:"options,omitempty" json:"options,omitempty"`
	Points        int      `yaml:"points" json:"points"`
	Explanation   string   `yaml:"explanation,omitempty" json:"explanation,omitempty"`
}

// Option is one answer choice of a choice-based question.
type Option struct {
	ID        string `yaml:"id" json:"id"`
	Text      string `yaml:"text" json:"text"`
	IsCorrect bool   `yaml:"is_correct,omitempty" json:"is_correct,omitempty"`
}

// questionTypes maps the authoring type names onto the engine's closed
// vocabulary.
var questionTypes = map[string]grading.QuestionType{
	"multiple_choice": grading.TypeMultipleChoice,
	"true_false":      grading.TypeTrueFalse,
	"fill_blank":      grading.TypeFillBlank,
	"verb_form":       grading.TypeVerbForm,
	"short_answer":    grading.TypeShortAnswer,
	"translate":       grading.TypeTranslate,
}

// ToGrading converts the authoring model into the engine's read-only
// question record.
func (q Question) ToGrading() grading.Question {
	options := make([]grading.Option, len(q.Options))
	for i, opt := range q.Options {
		options[i] = grading.Option{ID: opt.ID, Text: opt.Text, IsCorrect: opt.IsCorrect}
	}
	return grading.Question{
		ID:            q.ID,
		Text:          q.Text,
		Type:          questionTypes[q.Type],
		CorrectAnswer: q.CorrectAnswer,
		Options:       options,
		Points:        q.Points,
		Explanation:   q.Explanation,
	}
}

// Validate reports every authoring defect in the bank. The grading
// engine degrades gracefully on broken questions, but a broken question
// should never reach learners in the first place.
func (b Bank) Validate() []error {
	var errs []error
	if strings.TrimSpace(b.ID) == "" {
		errs = append(errs, fmt.Errorf("bank is missing an id"))
	}
	if len(b.Questions) == 0 {
		errs = append(errs, fmt.Errorf("bank %q has no questions", b.ID))
	}
	for _, q := range b.Questions {
		errs = append(errs, q.validate()...)
	}
	return errs
}

func (q Question) validate() []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("question %q: "+format, append([]any{q.ID}, args...)...))
	}

	gradingType, known := questionTypes[q.Type]
	if !known {
		fail("unknown type %q", q.Type)
		return errs
	}
	if strings.TrimSpace(q.Text) == "" {
		fail("missing prompt text")
	}
	if q.Points <= 0 {
		fail("points must be positive, got %d", q.Points)
	}

	switch gradingType {
	case grading.TypeMultipleChoice:
		if len(q.Options) < 2 {
			fail("multiple choice needs at least 2 options")
		}
		if n := q.countCorrectOptions(); n != 1 {
			fail("multiple choice needs exactly 1 correct option, got %d", n)
		}
	case grading.TypeTrueFalse:
		if len(q.Options) != 2 {
			fail("true/false needs exactly 2 options")
		} else {
			for _, opt := range q.Options {
				token := strings.ToLower(strings.TrimSpace(opt.Text))
				if token != "true" && token != "false" {
					fail("true/false option %q must be the literal TRUE or FALSE", opt.Text)
				}
			}
		}
		if n := q.countCorrectOptions(); n != 1 {
			fail("true/false needs exactly 1 correct option, got %d", n)
		}
	default:
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			fail("free-text question is missing a correct answer")
		} else {
			for i, segment := range strings.Split(q.CorrectAnswer, "|") {
				if strings.TrimSpace(segment) == "" {
					fail("correct answer segment %d is empty", i+1)
				}
			}
		}
	}
	return errs
}

func (q Question) countCorrectOptions() int {
	n := 0
	for _, opt := range q.Options {
		if opt.IsCorrect {
			n++
		}
	}
	return n
}
