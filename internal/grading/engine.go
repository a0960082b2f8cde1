package grading

import (
	"log/slog"
	"math"
	"strings"
)

// Config tunes the free-text acceptance thresholds. The zero value is
// not usable; start from DefaultConfig.
type Config struct {
	// FuzzyThreshold is the minimum similarity ratio at which the
	// translate matcher's last-resort fuzzy tier accepts an answer.
	FuzzyThreshold float64
	// KeywordCoverage is the fraction of a reference answer's keywords
	// that must appear in a translation for the keyword tier to accept.
	KeywordCoverage float64
}

// DefaultConfig returns the thresholds the platform ships with.
func DefaultConfig() Config {
	return Config{
		FuzzyThreshold:  0.85,
		KeywordCoverage: 0.75,
	}
}

// Engine grades submitted answers. It holds only constant configuration
// and is safe for concurrent use.
type Engine struct {
	cfg      Config
	matchers map[QuestionType]matcherFunc
}

// matcherFunc encodes the equivalence rule of one question type.
type matcherFunc func(q *Question, a SubmittedAnswer) bool

// NewEngine creates an Engine with the given thresholds.
func NewEngine(cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	e.matchers = map[QuestionType]matcherFunc{
		TypeMultipleChoice: matchMultipleChoice,
		TypeTrueFalse:      matchTrueFalse,
		TypeFillBlank:      matchFillBlank,
		TypeVerbForm:       matchVerbForm,
		TypeShortAnswer:    matchShortAnswer,
		TypeTranslate:      e.matchTranslate,
	}
	return e
}

// Grade decides whether the submission answers the question correctly
// and builds the feedback shown to the learner.
//
// q must be non-nil; that is the caller's contract. Everything else is
// handled gracefully: an empty submission or structurally broken
// question data grades as incorrect rather than failing, because a bad
// question must never crash grading for a live learner.
func (e *Engine) Grade(q *Question, a SubmittedAnswer) Result {
	match, ok := e.matchers[q.Type]
	if !ok {
		// Unreachable with the closed type vocabulary; its presence
		// signals a caller bug.
		slog.Warn("unsupported question type", "question_id", q.ID, "type", q.Type)
		return Result{
			Feedback:  "This question could not be graded.",
			ErrorCode: CodeUnsupportedType,
		}
	}

	if strings.TrimSpace(a.FreeText) == "" && a.SelectedOptionID == "" {
		return Result{
			Feedback:  joinFeedback(q.Explanation, "Enter an answer before submitting."),
			ErrorCode: CodeEmptyAnswer,
		}
	}

	if match(q, a) {
		return Result{
			IsCorrect: true,
			Score:     q.Points,
			Feedback:  joinFeedback(q.Explanation, "Correct!"),
		}
	}

	mistake := e.classifyMistake(q, a.FreeText)
	result := Result{
		Feedback:  joinFeedback(q.Explanation, mistake.Suggestion),
		ErrorCode: mistake.Code,
	}
	// Free-text modalities earn partial credit even when the matcher
	// rejects the answer outright.
	switch q.Type {
	case TypeTranslate:
		result.Score = e.PartialScore(a.FreeText, alternatives(q.CorrectAnswer), q.Points, TranslationWeights)
	case TypeShortAnswer:
		result.Score = e.PartialScore(a.FreeText, alternatives(q.CorrectAnswer), q.Points, GeneralWeights)
	}
	return result
}

// alternatives splits a stored correct answer into its accepted forms.
func alternatives(correctAnswer string) []string {
	parts := strings.Split(correctAnswer, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinFeedback(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(p))
		}
	}
	return strings.Join(nonEmpty, " ")
}

// matchMultipleChoice prefers the selected option ID; a free-text answer
// matching the correct option's text (case-insensitively, trimmed) is
// the fallback.
func matchMultipleChoice(q *Question, a SubmittedAnswer) bool {
	correct := q.correctOption()
	if correct == nil {
		// Authoring defect: zero or several options flagged correct.
		slog.Warn("multiple choice question without a single correct option", "question_id", q.ID)
		return false
	}
	if a.SelectedOptionID != "" {
		return a.SelectedOptionID == correct.ID
	}
	return strings.EqualFold(strings.TrimSpace(a.FreeText), strings.TrimSpace(correct.Text))
}

// matchTrueFalse accepts only the literal tokens "true" and "false".
// "yes" for a true answer is still wrong.
func matchTrueFalse(q *Question, a SubmittedAnswer) bool {
	correct := q.correctOption()
	if correct == nil {
		slog.Warn("true/false question without a single correct option", "question_id", q.ID)
		return false
	}

	submitted := a.FreeText
	if a.SelectedOptionID != "" {
		for _, opt := range q.Options {
			if opt.ID == a.SelectedOptionID {
				submitted = opt.Text
				break
			}
		}
	}

	submitted = strings.ToLower(strings.TrimSpace(submitted))
	token := strings.ToLower(strings.TrimSpace(correct.Text))
	if submitted != "true" && submitted != "false" {
		return false
	}
	return submitted == token
}

// matchFillBlank compares the per-blank segments positionally. A wrong
// number of blanks is always incorrect, and every blank must match
// under contraction-aware equivalence.
func matchFillBlank(q *Question, a SubmittedAnswer) bool {
	expected := strings.Split(q.CorrectAnswer, "|")
	submitted := strings.Split(a.FreeText, "|")
	if len(expected) != len(submitted) {
		return false
	}
	for i := range expected {
		if !AreEquivalent(submitted[i], expected[i]) {
			return false
		}
	}
	return true
}

// matchVerbForm compares under strict normalization only. Conjugation
// is exact-or-wrong.
func matchVerbForm(q *Question, a SubmittedAnswer) bool {
	submitted := StrictNormalize(a.FreeText)
	for _, alt := range alternatives(q.CorrectAnswer) {
		if submitted == StrictNormalize(alt) {
			return true
		}
	}
	return false
}

// matchShortAnswer accepts a verbatim (smart-normalized) match with any
// alternative, or a submission containing every token of at least one
// alternative in any order.
func matchShortAnswer(q *Question, a SubmittedAnswer) bool {
	submitted := SmartNormalize(a.FreeText)
	submittedTokens := make(map[string]struct{})
	for _, t := range strings.Fields(submitted) {
		submittedTokens[t] = struct{}{}
	}

	for _, alt := range alternatives(q.CorrectAnswer) {
		normalized := SmartNormalize(alt)
		if submitted == normalized {
			return true
		}

		tokens := strings.Fields(normalized)
		if len(tokens) == 0 {
			continue
		}
		containsAll := true
		for _, t := range tokens {
			if _, ok := submittedTokens[t]; !ok {
				containsAll = false
				break
			}
		}
		if containsAll {
			return true
		}
	}
	return false
}

// matchTranslate applies three escalating tiers, cheapest and most
// certain first:
//
//  1. exact smart-normalized match with any alternative;
//  2. keyword coverage of the primary alternative, tolerating word
//     order and tense variation;
//  3. fuzzy similarity as the last-resort net for minor spelling slips.
func (e *Engine) matchTranslate(q *Question, a SubmittedAnswer) bool {
	alts := alternatives(q.CorrectAnswer)
	if len(alts) == 0 {
		slog.Warn("translate question without accepted answers", "question_id", q.ID)
		return false
	}

	submitted := SmartNormalize(a.FreeText)
	for _, alt := range alts {
		if submitted == SmartNormalize(alt) {
			return true
		}
	}

	keywords := ExtractKeywords(alts[0])
	if len(keywords) >= 2 {
		missing := missingKeywords(alts[0], a.FreeText)
		found := len(keywords) - len(missing)
		required := int(math.Ceil(e.cfg.KeywordCoverage * float64(len(keywords))))
		if found >= required {
			return true
		}
	}

	best := 0.0
	for _, alt := range alts {
		if s := Similarity(submitted, SmartNormalize(alt)); s > best {
			best = s
		}
	}
	return best >= e.cfg.FuzzyThreshold
}
