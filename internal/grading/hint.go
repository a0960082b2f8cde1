package grading

import "strings"

// Hint returns a short, always-available remediation string for the
// question's type. It is independent of the mistake classifier and is
// never empty.
func (e *Engine) Hint(q *Question, submitted string) string {
	if strings.TrimSpace(submitted) == "" {
		return "Enter an answer before submitting."
	}

	switch q.Type {
	case TypeMultipleChoice:
		return "Read each option again and rule out the ones that contradict the sentence."
	case TypeTrueFalse:
		return "Answer with true or false."
	case TypeFillBlank:
		return "Check singular/plural and the exact word form of each blank."
	case TypeVerbForm:
		return "Check subject-verb agreement and tense."
	case TypeShortAnswer:
		return "Focus on the key words the answer needs."
	case TypeTranslate:
		score := e.PartialScore(submitted, alternatives(q.CorrectAnswer), 100, TranslationWeights)
		if score >= 50 {
			return "Close, check the grammar."
		}
		return "Translate the whole sentence, keeping the main verb and the key words."
	default:
		return "Review this item and try again."
	}
}
