package grading

import (
	"math"
	"strings"
)

// WeightStrategy combines keyword coverage and string similarity into a
// single weighted score. Two strategies exist because the platform has
// always weighted translation feedback differently from general partial
// credit; callers must pick the one matching their feature rather than
// rely on a default.
type WeightStrategy struct {
	Name       string
	Keyword    float64
	Similarity float64
}

var (
	// GeneralWeights is the partial-credit weighting for any free-text
	// grading outside the translation-feedback path.
	GeneralWeights = WeightStrategy{Name: "general", Keyword: 0.6, Similarity: 0.4}
	// TranslationWeights is the weighting of the dedicated
	// translation-feedback path.
	TranslationWeights = WeightStrategy{Name: "translation", Keyword: 0.7, Similarity: 0.3}
)

// scoreBands maps a weighted score to a fraction of the maximum points.
// The coarse bands are deliberate: a heuristic should not pretend to
// the precision of a score like 73.2/100.
var scoreBands = []struct {
	threshold float64
	fraction  float64
}{
	{threshold: 0.95, fraction: 1.0},
	{threshold: 0.85, fraction: 0.9},
	{threshold: 0.70, fraction: 0.8},
	{threshold: 0.50, fraction: 0.5},
	{threshold: 0.30, fraction: 0.3},
}

func bandFraction(weighted float64) float64 {
	for _, band := range scoreBands {
		if weighted >= band.threshold {
			return band.fraction
		}
	}
	return 0
}

// PartialScore converts keyword overlap and similarity into a score in
// [0, maxPoints]. An exact smart-normalized match earns full points;
// anything else goes through the weighted bands.
func (e *Engine) PartialScore(submission string, accepted []string, maxPoints int, weights WeightStrategy) int {
	if maxPoints <= 0 || len(accepted) == 0 {
		return 0
	}
	if strings.TrimSpace(submission) == "" {
		return 0
	}

	normalized := SmartNormalize(submission)
	for _, alt := range accepted {
		if normalized == SmartNormalize(alt) {
			return maxPoints
		}
	}

	keywordRatio := keywordRatio(accepted[0], submission)

	best := 0.0
	for _, alt := range accepted {
		if s := Similarity(normalized, SmartNormalize(alt)); s > best {
			best = s
		}
	}

	weighted := weights.Keyword*keywordRatio + weights.Similarity*best
	return int(math.Round(bandFraction(weighted) * float64(maxPoints)))
}

// keywordRatio is the fraction of the primary answer's keywords present
// in the submission. A reference without keywords scores zero coverage.
func keywordRatio(primary, submission string) float64 {
	keywords := ExtractKeywords(primary)
	if len(keywords) == 0 {
		return 0
	}
	missing := missingKeywords(primary, submission)
	return float64(len(keywords)-len(missing)) / float64(len(keywords))
}

// ScoreWithFeedback grades freeText on a 0..100 scale with a short
// remediation string, for callers that want graded rather than binary
// feedback. Translate questions use the translation weighting; all
// other free-text types use the general weighting.
func (e *Engine) ScoreWithFeedback(q *Question, freeText string) (int, string) {
	weights := GeneralWeights
	if q.Type == TypeTranslate {
		weights = TranslationWeights
	}

	score := e.PartialScore(freeText, alternatives(q.CorrectAnswer), 100, weights)
	if score == 100 {
		return score, joinFeedback(q.Explanation, "Correct!")
	}
	return score, joinFeedback(q.Explanation, e.Hint(q, freeText))
}
