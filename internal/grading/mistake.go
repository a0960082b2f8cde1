package grading

import "strings"

// Error codes reported on incorrect answers. The vocabulary is closed;
// downstream services key UI copy and analytics off these tags.
const (
	CodeEmptyAnswer     = "EMPTY_ANSWER"
	CodeUnsupportedType = "UNSUPPORTED_QUESTION_TYPE"
	CodeWrongOption     = "WRONG_OPTION"

	CodeWrongTensePast    = "WRONG_TENSE_PAST"
	CodeWrongTenseNotPast = "WRONG_TENSE_NOT_PAST"
	CodeWrongContinuous   = "WRONG_CONTINUOUS_FORM"
	CodeMissingAuxiliary  = "MISSING_AUXILIARY"
	CodeExtraAuxiliary    = "EXTRA_AUXILIARY"
	CodeWrongAgreement    = "WRONG_SUBJECT_VERB_AGREEMENT"
	CodeVerbFormIncorrect = "VERB_FORM_INCORRECT"

	CodeMissingPluralS     = "MISSING_PLURAL_S"
	CodeExtraPluralS       = "EXTRA_PLURAL_S"
	CodeSpellingError      = "SPELLING_ERROR"
	CodeCaseError          = "CASE_ERROR"
	CodeFillBlankIncorrect = "FILL_BLANK_INCORRECT"

	CodeMissingKeywords    = "MISSING_KEYWORDS"
	CodeTooManyWords       = "TOO_MANY_WORDS"
	CodeMissingMainVerb    = "MISSING_MAIN_VERB"
	CodeTranslationAlmost  = "TRANSLATION_ALMOST_CORRECT"
	CodeTranslationPartial = "TRANSLATION_PARTIAL"
	CodeTranslationWrong   = "TRANSLATION_INCORRECT"

	CodeMinorMistake    = "MINOR_MISTAKE"
	CodePartialCorrect  = "PARTIAL_CORRECT"
	CodeCompletelyWrong = "COMPLETELY_WRONG"
)

// Mistake is the coded diagnosis of an incorrect answer.
type Mistake struct {
	Code       string
	Suggestion string
}

// mistakeInput carries everything a diagnostic rule may inspect.
// expected/submitted hold the raw strings; for fill-blank questions
// they hold the first mismatching blank pair.
type mistakeInput struct {
	expected  string
	submitted string
}

func (in mistakeInput) expectedNorm() string  { return StrictNormalize(in.expected) }
func (in mistakeInput) submittedNorm() string { return StrictNormalize(in.submitted) }

func (in mistakeInput) similarity() float64 {
	return Similarity(SmartNormalize(in.submitted), SmartNormalize(in.expected))
}

// mistakeRule pairs a predicate with the diagnosis it produces.
// Rules are evaluated in order; the first match wins, so the most
// specific diagnoses must come first in each list.
type mistakeRule struct {
	applies    func(in mistakeInput) bool
	code       string
	suggestion string
}

// auxiliaries recognized by the verb-form heuristics.
var auxiliaries = map[string]struct{}{
	"am": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "shall": {}, "should": {},
	"can": {}, "could": {}, "may": {}, "might": {}, "must": {},
}

// irregularPast lists common irregular past forms the "-ed" suffix
// check misses.
var irregularPast = map[string]struct{}{
	"was": {}, "were": {}, "went": {}, "did": {}, "had": {}, "said": {},
	"made": {}, "got": {}, "took": {}, "came": {}, "saw": {}, "knew": {},
	"gave": {}, "found": {}, "thought": {}, "told": {}, "became": {},
	"left": {}, "felt": {}, "put": {}, "brought": {}, "began": {},
	"kept": {}, "held": {}, "wrote": {}, "stood": {}, "heard": {},
	"met": {}, "ran": {}, "paid": {}, "sat": {}, "spoke": {}, "ate": {},
	"drank": {}, "read": {}, "bought": {}, "taught": {}, "slept": {},
}

// commonVerbs is the closed list used by the missing-main-verb
// heuristic for translations.
var commonVerbs = map[string]struct{}{
	"am": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"go": {}, "goes": {}, "went": {}, "going": {},
	"like": {}, "likes": {}, "liked": {}, "love": {}, "loves": {}, "loved": {},
	"want": {}, "wants": {}, "wanted": {}, "need": {}, "needs": {}, "needed": {},
	"make": {}, "makes": {}, "made": {}, "making": {},
	"get": {}, "gets": {}, "got": {}, "getting": {},
	"see": {}, "sees": {}, "saw": {}, "seen": {},
	"know": {}, "knows": {}, "knew": {},
	"think": {}, "thinks": {}, "thought": {},
	"come": {}, "comes": {}, "came": {}, "coming": {},
	"take": {}, "takes": {}, "took": {}, "taking": {},
	"learn": {}, "learns": {}, "learned": {}, "learning": {},
	"study": {}, "studies": {}, "studied": {}, "studying": {},
	"play": {}, "plays": {}, "played": {}, "playing": {},
	"work": {}, "works": {}, "worked": {}, "working": {},
	"eat": {}, "eats": {}, "ate": {}, "eating": {},
	"speak": {}, "speaks": {}, "spoke": {}, "speaking": {},
	"say": {}, "says": {}, "said": {},
	"read": {}, "reads": {}, "reading": {},
	"write": {}, "writes": {}, "wrote": {}, "writing": {},
	"live": {}, "lives": {}, "lived": {}, "living": {},
}

func hasAnyToken(s string, set map[string]struct{}) bool {
	for _, t := range strings.Fields(s) {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

func isPastForm(token string) bool {
	if _, ok := irregularPast[token]; ok {
		return true
	}
	return len(token) > 3 && strings.HasSuffix(token, "ed")
}

func hasPastForm(s string) bool {
	for _, t := range strings.Fields(s) {
		if isPastForm(t) {
			return true
		}
	}
	return false
}

func hasContinuousForm(s string) bool {
	for _, t := range strings.Fields(s) {
		if len(t) > 4 && strings.HasSuffix(t, "ing") {
			return true
		}
	}
	return false
}

// agreementPairs are subject-verb agreement counterparts: submitting
// one when the other was expected is an agreement error, not a tense
// error.
var agreementPairs = map[string]string{
	"was": "were", "were": "was",
	"is": "are", "are": "is",
	"has": "have", "have": "has",
	"does": "do", "do": "does",
}

var verbFormRules = []mistakeRule{
	{
		applies: func(in mistakeInput) bool {
			return hasAnyToken(in.expectedNorm(), auxiliaries) && !hasAnyToken(in.submittedNorm(), auxiliaries)
		},
		code:       CodeMissingAuxiliary,
		suggestion: "An auxiliary verb is missing from your answer.",
	},
	{
		applies: func(in mistakeInput) bool {
			return !hasAnyToken(in.expectedNorm(), auxiliaries) && hasAnyToken(in.submittedNorm(), auxiliaries)
		},
		code:       CodeExtraAuxiliary,
		suggestion: "Your answer has an auxiliary verb it does not need.",
	},
	{
		applies: func(in mistakeInput) bool {
			expected, submitted := in.expectedNorm(), in.submittedNorm()
			counterpart, ok := agreementPairs[submitted]
			return ok && counterpart == expected
		},
		code:       CodeWrongAgreement,
		suggestion: "Check that the verb agrees with its subject.",
	},
	{
		applies: func(in mistakeInput) bool {
			return hasContinuousForm(in.expectedNorm()) != hasContinuousForm(in.submittedNorm())
		},
		code:       CodeWrongContinuous,
		suggestion: "Check whether the continuous (-ing) form is needed here.",
	},
	{
		applies: func(in mistakeInput) bool {
			return hasPastForm(in.expectedNorm()) && !hasPastForm(in.submittedNorm())
		},
		code:       CodeWrongTensePast,
		suggestion: "The sentence needs the past tense.",
	},
	{
		applies: func(in mistakeInput) bool {
			return !hasPastForm(in.expectedNorm()) && hasPastForm(in.submittedNorm())
		},
		code:       CodeWrongTenseNotPast,
		suggestion: "The sentence does not take the past tense.",
	},
}

var verbFormFallback = Mistake{
	Code:       CodeVerbFormIncorrect,
	Suggestion: "That verb form is not correct here.",
}

var fillBlankRules = []mistakeRule{
	{
		applies: func(in mistakeInput) bool {
			expected, submitted := in.expectedNorm(), in.submittedNorm()
			return strings.HasSuffix(expected, "s") && expected == submitted+"s"
		},
		code:       CodeMissingPluralS,
		suggestion: "Check singular/plural: the answer needs a plural form.",
	},
	{
		applies: func(in mistakeInput) bool {
			expected, submitted := in.expectedNorm(), in.submittedNorm()
			return strings.HasSuffix(submitted, "s") && submitted == expected+"s"
		},
		code:       CodeExtraPluralS,
		suggestion: "Check singular/plural: the answer should be singular.",
	},
	{
		// Raw strings differ only in letter case. This must run before
		// the spelling rule, which works on normalized strings and
		// would always fire for a pure case error.
		applies: func(in mistakeInput) bool {
			expected := strings.TrimSpace(in.expected)
			submitted := strings.TrimSpace(in.submitted)
			return expected != submitted && strings.EqualFold(expected, submitted)
		},
		code:       CodeCaseError,
		suggestion: "Check the capitalization of your answer.",
	},
	{
		applies: func(in mistakeInput) bool {
			return in.similarity() >= 0.8
		},
		code:       CodeSpellingError,
		suggestion: "Almost there, check your spelling.",
	},
}

var fillBlankFallback = Mistake{
	Code:       CodeFillBlankIncorrect,
	Suggestion: "That is not the word this blank needs.",
}

var translateRules = []mistakeRule{
	{
		applies: func(in mistakeInput) bool {
			return len(ExtractKeywords(in.expected)) > 0 && len(missingKeywords(in.expected, in.submitted)) > 0
		},
		code:       CodeMissingKeywords,
		suggestion: "Your translation is missing some key words.",
	},
	{
		applies: func(in mistakeInput) bool {
			expected := len(strings.Fields(SmartNormalize(in.expected)))
			submitted := len(strings.Fields(SmartNormalize(in.submitted)))
			return expected > 0 && submitted > expected*2
		},
		code:       CodeTooManyWords,
		suggestion: "Your translation is much longer than it needs to be.",
	},
	{
		applies: func(in mistakeInput) bool {
			return !hasAnyToken(SmartNormalize(in.submitted), commonVerbs)
		},
		code:       CodeMissingMainVerb,
		suggestion: "Your translation seems to be missing its main verb.",
	},
	{
		applies:    func(in mistakeInput) bool { return in.similarity() >= 0.7 },
		code:       CodeTranslationAlmost,
		suggestion: "Very close, check the grammar and word endings.",
	},
	{
		applies:    func(in mistakeInput) bool { return in.similarity() >= 0.4 },
		code:       CodeTranslationPartial,
		suggestion: "Parts of your translation are right, but the sentence needs rework.",
	},
}

var translateFallback = Mistake{
	Code:       CodeTranslationWrong,
	Suggestion: "Try translating the sentence again from the beginning.",
}

// genericRules apply to any type without a dedicated rule list, keyed
// purely on similarity.
var genericRules = []mistakeRule{
	{
		applies:    func(in mistakeInput) bool { return in.similarity() >= 0.8 },
		code:       CodeMinorMistake,
		suggestion: "Very close, check the details of your answer.",
	},
	{
		applies:    func(in mistakeInput) bool { return in.similarity() >= 0.5 },
		code:       CodePartialCorrect,
		suggestion: "You are partly right, compare your answer with the question again.",
	},
}

var genericFallback = Mistake{
	Code:       CodeCompletelyWrong,
	Suggestion: "That is not right, review this item and try again.",
}

func evaluateRules(rules []mistakeRule, fallback Mistake, in mistakeInput) Mistake {
	for _, rule := range rules {
		if rule.applies(in) {
			return Mistake{Code: rule.code, Suggestion: rule.suggestion}
		}
	}
	return fallback
}

// classifyMistake diagnoses an incorrect free-text answer. It runs only
// after the matcher rejected the submission.
func (e *Engine) classifyMistake(q *Question, submitted string) Mistake {
	switch q.Type {
	case TypeMultipleChoice, TypeTrueFalse:
		return Mistake{Code: CodeWrongOption, Suggestion: "That option is not correct, rule out the ones that contradict the sentence."}
	case TypeVerbForm:
		in := mistakeInput{expected: primaryAnswer(q.CorrectAnswer), submitted: submitted}
		return evaluateRules(verbFormRules, verbFormFallback, in)
	case TypeFillBlank:
		return evaluateRules(fillBlankRules, fillBlankFallback, firstBlankMismatch(q.CorrectAnswer, submitted))
	case TypeTranslate:
		in := mistakeInput{expected: primaryAnswer(q.CorrectAnswer), submitted: submitted}
		return evaluateRules(translateRules, translateFallback, in)
	default:
		in := mistakeInput{expected: primaryAnswer(q.CorrectAnswer), submitted: submitted}
		return evaluateRules(genericRules, genericFallback, in)
	}
}

// primaryAnswer is the first accepted alternative of a stored answer.
func primaryAnswer(correctAnswer string) string {
	alts := alternatives(correctAnswer)
	if len(alts) == 0 {
		return ""
	}
	return alts[0]
}

// firstBlankMismatch finds the first positional blank pair that failed
// equivalence. When the learner answered the wrong number of blanks the
// whole strings are compared instead.
func firstBlankMismatch(correctAnswer, submitted string) mistakeInput {
	expected := strings.Split(correctAnswer, "|")
	got := strings.Split(submitted, "|")
	if len(expected) != len(got) {
		return mistakeInput{expected: correctAnswer, submitted: submitted}
	}
	for i := range expected {
		if !AreEquivalent(got[i], expected[i]) {
			return mistakeInput{expected: expected[i], submitted: got[i]}
		}
	}
	return mistakeInput{expected: correctAnswer, submitted: submitted}
}
