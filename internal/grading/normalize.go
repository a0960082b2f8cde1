package grading

import "strings"

// contraction is one rewrite applied during smart normalization.
// The table is ordered: irregular forms must come before the generic
// suffix rules ("won't" before "n't").
type contraction struct {
	From string
	To   string
}

var contractions = []contraction{
	{From: "won't", To: "will not"},
	{From: "can't", To: "cannot"},
	{From: "shan't", To: "shall not"},
	{From: "ain't", To: "am not"},
	{From: "n't", To: " not"},
	{From: "i'm", To: "i am"},
	{From: "it's", To: "it is"},
	{From: "he's", To: "he is"},
	{From: "she's", To: "she is"},
	{From: "that's", To: "that is"},
	{From: "there's", To: "there is"},
	{From: "here's", To: "here is"},
	{From: "what's", To: "what is"},
	{From: "who's", To: "who is"},
	{From: "let's", To: "let us"},
	{From: "'re", To: " are"},
	{From: "'ve", To: " have"},
	{From: "'ll", To: " will"},
	{From: "'d", To: " would"},
}

// punctuation stripped by smart normalization. Apostrophes are removed
// only after contraction expansion has run.
const strippedPunctuation = ".,!?;:\"'()[]{}`"

var dashReplacer = strings.NewReplacer("-", " ", "–", " ", "—", " ")

// ExpandContractions lowercases s and rewrites every known English
// contraction to its expanded form, so that contracted and expanded
// answers compare equal.
func ExpandContractions(s string) string {
	s = strings.ToLower(s)
	for _, c := range contractions {
		s = strings.ReplaceAll(s, c.From, c.To)
	}
	return s
}

// SmartNormalize canonicalizes free-text answers: lowercase, expand
// contractions, strip punctuation, normalize dashes to spaces and
// collapse whitespace. It is idempotent and never fails.
//
// Used for translate, fill-blank and short-answer comparison.
func SmartNormalize(s string) string {
	s = ExpandContractions(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(strippedPunctuation, r) {
			continue
		}
		b.WriteRune(r)
	}
	s = dashReplacer.Replace(b.String())

	return strings.Join(strings.Fields(s), " ")
}

// StrictNormalize only lowercases, collapses whitespace and trims.
// Verb-form answers are short, so punctuation differences are usually
// real errors and must not be forgiven.
func StrictNormalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// AreEquivalent reports whether two answers are equal under smart
// normalization, additionally retrying with both sides fully expanded so
// "I'm" and "I am" match regardless of which side was contracted.
func AreEquivalent(a, b string) bool {
	na, nb := SmartNormalize(a), SmartNormalize(b)
	if na == nb {
		return true
	}
	return ExpandContractions(na) == ExpandContractions(nb)
}
