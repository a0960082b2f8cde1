package grading

import "strings"

// stopwords are tokens that carry no content for keyword matching:
// pronouns, be/have/do auxiliaries, articles and the most common
// prepositions and conjunctions.
var stopwords = map[string]struct{}{
	// pronouns
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {},
	"my": {}, "your": {}, "his": {}, "its": {}, "our": {}, "their": {},
	// auxiliaries
	"am": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "can": {}, "could": {}, "should": {},
	// articles
	"a": {}, "an": {}, "the": {},
	// prepositions and conjunctions
	"in": {}, "on": {}, "at": {}, "to": {}, "of": {}, "for": {},
	"and": {}, "or": {}, "but": {}, "not": {},
}

// minKeywordLength filters out short function words the stopword list
// does not cover.
const minKeywordLength = 3

// ExtractKeywords reduces a reference sentence to its content-bearing
// words: smart-normalize, drop stopwords and tokens shorter than three
// characters, preserve first-seen order and de-duplicate.
func ExtractKeywords(sentence string) []string {
	fields := strings.Fields(SmartNormalize(sentence))

	var keywords []string
	seen := make(map[string]struct{}, len(fields))
	for _, token := range fields {
		if len([]rune(token)) < minKeywordLength {
			continue
		}
		if _, ok := stopwords[token]; ok {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
	}
	return keywords
}

// missingKeywords returns the keywords of reference that do not occur as
// whole tokens in the normalized submission.
func missingKeywords(reference, submission string) []string {
	keywords := ExtractKeywords(reference)
	if len(keywords) == 0 {
		return nil
	}

	present := make(map[string]struct{})
	for _, token := range strings.Fields(SmartNormalize(submission)) {
		present[token] = struct{}{}
	}

	var missing []string
	for _, k := range keywords {
		if _, ok := present[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}
