package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{name: "identical strings", a: "kitten", b: "kitten", expected: 0},
		{name: "classic kitten sitting", a: "kitten", b: "sitting", expected: 3},
		{name: "empty to word", a: "", b: "abc", expected: 3},
		{name: "word to empty", a: "abc", b: "", expected: 3},
		{name: "both empty", a: "", b: "", expected: 0},
		{name: "single substitution", a: "cat", b: "car", expected: 1},
		{name: "was to were", a: "was", b: "were", expected: 3},
		{name: "unicode runes count as one edit", a: "café", b: "cafe", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			// Distance is symmetric.
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{name: "identical", a: "hello", b: "hello", expected: 1.0},
		{name: "both empty", a: "", b: "", expected: 1.0},
		{name: "completely different", a: "abc", b: "xyz", expected: 0.0},
		{name: "one empty", a: "abcd", b: "", expected: 0.0},
		{name: "near miss", a: "married", b: "maried", expected: 1.0 - 1.0/7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"a", ""},
		{"short", "a much longer sentence entirely"},
		{"I like learning English", "i like learn english"},
		{"same", "same"},
	}
	for _, p := range pairs {
		s := Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0, "similarity(%q, %q)", p[0], p[1])
		assert.LessOrEqual(t, s, 1.0, "similarity(%q, %q)", p[0], p[1])
	}
	assert.Equal(t, 1.0, Similarity("anything", "anything"))
}
