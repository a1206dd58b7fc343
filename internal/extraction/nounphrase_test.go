package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNounPhrasesFromTokens(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []Token
		expected []string
	}{
		{
			name: "compound noun run",
			tokens: []Token{
				{Text: "demand", Tag: "NN"},
				{Text: "generation", Tag: "NN"},
				{Text: "programs", Tag: "NNS"},
			},
			expected: []string{"demand generation programs"},
		},
		{
			name: "gerund plus noun",
			tokens: []Token{
				{Text: "forecasting", Tag: "VBG"},
				{Text: "revenue", Tag: "NN"},
			},
			expected: []string{"forecasting revenue"},
		},
		{
			name: "standalone acronym",
			tokens: []Token{
				{Text: "SQL", Tag: "NNP"},
				{Text: "helps", Tag: "VBZ"},
			},
			expected: []string{"SQL"},
		},
		{
			name: "single lowercase noun ignored",
			tokens: []Token{
				{Text: "marketing", Tag: "NN"},
				{Text: "helps", Tag: "VBZ"},
			},
			expected: nil,
		},
		{
			name: "gerund without noun ignored",
			tokens: []Token{
				{Text: "running", Tag: "VBG"},
				{Text: "quickly", Tag: "RB"},
			},
			expected: nil,
		},
		{
			name: "runs broken by punctuation",
			tokens: []Token{
				{Text: "email", Tag: "NN"},
				{Text: "marketing", Tag: "NN"},
				{Text: ",", Tag: ","},
				{Text: "paid", Tag: "JJ"},
				{Text: "search", Tag: "NN"},
			},
			expected: []string{"email marketing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nounPhrasesFromTokens(tt.tokens))
		})
	}
}

func TestIsAcronym(t *testing.T) {
	tests := []struct {
		name     string
		word     string
		expected bool
	}{
		{name: "classic", word: "SQL", expected: true},
		{name: "with digit", word: "GA4", expected: true},
		{name: "b2b style", word: "B2B", expected: true},
		{name: "too short", word: "R", expected: false},
		{name: "too long", word: "ABCDEFG", expected: false},
		{name: "mixed case", word: "SeO", expected: false},
		{name: "mostly digits", word: "A1", expected: false},
		{name: "lowercase", word: "sql", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isAcronym(tt.word))
		})
	}
}

func TestRegexNounPhrases(t *testing.T) {
	text := "Own Lifecycle Marketing programs, building dashboards for the CMO."

	phrases := regexNounPhrases(text)

	assert.Contains(t, phrases, "Own Lifecycle Marketing")
	assert.Contains(t, phrases, "building dashboards")
	assert.Contains(t, phrases, "CMO")
}
