package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

func testEntries() []types.TaxonomyEntry {
	return []types.TaxonomyEntry{
		{Name: "A/B Testing", Canonical: "a_b_testing", Category: "experimentation", Aliases: []string{"split testing", "ab testing"}},
		{Name: "Go-to-Market Strategy", Canonical: "go_to_market_strategy", Category: "strategy", Aliases: []string{"gtm", "gtm strategy"}},
		{Name: "SQL", Canonical: "sql", Category: "data", Aliases: []string{"structured query language"}},
		{Name: "Content Marketing", Canonical: "content_marketing", Category: "marketing", Aliases: nil},
		{Name: "SEO", Canonical: "seo", Category: "marketing", Aliases: []string{"search engine optimization", "search engine optimisation"}},
	}
}

func TestNormalizeTerm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and trims",
			input:    "  Content Marketing  ",
			expected: "content marketing",
		},
		{
			name:     "strips punctuation",
			input:    "SEO, (advanced)",
			expected: "seo advanced",
		},
		{
			name:     "keeps slash ampersand hyphen",
			input:    "A/B Testing & Go-to-Market",
			expected: "a/b testing & go-to-market",
		},
		{
			name:     "collapses internal whitespace",
			input:    "content\t\n marketing",
			expected: "content marketing",
		},
		{
			name:     "plus signs removed",
			input:    "C++",
			expected: "c",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTerm(tt.input))
		})
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "slash and space", input: "A/B Testing", expected: "a_b_testing"},
		{name: "hyphens", input: "Go-to-Market", expected: "go_to_market"},
		{name: "punctuation runs", input: "Node.js!!", expected: "node_js"},
		{name: "already canonical", input: "sql", expected: "sql"},
		{name: "trailing symbols trimmed", input: "C++", expected: "c"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Canonicalize(tt.input))
		})
	}
}

func TestMatcherExact(t *testing.T) {
	m := New(testEntries())

	tests := []struct {
		name      string
		query     string
		canonical string
	}{
		{
			name:      "name hit",
			query:     "A/B Testing",
			canonical: "a_b_testing",
		},
		{
			name:      "alias hit",
			query:     "split testing",
			canonical: "a_b_testing",
		},
		{
			name:      "case insensitive",
			query:     "sql",
			canonical: "sql",
		},
		{
			name:      "punctuation ignored",
			query:     "GTM.",
			canonical: "go_to_market_strategy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := m.Search(tt.query)
			require.Len(t, matches, 1)
			assert.True(t, matches[0].Exact)
			assert.Zero(t, matches[0].Score)
			assert.Equal(t, tt.canonical, matches[0].Entry.Canonical)
		})
	}
}

func TestMatcherFuzzy(t *testing.T) {
	m := New(testEntries())

	tests := []struct {
		name      string
		query     string
		canonical string
	}{
		{
			name:      "single typo",
			query:     "contant marketing",
			canonical: "content_marketing",
		},
		{
			name:      "transposition",
			query:     "ab tesitng",
			canonical: "a_b_testing",
		},
		{
			name:      "token overlap out of order",
			query:     "testing a/b",
			canonical: "a_b_testing",
		},
		{
			name:      "partial token",
			query:     "search engine optim",
			canonical: "seo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := m.Best(tt.query)
			require.True(t, ok)
			assert.False(t, match.Exact)
			assert.Equal(t, tt.canonical, match.Entry.Canonical)
			assert.LessOrEqual(t, match.Score, m.Threshold())
		})
	}
}

func TestMatcherRejects(t *testing.T) {
	m := New(testEntries())

	tests := []struct {
		name  string
		query string
	}{
		{
			name:  "unrelated term",
			query: "forklift certification",
		},
		{
			name:  "empty query",
			query: "",
		},
		{
			name:  "punctuation only",
			query: "!!!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := m.Search(tt.query)
			assert.Empty(t, matches)
		})
	}
}

func TestMatcherDedupesByEntry(t *testing.T) {
	// "se0" is within threshold of both the name and canonical terms of the
	// SEO entry; the result must carry the entry once with its best score.
	m := New(testEntries())

	matches := m.Search("se0")
	require.NotEmpty(t, matches)

	seen := make(map[string]int)
	for _, match := range matches {
		seen[match.Entry.Canonical]++
	}
	for canonical, count := range seen {
		assert.Equal(t, 1, count, "entry %s returned more than once", canonical)
	}
	assert.Equal(t, "seo", matches[0].Entry.Canonical)
}

func TestMatcherOrdering(t *testing.T) {
	m := New(testEntries())

	matches := m.Search("content marketng")
	require.NotEmpty(t, matches)
	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
	assert.Equal(t, "content_marketing", matches[0].Entry.Canonical)
}

func TestMatcherThresholdFallback(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		expected  float64
	}{
		{
			name:      "zero falls back",
			threshold: 0,
			expected:  DefaultThreshold,
		},
		{
			name:      "negative falls back",
			threshold: -1,
			expected:  DefaultThreshold,
		},
		{
			name:      "above one falls back",
			threshold: 1.5,
			expected:  DefaultThreshold,
		},
		{
			name:      "valid kept",
			threshold: 0.25,
			expected:  0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewWithThreshold(testEntries(), tt.threshold)
			assert.Equal(t, tt.expected, m.Threshold())
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{name: "identical", a: "sql", b: "sql", expected: 0},
		{name: "empty left", a: "", b: "seo", expected: 3},
		{name: "empty right", a: "seo", b: "", expected: 3},
		{name: "substitution", a: "sql", b: "sal", expected: 1},
		{name: "insertion", a: "gtm", b: "gtmx", expected: 1},
		{name: "unicode runes", a: "café", b: "cafe", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, levenshtein(tt.a, tt.b))
		})
	}
}
