package extraction

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

type stubTagger struct {
	tokens []Token
	err    error
}

func (s stubTagger) Name() string { return "stub" }

func (s stubTagger) Tag(string) ([]Token, error) {
	return s.tokens, s.err
}

func findPhrase(phrases []types.ExtractedPhrase, raw string) (types.ExtractedPhrase, bool) {
	for _, p := range phrases {
		if strings.EqualFold(p.Raw, raw) {
			return p, true
		}
	}
	return types.ExtractedPhrase{}, false
}

func TestExtractBullets(t *testing.T) {
	e := New(testStore(t))

	text := "About the role\n" +
		"- Experience with SQL and Python\n" +
		"* Own our Tableau dashboards\n" +
		"• HubSpot\n" +
		"1. Build forecasting models\n"

	phrases, _ := e.Extract(text)

	p, ok := findPhrase(phrases, "SQL and Python")
	require.True(t, ok)
	assert.Equal(t, types.StrategyBullets, p.Strategy)

	_, ok = findPhrase(phrases, "HubSpot")
	assert.True(t, ok)

	_, ok = findPhrase(phrases, "Build forecasting models")
	assert.True(t, ok)
}

func TestExtractIndicators(t *testing.T) {
	e := New(testStore(t))

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "proficiency in",
			text:     "We need proficiency in Google Analytics. Other text.",
			expected: "Google Analytics",
		},
		{
			name:     "knowledge of",
			text:     "Deep knowledge of paid search; plus other duties.",
			expected: "paid search",
		},
		{
			name:     "familiarity with",
			text:     "Some familiarity with Looker would help.",
			expected: "Looker would help",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phrases, _ := e.Extract(tt.text)
			_, ok := findPhrase(phrases, tt.expected)
			assert.True(t, ok, "missing %q in %v", tt.expected, phrases)
		})
	}
}

func TestExtractTaxonomyScan(t *testing.T) {
	e := New(testStore(t))

	text := "You will own seo, run our A/B Testing program, and report in Salesforce."
	phrases, _ := e.Extract(text)

	p, ok := findPhrase(phrases, "seo")
	require.True(t, ok)
	assert.Equal(t, types.StrategyTaxonomy, p.Strategy)

	_, ok = findPhrase(phrases, "A/B Testing")
	assert.True(t, ok)

	_, ok = findPhrase(phrases, "Salesforce")
	assert.True(t, ok)
}

func TestExtractListCues(t *testing.T) {
	e := New(testStore(t))

	text := "Reporting stack includes BI tools such as Tableau, Looker for dashboards."
	phrases, _ := e.Extract(text)

	p, ok := findPhrase(phrases, "Tableau, Looker for dashboards")
	require.True(t, ok, "got %v", phrases)
	assert.Equal(t, types.StrategyList, p.Strategy)
}

func TestExtractBounds(t *testing.T) {
	e := New(testStore(t))

	long := strings.Repeat("verylongword ", 5)
	text := "- " + long + "\n" + // over 50 chars
		"- one two three four five six seven eight\n" + // over 7 words
		"- R\n" // single char, allow-listed

	phrases, _ := e.Extract(text)

	_, ok := findPhrase(phrases, strings.TrimSpace(long))
	assert.False(t, ok)

	_, ok = findPhrase(phrases, "one two three four five six seven eight")
	assert.False(t, ok)

	_, ok = findPhrase(phrases, "R")
	assert.True(t, ok)
}

func TestExtractDedup(t *testing.T) {
	e := New(testStore(t))

	text := "- SEO\nWe live and breathe seo and more SEO every day."
	phrases, _ := e.Extract(text)

	count := 0
	first := ""
	for _, p := range phrases {
		if strings.EqualFold(p.Raw, "seo") {
			count++
			first = p.Raw
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "SEO", first) // first-seen casing from the bullet
}

func TestExtractFillerTrimming(t *testing.T) {
	e := New(testStore(t))

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "leading qualifier and trailing skills",
			text:     "- Strong copywriting skills",
			expected: "copywriting",
		},
		{
			name:     "known term keeps trailing word",
			text:     "- Customer Experience",
			expected: "Customer Experience",
		},
		{
			name:     "trailing experience trimmed",
			text:     "- Marketo experience",
			expected: "Marketo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phrases, _ := e.Extract(tt.text)
			_, ok := findPhrase(phrases, tt.expected)
			assert.True(t, ok, "missing %q in %v", tt.expected, phrases)
		})
	}
}

func TestExtractNounPhraseTagger(t *testing.T) {
	tagger := stubTagger{tokens: []Token{
		{Text: "growth", Tag: "NN"},
		{Text: "marketing", Tag: "NN"},
		{Text: "is", Tag: "VBZ"},
		{Text: "building", Tag: "VBG"},
		{Text: "dashboards", Tag: "NNS"},
		{Text: "in", Tag: "IN"},
		{Text: "SQL", Tag: "NNP"},
	}}
	e := New(testStore(t), WithTagger(tagger))

	phrases, fallback := e.Extract("growth marketing is building dashboards in SQL")
	assert.False(t, fallback)

	_, ok := findPhrase(phrases, "growth marketing")
	assert.True(t, ok)

	_, ok = findPhrase(phrases, "building dashboards")
	assert.True(t, ok)

	_, ok = findPhrase(phrases, "SQL")
	assert.True(t, ok)
}

func TestExtractTaggerFallback(t *testing.T) {
	tests := []struct {
		name   string
		tagger Tagger
	}{
		{name: "no tagger wired", tagger: nil},
		{name: "tagger errors", tagger: stubTagger{err: errors.New("model unavailable")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := []Option{}
			if tt.tagger != nil {
				opts = append(opts, WithTagger(tt.tagger))
			}
			e := New(testStore(t), opts...)

			phrases, fallback := e.Extract("Drive Content Marketing and SEM programs.")
			assert.True(t, fallback)

			_, ok := findPhrase(phrases, "Content Marketing")
			assert.True(t, ok)
		})
	}
}

func TestExtractContextWindow(t *testing.T) {
	e := New(testStore(t), WithContextRadius(30))

	pad := strings.Repeat("lorem ipsum ", 10)
	text := pad + "required: Tableau reporting " + pad
	phrases, _ := e.Extract(text)

	p, ok := findPhrase(phrases, "Tableau")
	require.True(t, ok)
	assert.Contains(t, p.Context, "required")
	assert.Contains(t, p.Context, "Tableau")
	assert.LessOrEqual(t, len(p.Context), len("Tableau")+2*30+2)
}

func TestExtractEmptyText(t *testing.T) {
	e := New(testStore(t))

	for _, text := range []string{"", "   ", "\n\n"} {
		phrases, fallback := e.Extract(text)
		assert.Empty(t, phrases)
		assert.False(t, fallback)
	}
}
