package extraction

import (
	"regexp"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Token is one part-of-speech tagged word.
type Token struct {
	Text string
	Tag  string
}

// Tagger assigns Penn Treebank tags to raw text. The noun-phrase strategy
// degrades to deterministic regex patterns when no tagger is wired in.
type Tagger interface {
	Name() string
	Tag(text string) ([]Token, error)
}

// ProseTagger tags text with the prose library's averaged perceptron model.
// Entity extraction is disabled; only tokenization and tagging run.
type ProseTagger struct{}

// Name identifies the tagger in analysis metadata.
func (ProseTagger) Name() string { return "prose" }

// Tag implements Tagger.
func (ProseTagger) Tag(text string) ([]Token, error) {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}

	docTokens := doc.Tokens()
	tokens := make([]Token, 0, len(docTokens))
	for _, tok := range docTokens {
		tokens = append(tokens, Token{Text: tok.Text, Tag: tok.Tag})
	}
	return tokens, nil
}

// nounPhrasesFromTokens collects compound nouns (NN NN+), gerund+noun pairs
// (VBG NN+), and standalone all-caps acronyms from a tagged token stream.
func nounPhrasesFromTokens(tokens []Token) []string {
	var phrases []string

	i := 0
	for i < len(tokens) {
		switch {
		case isNounTag(tokens[i].Tag):
			j := i
			for j < len(tokens) && isNounTag(tokens[j].Tag) {
				j++
			}
			if j-i >= 2 {
				phrases = append(phrases, joinTokens(tokens[i:j]))
			} else if isAcronym(tokens[i].Text) {
				phrases = append(phrases, tokens[i].Text)
			}
			i = j
		case tokens[i].Tag == "VBG" && i+1 < len(tokens) && isNounTag(tokens[i+1].Tag):
			j := i + 1
			for j < len(tokens) && isNounTag(tokens[j].Tag) {
				j++
			}
			phrases = append(phrases, joinTokens(tokens[i:j]))
			i = j
		default:
			i++
		}
	}

	return phrases
}

func isNounTag(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

func joinTokens(tokens []Token) string {
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		words = append(words, tok.Text)
	}
	return strings.Join(words, " ")
}

// isAcronym reports whether a word is a 2-6 character all-caps token with at
// least two letters ("SQL", "GA4", "B2B").
func isAcronym(word string) bool {
	if n := len(word); n < 2 || n > 6 {
		return false
	}
	letters := 0
	for _, r := range word {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return letters >= 2
}

// Deterministic patterns used when no tagger is available: TitleCase word
// runs, gerund+noun pairs, and acronyms.
var (
	reTitleCaseRun = regexp.MustCompile(`(?:\b[A-Z][a-zA-Z0-9+./&-]*\s+){1,6}\b[A-Z][a-zA-Z0-9+./&-]*`)
	reGerundNoun   = regexp.MustCompile(`\b[A-Za-z]+ing\s+[a-z][a-z-]+\b`)
	reAcronymWord  = regexp.MustCompile(`\b[A-Z][A-Z0-9]{1,5}\b`)
)

func regexNounPhrases(text string) []string {
	var phrases []string

	phrases = append(phrases, reTitleCaseRun.FindAllString(text, -1)...)
	phrases = append(phrases, reGerundNoun.FindAllString(text, -1)...)
	for _, word := range reAcronymWord.FindAllString(text, -1) {
		if isAcronym(word) {
			phrases = append(phrases, word)
		}
	}

	return phrases
}
