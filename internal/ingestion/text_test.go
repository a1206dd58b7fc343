package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_PreserveBulletLists(t *testing.T) {
	input := "- Item 1\n- Item 2\n* Item 3\n• Item 4\n· Item 5"
	result := CleanText(input)

	assert.Contains(t, result, "- Item 1")
	assert.Contains(t, result, "- Item 2")
	assert.Contains(t, result, "* Item 3")
	assert.Contains(t, result, "• Item 4")
	assert.Contains(t, result, "· Item 5")
}

func TestCleanText_PreserveNumberedLists(t *testing.T) {
	input := "1. First requirement\n2)   Second requirement"
	result := CleanText(input)

	assert.Contains(t, result, "1. First requirement")
	assert.Contains(t, result, "2) Second requirement")
}

func TestCleanText_NormalizeBulletSpacing(t *testing.T) {
	input := "-    Deep   expertise in SEO\n•  Google   Analytics"
	result := CleanText(input)

	assert.Contains(t, result, "- Deep expertise in SEO")
	assert.Contains(t, result, "• Google Analytics")
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	input := "Line    with    multiple    spaces"
	result := CleanText(input)

	assert.Contains(t, result, "Line with multiple spaces")
	assert.NotContains(t, result, "    ")
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	input := "Line 1\n\n\n\n\nLine 2"
	result := CleanText(input)

	assert.NotContains(t, result, "\n\n\n")
	assert.Contains(t, result, "\n\n")
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\nLine 4"
	result := CleanText(input)

	assert.NotContains(t, result, "\r")
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_PreserveIndentation(t *testing.T) {
	input := "Requirements:\n  - Familiarity with HubSpot\n  - Python or R"
	result := CleanText(input)

	assert.Contains(t, result, "  - Familiarity with HubSpot")
	assert.Contains(t, result, "  - Python or R")
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
}

func TestCleanText_OnlyWhitespace(t *testing.T) {
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	input := "Test with émojis 🚀 and spéciàl chàracters"
	result := CleanText(input)

	assert.Contains(t, result, "émojis")
	assert.Contains(t, result, "🚀")
	assert.Contains(t, result, "spéciàl chàracters")
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
}

func TestCleanText_MessyPosting(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("testdata", "messy_posting.txt"))
	require.NoError(t, err)

	result := CleanText(string(content))

	assert.Contains(t, result, "About the role")
	assert.Contains(t, result, "- 5+ years of B2B marketing experience")
	assert.Contains(t, result, "• Deep expertise in SEO and content marketing")
	assert.Contains(t, result, "1. Strong SQL skills")
	assert.Contains(t, result, "2) Experience with A/B testing")
	assert.Contains(t, result, "  - Familiarity with HubSpot")
	assert.NotContains(t, result, "\n\n\n")
	assert.False(t, strings.HasSuffix(result, "\n"))
}

func TestHash_HexDigest(t *testing.T) {
	h := Hash("some posting text")

	assert.Len(t, h, 64)
	assert.Equal(t, h, Hash("some posting text"))
	assert.NotEqual(t, h, Hash("some other posting"))
}

func TestHash_EmptyContent(t *testing.T) {
	assert.Len(t, Hash(""), 64)
}

func TestFromFile_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posting.txt")
	require.NoError(t, os.WriteFile(path, []byte("Role   overview\r\n- SQL required"), 0644))

	text, err := FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Role overview\n- SQL required", text)
}

func TestFromFile_HTMLExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posting.html")
	page := "<html><body><main><p>Overview</p><ul><li>SQL</li></ul></main></body></html>"
	require.NoError(t, os.WriteFile(path, []byte(page), 0644))

	text, err := FromFile(path)
	require.NoError(t, err)

	assert.Contains(t, text, "Overview")
	assert.Contains(t, text, "- SQL")
}

func TestFromFile_NotFound(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read posting")
}

func TestFromReader(t *testing.T) {
	text, err := FromReader(strings.NewReader("Posting    body\n\n\n\nEnd"))
	require.NoError(t, err)

	assert.Equal(t, "Posting body\n\nEnd", text)
}
