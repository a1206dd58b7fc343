package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHTML_StripsNoise(t *testing.T) {
	page := `<html><body>
		<nav>Home | Jobs | About</nav>
		<main><p>We are hiring a growth marketer.</p></main>
		<footer>© 2026 Example Corp</footer>
		<script>trackPageView()</script>
	</body></html>`

	text, err := FromHTML(page)
	require.NoError(t, err)

	assert.Contains(t, text, "We are hiring a growth marketer.")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "Example Corp")
	assert.NotContains(t, text, "trackPageView")
}

func TestFromHTML_PrefersJobContainer(t *testing.T) {
	page := `<html><body>
		<div class="sidebar">Related postings</div>
		<div class="job-description"><p>Own the demand generation engine.</p></div>
		<div>Unrelated page text</div>
	</body></html>`

	text, err := FromHTML(page)
	require.NoError(t, err)

	assert.Contains(t, text, "Own the demand generation engine.")
	assert.NotContains(t, text, "Unrelated page text")
	assert.NotContains(t, text, "Related postings")
}

func TestFromHTML_BodyFallback(t *testing.T) {
	page := `<html><body><span>Just a bare posting.</span></body></html>`

	text, err := FromHTML(page)
	require.NoError(t, err)

	assert.Equal(t, "Just a bare posting.", text)
}

func TestFromHTML_ListItemsBecomeBullets(t *testing.T) {
	page := `<html><body><main>
		<h2>Requirements</h2>
		<ul>
			<li>5+ years of SEO</li>
			<li>Strong SQL skills</li>
		</ul>
	</main></body></html>`

	text, err := FromHTML(page)
	require.NoError(t, err)

	assert.Contains(t, text, "Requirements\n")
	assert.Contains(t, text, "- 5+ years of SEO")
	assert.Contains(t, text, "- Strong SQL skills")
}

func TestFromHTML_BlockElementsKeepLineStructure(t *testing.T) {
	page := `<html><body><main>
		<h2>About the role</h2><p>First paragraph.</p><p>Second paragraph.</p>
	</main></body></html>`

	text, err := FromHTML(page)
	require.NoError(t, err)

	assert.Contains(t, text, "About the role\n")
	assert.Contains(t, text, "First paragraph.\n")
	assert.NotContains(t, text, "role First")
}

func TestFromHTML_LineBreaks(t *testing.T) {
	page := `<html><body><main><p>Line one<br>Line two</p></main></body></html>`

	text, err := FromHTML(page)
	require.NoError(t, err)

	assert.Equal(t, "Line one\nLine two", text)
}

func TestFromHTML_EmptyInput(t *testing.T) {
	text, err := FromHTML("")
	require.NoError(t, err)

	assert.Empty(t, text)
}
