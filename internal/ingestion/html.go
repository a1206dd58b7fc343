package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// noiseSelector matches chrome that never carries posting content.
const noiseSelector = "nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

// contentSelectors are tried in order before falling back to body. Job-board
// containers come first so a matching page skips surrounding site chrome.
var contentSelectors = []string{
	".job-description",
	"#job-description",
	".job-content",
	"#job-content",
	".posting-content",
	".job-details",
	"main",
	"article",
	".content",
	"#content",
}

// blockTags force line breaks around their content so section headers and
// list items land on their own lines.
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"ul": true, "ol": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// FromHTML extracts posting text from an HTML page. Noise elements are
// stripped, the most specific content container wins, and list items become
// "- " bullet lines so downstream section and requirement detection sees the
// same shape as a plain-text posting. The result is already cleaned.
func FromHTML(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	var content *goquery.Selection
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	var b strings.Builder
	for _, node := range content.Nodes {
		writeNodeText(&b, node)
	}
	return CleanText(b.String()), nil
}

func writeNodeText(b *strings.Builder, node *html.Node) {
	switch node.Type {
	case html.TextNode:
		b.WriteString(node.Data)
		return
	case html.ElementNode:
		switch {
		case node.Data == "br":
			b.WriteString("\n")
			return
		case node.Data == "li":
			b.WriteString("\n- ")
		case blockTags[node.Data]:
			b.WriteString("\n")
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeNodeText(b, child)
	}

	if node.Type == html.ElementNode && blockTags[node.Data] {
		b.WriteString("\n")
	}
}
