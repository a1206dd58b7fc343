// Package ingestion prepares raw posting blobs for analysis: whitespace and
// line-ending normalization that keeps the bullet structure extraction
// relies on, HTML-to-text conversion, and content hashing for cache keys and
// provenance.
package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var (
	reSpaces     = regexp.MustCompile(`\s+`)
	reBlankRuns  = regexp.MustCompile(`\n\n\n+`)
	reBulletMark = regexp.MustCompile(`^(?:[-*•·‣◦–—]|\d+[.)])\s+`)
)

// CleanText normalizes a posting blob: CRLF to LF, trimmed line edges,
// internal runs of spaces collapsed, three or more blank lines reduced to
// one empty line. Bullet markers and their indentation survive.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = reBlankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	indent := strings.Repeat(" ", len(line)-len(trimmed))

	if marker := reBulletMark.FindString(trimmed); marker != "" {
		body := reSpaces.ReplaceAllString(strings.TrimSpace(trimmed[len(marker):]), " ")
		return indent + strings.TrimRight(marker, " \t") + " " + body
	}

	return indent + reSpaces.ReplaceAllString(trimmed, " ")
}

// Hash returns the SHA-256 hex digest of content. Analyses use it as the
// cache key and as the posting's provenance ID.
func Hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
