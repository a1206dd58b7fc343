package ingestion

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// FromFile reads a posting from disk and returns its cleaned text. Files
// ending in .html or .htm go through HTML extraction first.
func FromFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read posting: %w", err)
	}

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return FromHTML(string(raw))
	}
	return CleanText(string(raw)), nil
}

// FromReader reads a plain-text posting from r and returns its cleaned text.
func FromReader(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read posting: %w", err)
	}
	return CleanText(string(raw)), nil
}
