// Package profile loads the user's skill and tool inventory from a JSON file.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// LoadError represents an error during file I/O or JSON parsing.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("profile load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load reads a user profile from a JSON file and normalizes its entries.
func Load(path string) (*types.UserProfile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return Parse(content)
}

// Parse decodes a user profile from JSON bytes and normalizes its entries.
func Parse(content []byte) (*types.UserProfile, error) {
	var p types.UserProfile
	if err := json.Unmarshal(content, &p); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	Normalize(&p)
	return &p, nil
}

// Normalize trims entries, drops empties, and deduplicates both inventories
// case-insensitively. The first spelling of a duplicate wins.
func Normalize(p *types.UserProfile) {
	p.CoreSkills = dedupe(p.CoreSkills)
	p.Tools = dedupe(p.Tools)
}

func dedupe(entries []string) []string {
	cleaned := make([]string, 0, len(entries))
	seen := make(map[string]struct{})

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key := strings.ToLower(entry)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, entry)
	}

	return cleaned
}
