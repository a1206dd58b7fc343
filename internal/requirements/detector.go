// Package requirements decides whether each extracted phrase is a required or
// a desired qualification. Section headers establish spans; intensity language
// in the local context window overrides section membership.
package requirements

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// Levels holds the weight multipliers attached to requirement assignments.
type Levels struct {
	Required float64
	Desired  float64
	Expert   float64
}

// DefaultLevels returns the standard multipliers.
func DefaultLevels() Levels {
	return Levels{Required: 2.0, Desired: 1.0, Expert: 3.0}
}

var (
	reRequiredHeader = regexp.MustCompile(`(?i)^\s*(?:[-*•#]+\s*)?(requirements?|must[\s-]haves?|(?:minimum\s+)?qualifications?|what\s+you(?:'|’)?ll\s+need|what\s+we(?:'|’)?re\s+looking\s+for|required\s+(?:skills?|qualifications?)|you\s+will\s+need)\s*:?\s*`)
	reDesiredHeader  = regexp.MustCompile(`(?i)^\s*(?:[-*•#]+\s*)?(preferred(?:\s+qualifications?)?|nice[\s-]to[\s-]haves?|bonus(?:\s+points?)?|desired(?:\s+skills?)?|pluses|great\s+to\s+have)\s*:?\s*`)

	reExpertCue  = regexp.MustCompile(`(?i)\b(?:expert|advanced|mastery|deep\s+expertise)\b`)
	reYearsCue   = regexp.MustCompile(`(?i)\b\d+\s*\+?\s*(?:years?|yrs?)\b`)
	reDesiredCue = regexp.MustCompile(`(?i)\b(?:preferred|nice\s+to\s+have|bonus|a\s+plus|desirable|ideally|optional)\b`)
)

// Assignment is the requirement decision for one phrase.
type Assignment struct {
	Level      types.RequirementLevel
	Multiplier float64
	Evidence   string
}

type span struct {
	start  int
	end    int
	level  types.RequirementLevel
	header string
}

// Detector assigns requirement levels. Immutable after construction.
type Detector struct {
	levels Levels
}

// Option configures a Detector.
type Option func(*Detector)

// WithLevels overrides the default multipliers. Non-positive values keep
// their defaults.
func WithLevels(levels Levels) Option {
	return func(d *Detector) {
		if levels.Required > 0 {
			d.levels.Required = levels.Required
		}
		if levels.Desired > 0 {
			d.levels.Desired = levels.Desired
		}
		if levels.Expert > 0 {
			d.levels.Expert = levels.Expert
		}
	}
}

// NewDetector builds a Detector.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{levels: DefaultLevels()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Levels returns the configured multipliers.
func (d *Detector) Levels() Levels {
	return d.levels
}

// Document holds the section structure of one posting. Build once per
// analysis with Analyze, then Assign each phrase against it.
type Document struct {
	text      string
	spans     []span
	defaulted bool
	levels    Levels
}

// Analyze locates required/desired section spans in the text. A section runs
// from its header to the next recognized header or end of text. Text before
// the first header is treated as required.
func (d *Detector) Analyze(text string) *Document {
	doc := &Document{text: text, levels: d.levels}

	type headerHit struct {
		pos    int
		level  types.RequirementLevel
		header string
	}
	var headers []headerHit

	offset := 0
	for _, line := range strings.Split(text, "\n") {
		if level, header, ok := matchHeader(line); ok {
			headers = append(headers, headerHit{pos: offset, level: level, header: header})
		}
		offset += len(line) + 1
	}

	if len(headers) == 0 {
		doc.defaulted = true
		return doc
	}

	if headers[0].pos > 0 {
		doc.spans = append(doc.spans, span{
			start:  0,
			end:    headers[0].pos,
			level:  types.LevelRequired,
			header: "preamble",
		})
	}
	for i, h := range headers {
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1].pos
		}
		doc.spans = append(doc.spans, span{start: h.pos, end: end, level: h.level, header: h.header})
	}

	return doc
}

// matchHeader classifies one line as a section header. Header lines are short;
// long sentences that merely begin with a header word are ignored.
func matchHeader(line string) (types.RequirementLevel, string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 60 {
		return "", "", false
	}

	if m := reRequiredHeader.FindStringSubmatch(trimmed); m != nil && headerCovers(reRequiredHeader, trimmed) {
		return types.LevelRequired, m[1], true
	}
	if m := reDesiredHeader.FindStringSubmatch(trimmed); m != nil && headerCovers(reDesiredHeader, trimmed) {
		return types.LevelDesired, m[1], true
	}
	return "", "", false
}

// headerCovers requires the header match to consume most of the line, which
// permits "Requirements:" and "Nice to have" but rejects prose sentences.
func headerCovers(re *regexp.Regexp, line string) bool {
	loc := re.FindStringIndex(line)
	if loc == nil {
		return false
	}
	return len(line)-loc[1] <= 20
}

// DefaultToRequired reports whether the document had no recognizable sections.
func (doc *Document) DefaultToRequired() bool {
	return doc.defaulted
}

// Assign determines the requirement level for one phrase. Local intensity
// cues in the phrase's context window beat section membership; expert-level
// language carries the maximum multiplier.
func (doc *Document) Assign(phrase types.ExtractedPhrase) Assignment {
	window := phrase.Context
	if window == "" {
		window = phrase.Raw
	}

	switch {
	case reExpertCue.MatchString(window):
		return Assignment{
			Level:      types.LevelRequired,
			Multiplier: doc.levels.Expert,
			Evidence:   fmt.Sprintf("expert-level language near %q", phrase.Raw),
		}
	case reYearsCue.MatchString(window):
		return Assignment{
			Level:      types.LevelRequired,
			Multiplier: doc.levels.Required,
			Evidence:   fmt.Sprintf("year count near %q", phrase.Raw),
		}
	case reDesiredCue.MatchString(window):
		return Assignment{
			Level:      types.LevelDesired,
			Multiplier: doc.levels.Desired,
			Evidence:   fmt.Sprintf("preference cue near %q", phrase.Raw),
		}
	}

	if doc.defaulted {
		return Assignment{
			Level:      types.LevelRequired,
			Multiplier: doc.levels.Required,
			Evidence:   "no sections found, defaulting to required",
		}
	}

	if s, ok := doc.spanAt(doc.position(phrase)); ok {
		assignment := Assignment{
			Level:    s.level,
			Evidence: fmt.Sprintf("section %q", s.header),
		}
		if s.level == types.LevelRequired {
			assignment.Multiplier = doc.levels.Required
		} else {
			assignment.Multiplier = doc.levels.Desired
		}
		return assignment
	}

	return Assignment{
		Level:      types.LevelRequired,
		Multiplier: doc.levels.Required,
		Evidence:   "position outside any section, defaulting to required",
	}
}

func (doc *Document) position(phrase types.ExtractedPhrase) int {
	if phrase.Position >= 0 {
		return phrase.Position
	}
	return strings.Index(strings.ToLower(doc.text), strings.ToLower(phrase.Raw))
}

func (doc *Document) spanAt(pos int) (span, bool) {
	if pos < 0 {
		return span{}, false
	}
	for _, s := range doc.spans {
		if pos >= s.start && pos < s.end {
			return s, true
		}
	}
	return span{}, false
}
