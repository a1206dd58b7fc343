// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs the full analysis: extraction buckets first, then the
// fit score when one was computed.
func (p *Printer) PrintAnalysis(res *types.AnalysisResult) {
	if res == nil {
		return
	}
	p.PrintExtraction(&res.Extraction)
	if res.Fit != nil {
		p.PrintFitScore(res.Fit)
	}
}

// PrintExtraction outputs a human-readable summary of the four requirement
// buckets plus review candidates and analysis warnings.
func (p *Printer) PrintExtraction(ext *types.ExtractionResult) {
	if ext == nil {
		return
	}

	var sb strings.Builder

	hash := ext.Metadata.Hash
	if len(hash) > 12 {
		hash = hash[:12]
	}
	sb.WriteString(fmt.Sprintf("Posting:  %s", hash))
	if ext.Metadata.CacheHit {
		sb.WriteString("  (cached)")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Phrases:  %d\n", ext.Metadata.PhraseCount))
	sb.WriteString("\n")

	writeBucket(&sb, "Required core skills", ext.RequiredCoreSkills)
	writeBucket(&sb, "Desired core skills", ext.DesiredCoreSkills)
	writeBucket(&sb, "Required tools", ext.RequiredTools)
	writeBucket(&sb, "Desired tools", ext.DesiredTools)

	if len(ext.Candidates) > 0 {
		sb.WriteString(fmt.Sprintf("Unresolved candidates: %d (run 'candidates list' to review)\n", len(ext.Candidates)))
	}
	if ext.Metadata.DefaultToRequired {
		sb.WriteString("Note: no sections found, treated all as required\n")
	}
	for _, warning := range ext.Metadata.Warnings {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", warning))
	}

	p.printBox("EXTRACTED REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// writeBucket renders one bucket section, capped at maxItemsToShow entries.
func writeBucket(sb *strings.Builder, label string, items []types.NormalizedItem) {
	if len(items) == 0 {
		return
	}

	sb.WriteString(fmt.Sprintf("%s:\n", label))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s (%.2f)\n", items[i].Canonical, items[i].Confidence))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintFitScore outputs the score breakdown with penalties and
// recommendations.
func (p *Printer) PrintFitScore(fit *types.FitScoreResult) {
	if fit == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Overall:  %.2f\n", fit.OverallScore))
	sb.WriteString(fmt.Sprintf("Raw:      %.2f   Penalty: %.2f\n", fit.RawScore, fit.TotalPenalty))
	sb.WriteString("\n")

	writeBucketScore(&sb, "Core skills", fit.CoreSkills)
	writeBucketScore(&sb, "Tools", fit.Tools)

	if len(fit.Penalties) > 0 {
		sb.WriteString("\nPenalties:\n")
		count := min(len(fit.Penalties), maxItemsToShow)
		for i := 0; i < count; i++ {
			pen := fit.Penalties[i]
			sb.WriteString(fmt.Sprintf("  ⚠ %.2f %s\n", pen.Amount, pen.Canonical))
		}
		if len(fit.Penalties) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(fit.Penalties)-maxItemsToShow))
		}
	}

	if len(fit.Recommendations) > 0 {
		sb.WriteString("\n")
		for _, rec := range fit.Recommendations {
			sb.WriteString(fmt.Sprintf("» %s\n", rec))
		}
	}

	if fit.Message != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", fit.Message))
	}

	p.printBox("FIT SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

func writeBucketScore(sb *strings.Builder, label string, bucket types.BucketScore) {
	sb.WriteString(fmt.Sprintf("%s: %.2f\n", label, bucket.Score))
	sb.WriteString(fmt.Sprintf("  required %d/%d, desired %d/%d\n",
		bucket.RequiredMatched, bucket.RequiredTotal,
		bucket.DesiredMatched, bucket.DesiredTotal))
	if len(bucket.MissingRequired) > 0 {
		sb.WriteString(fmt.Sprintf("  missing: %s\n", strings.Join(bucket.MissingRequired, ", ")))
	}
}

// PrintCandidates outputs the review queue. Unlike the bucket sections this
// prints every entry: it backs the dedicated review command, where a capped
// list would hide work.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCandidates(list []types.Candidate) {
	if len(list) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO CANDIDATES PENDING REVIEW")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d candidates:\n\n", len(list)))

	for i, c := range list {
		raw := c.Raw
		if len(raw) > 40 {
			raw = raw[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", raw))
		sb.WriteString(fmt.Sprintf("  %s, seen in %d posting(s), confidence %.2f\n",
			c.InferredType, c.Frequency, c.Confidence))
		if c.Feedback != nil {
			sb.WriteString(fmt.Sprintf("  reviewed: %s\n", c.Feedback.Action))
		}
		if i < len(list)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("REVIEW CANDIDATES", sb.String())
}
