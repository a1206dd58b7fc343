package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

func TestPrintExtraction(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	ext := &types.ExtractionResult{
		RequiredCoreSkills: []types.NormalizedItem{
			{Canonical: "seo", Confidence: 0.95},
			{Canonical: "sql", Confidence: 0.95},
		},
		DesiredTools: []types.NormalizedItem{
			{Canonical: "tableau", Confidence: 0.90},
		},
		Candidates: []types.Candidate{{Raw: "Workato", Canonical: "workato"}},
		Metadata: types.AnalysisMetadata{
			Hash:        "deadbeefdeadbeefdeadbeef",
			PhraseCount: 4,
		},
	}

	p.PrintExtraction(ext)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED REQUIREMENTS")
	assert.Contains(t, output, "deadbeefdead")
	assert.Contains(t, output, "Required core skills:")
	assert.Contains(t, output, "seo")
	assert.Contains(t, output, "tableau")
	assert.Contains(t, output, "Unresolved candidates: 1")
	assert.NotContains(t, output, "Desired core skills:", "empty buckets are omitted")
}

func TestPrintExtraction_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtraction(nil)

	assert.Empty(t, buf.String())
}

func TestPrintExtraction_CachedAndDefaulted(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtraction(&types.ExtractionResult{
		Metadata: types.AnalysisMetadata{
			Hash:              "abc123",
			CacheHit:          true,
			DefaultToRequired: true,
			Warnings:          []string{"candidate persistence unavailable"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "(cached)")
	assert.Contains(t, output, "treated all as required")
	assert.Contains(t, output, "candidate persistence unavailable")
}

func TestPrintExtraction_TruncatesLongBuckets(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	items := make([]types.NormalizedItem, 8)
	for i := range items {
		items[i] = types.NormalizedItem{Canonical: "skill", Confidence: 0.9}
	}
	p.PrintExtraction(&types.ExtractionResult{RequiredCoreSkills: items})

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintFitScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	fit := &types.FitScoreResult{
		OverallScore: 0.85,
		RawScore:     0.90,
		TotalPenalty: -0.05,
		CoreSkills: types.BucketScore{
			Score:           1.0,
			RequiredTotal:   3,
			RequiredMatched: 3,
		},
		Tools: types.BucketScore{
			Score:           0.67,
			RequiredTotal:   1,
			RequiredMatched: 1,
			DesiredTotal:    1,
			MissingDesired:  []string{"tableau"},
		},
		Penalties: []types.Penalty{
			{Amount: -0.05, Canonical: "tableau", Type: types.TypeTool},
		},
		Recommendations: []string{"Strong fit. The profile covers most of what the posting asks for."},
	}

	p.PrintFitScore(fit)
	output := buf.String()

	assert.Contains(t, output, "FIT SCORE")
	assert.Contains(t, output, "0.85")
	assert.Contains(t, output, "Core skills: 1.00")
	assert.Contains(t, output, "required 3/3")
	assert.Contains(t, output, "-0.05 tableau")
	assert.Contains(t, output, "Strong fit")
}

func TestPrintFitScore_Message(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFitScore(&types.FitScoreResult{
		Message: "profile lists no core skills or tools, so there is nothing to score against",
	})

	assert.Contains(t, buf.String(), "profile lists no core skills")
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	res := &types.AnalysisResult{
		Extraction: types.ExtractionResult{
			RequiredCoreSkills: []types.NormalizedItem{{Canonical: "sql", Confidence: 0.95}},
			Metadata:           types.AnalysisMetadata{Hash: "abc", PhraseCount: 1},
		},
		Fit: &types.FitScoreResult{OverallScore: 0.4},
	}

	p.PrintAnalysis(res)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED REQUIREMENTS")
	assert.Contains(t, output, "FIT SCORE")
}

func TestPrintAnalysis_NoFit(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(&types.AnalysisResult{
		Extraction: types.ExtractionResult{Metadata: types.AnalysisMetadata{Hash: "abc"}},
	})

	assert.NotContains(t, buf.String(), "FIT SCORE")
}

func TestPrintCandidates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	list := []types.Candidate{
		{
			Raw:          "Workato",
			Canonical:    "workato",
			InferredType: types.TypeTool,
			Confidence:   0.3,
			Frequency:    2,
		},
		{
			Raw:          "community-led onboarding",
			Canonical:    "community_led_onboarding",
			InferredType: types.TypeCoreSkill,
			Confidence:   0.3,
			Frequency:    1,
			Feedback:     &types.CandidateFeedback{Action: types.FeedbackReject},
		},
	}

	p.PrintCandidates(list)
	output := buf.String()

	assert.Contains(t, output, "REVIEW CANDIDATES")
	assert.Contains(t, output, "2 candidates")
	assert.Contains(t, output, "Workato")
	assert.Contains(t, output, "seen in 2 posting(s)")
	assert.Contains(t, output, "reviewed: reject")
}

func TestPrintCandidates_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCandidates(nil)

	assert.Contains(t, buf.String(), "NO CANDIDATES PENDING REVIEW")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCandidates([]types.Candidate{{
		Raw:          "a very long phrase that should be truncated to keep the box readable",
		InferredType: types.TypeCoreSkill,
	}})
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
	assert.Contains(t, output, "...")
}
