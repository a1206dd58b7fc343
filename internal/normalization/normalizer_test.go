package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GetFractional/Job-Hunter-sub002/internal/taxonomy"
	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

func testNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	store, err := taxonomy.Default()
	require.NoError(t, err)
	return New(store)
}

func TestResolveOrder(t *testing.T) {
	n := testNormalizer(t)

	tests := []struct {
		name      string
		term      string
		itemType  types.ItemType
		canonical string
		method    string
	}{
		{
			name:      "canonical rule first",
			term:      "GTM",
			itemType:  types.TypeCoreSkill,
			canonical: "go_to_market_strategy",
			method:    "canonical rule",
		},
		{
			name:      "synonym group second",
			term:      "pipeline building",
			itemType:  types.TypeCoreSkill,
			canonical: "demand_generation",
			method:    "synonym group",
		},
		{
			name:      "exact match third",
			term:      "Content Marketing",
			itemType:  types.TypeCoreSkill,
			canonical: "content_marketing",
			method:    "exact match",
		},
		{
			name:      "fuzzy match fourth",
			term:      "contant marketing",
			itemType:  types.TypeCoreSkill,
			canonical: "content_marketing",
			method:    "fuzzy match",
		},
		{
			name:      "mechanical fallback last",
			term:      "Quantum Outreach Ops",
			itemType:  types.TypeCoreSkill,
			canonical: "quantum_outreach_ops",
			method:    "mechanical fallback",
		},
		{
			name:      "tool terms use the tool index",
			term:      "GA4",
			itemType:  types.TypeTool,
			canonical: "google_analytics",
			method:    "exact match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical, quality, method := n.Resolve(tt.term, tt.itemType)
			assert.Equal(t, tt.canonical, canonical)
			assert.Equal(t, tt.method, method)
			assert.Greater(t, quality, 0.0)
			assert.LessOrEqual(t, quality, 1.0)
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	n := testNormalizer(t)

	for _, canonical := range []string{"a_b_testing", "go_to_market_strategy", "sql", "seo"} {
		resolved, quality, _ := n.Resolve(canonical, types.TypeCoreSkill)
		assert.Equal(t, canonical, resolved)
		assert.Equal(t, 1.0, quality)

		again, _, _ := n.Resolve(resolved, types.TypeCoreSkill)
		assert.Equal(t, resolved, again)
	}
}

func skillItem(raw string, level types.RequirementLevel, confidence float64) types.ClassifiedItem {
	return types.ClassifiedItem{
		Raw:        raw,
		Type:       types.TypeCoreSkill,
		Confidence: confidence,
		Evidence:   "test",
		Rule:       types.RuleTaxonomyExact,
		Level:      level,
		Multiplier: 2.0,
	}
}

func TestNormalizeBuckets(t *testing.T) {
	n := testNormalizer(t)

	items := []types.ClassifiedItem{
		skillItem("SQL", types.LevelRequired, 0.95),
		skillItem("Content Marketing", types.LevelDesired, 0.95),
		{
			Raw: "Salesforce", Type: types.TypeTool, Confidence: 0.95,
			Level: types.LevelRequired, Multiplier: 2.0,
		},
		{
			Raw: "Tableau", Type: types.TypeTool, Confidence: 0.9,
			Level: types.LevelDesired, Multiplier: 1.0,
		},
		{
			Raw: "community-led onboarding", Type: types.TypeCandidate, Confidence: 0.3,
		},
		{
			Raw: "teamwork", Type: types.TypeRejected, Confidence: 0.9,
		},
	}

	res := n.Normalize(items)

	require.Len(t, res.RequiredCoreSkills, 1)
	assert.Equal(t, "sql", res.RequiredCoreSkills[0].Canonical)

	require.Len(t, res.DesiredCoreSkills, 1)
	assert.Equal(t, "content_marketing", res.DesiredCoreSkills[0].Canonical)

	require.Len(t, res.RequiredTools, 1)
	assert.Equal(t, "salesforce", res.RequiredTools[0].Canonical)

	require.Len(t, res.DesiredTools, 1)
	assert.Equal(t, "tableau", res.DesiredTools[0].Canonical)

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "community-led onboarding", res.Candidates[0].Raw)

	assert.Zero(t, res.Dropped)
}

func TestNormalizeDedupWithinBucket(t *testing.T) {
	n := testNormalizer(t)

	items := []types.ClassifiedItem{
		skillItem("SEO", types.LevelRequired, 0.95),
		skillItem("search engine optimization", types.LevelRequired, 0.80),
		skillItem("seo", types.LevelRequired, 0.60),
	}

	res := n.Normalize(items)

	require.Len(t, res.RequiredCoreSkills, 1)
	item := res.RequiredCoreSkills[0]
	assert.Equal(t, "seo", item.Canonical)
	assert.Equal(t, 0.95, item.Confidence)
	assert.Equal(t, "SEO", item.Raw) // highest-confidence occurrence wins
}

func TestNormalizeRequiredSuppressesDesired(t *testing.T) {
	n := testNormalizer(t)

	items := []types.ClassifiedItem{
		skillItem("SQL", types.LevelRequired, 0.95),
		skillItem("sql", types.LevelDesired, 0.95),
		skillItem("Tableau dashboards", types.LevelDesired, 0.9),
	}

	res := n.Normalize(items)

	require.Len(t, res.RequiredCoreSkills, 1)
	assert.Equal(t, "sql", res.RequiredCoreSkills[0].Canonical)

	for _, item := range res.DesiredCoreSkills {
		assert.NotEqual(t, "sql", item.Canonical, "required key leaked into desired bucket")
	}
}

func TestNormalizeConfidenceFloor(t *testing.T) {
	store, err := taxonomy.Default()
	require.NoError(t, err)
	n := New(store, WithMinConfidence(0.5))

	items := []types.ClassifiedItem{
		skillItem("SQL", types.LevelRequired, 0.95),
		skillItem("Quantum Outreach", types.LevelRequired, 0.30), // 0.30*0.9 < 0.5
	}

	res := n.Normalize(items)

	require.Len(t, res.RequiredCoreSkills, 1)
	assert.Equal(t, "sql", res.RequiredCoreSkills[0].Canonical)
	assert.Equal(t, 1, res.Dropped)
}

func TestNormalizeComposesConfidence(t *testing.T) {
	n := testNormalizer(t)

	items := []types.ClassifiedItem{
		skillItem("contant marketing", types.LevelRequired, 0.90),
	}

	res := n.Normalize(items)

	require.Len(t, res.RequiredCoreSkills, 1)
	item := res.RequiredCoreSkills[0]
	assert.Equal(t, "content_marketing", item.Canonical)
	assert.Less(t, item.Confidence, 0.90)
	assert.Greater(t, item.Confidence, 0.50)
	assert.Contains(t, item.Evidence, "fuzzy match")
}
