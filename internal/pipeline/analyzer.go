// Package pipeline wires the analysis stages into one Analyzer: clean the
// posting text, extract phrases, split compounds, assign requirement levels,
// classify, normalize, persist review candidates, and score against the
// user profile. Extraction results are cached by content hash; scoring runs
// fresh on every call.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GetFractional/Job-Hunter-sub002/internal/cache"
	"github.com/GetFractional/Job-Hunter-sub002/internal/candidates"
	"github.com/GetFractional/Job-Hunter-sub002/internal/classification"
	"github.com/GetFractional/Job-Hunter-sub002/internal/config"
	"github.com/GetFractional/Job-Hunter-sub002/internal/extraction"
	"github.com/GetFractional/Job-Hunter-sub002/internal/ingestion"
	"github.com/GetFractional/Job-Hunter-sub002/internal/logger"
	"github.com/GetFractional/Job-Hunter-sub002/internal/normalization"
	"github.com/GetFractional/Job-Hunter-sub002/internal/requirements"
	"github.com/GetFractional/Job-Hunter-sub002/internal/scoring"
	"github.com/GetFractional/Job-Hunter-sub002/internal/taxonomy"
	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// stageSet is one immutable set of vocabulary-derived stages. A new set is
// built whenever dictionary extensions change the effective vocabulary.
type stageSet struct {
	extractor  *extraction.Extractor
	splitter   *extraction.Splitter
	classifier *classification.Classifier
	normalizer *normalization.Normalizer
	calculator *scoring.Calculator
}

// Analyzer runs the full posting analysis. Safe for concurrent use.
type Analyzer struct {
	cfg      *config.Config
	base     *taxonomy.Store
	detector *requirements.Detector
	cache    *cache.ResultCache
	manager  *candidates.Manager
	log      *zap.Logger

	mu      sync.Mutex
	stages  *stageSet
	dictKey string
}

// New builds an Analyzer from configuration. The candidate manager may be
// nil, which disables candidate persistence and dictionary extensions; when
// present, the caller owns its backing store's lifecycle.
func New(cfg *config.Config, manager *candidates.Manager, log *zap.Logger) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	store, err := taxonomy.Load(cfg.Taxonomy.Options())
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}

	a := &Analyzer{
		cfg:      cfg,
		base:     store,
		detector: requirements.NewDetector(requirements.WithLevels(cfg.Requirements.Levels())),
		cache:    cache.New(cfg.Cache.Capacity),
		manager:  manager,
		log:      log,
	}
	a.stages = a.buildStages(store)
	return a, nil
}

func (a *Analyzer) buildStages(store *taxonomy.Store) *stageSet {
	extractorOpts := []extraction.Option{
		extraction.WithBounds(a.cfg.Extraction.MinChars, a.cfg.Extraction.MaxChars, a.cfg.Extraction.MaxWords),
		extraction.WithContextRadius(a.cfg.Extraction.ContextRadius),
	}
	if a.cfg.Extraction.Tagger {
		extractorOpts = append(extractorOpts, extraction.WithTagger(extraction.ProseTagger{}))
	}

	normalizer := normalization.New(store,
		normalization.WithThreshold(a.cfg.Matching.Threshold),
		normalization.WithMinConfidence(a.cfg.Normalization.MinConfidence),
	)

	return &stageSet{
		extractor:  extraction.New(store, extractorOpts...),
		splitter:   extraction.NewSplitter(store),
		classifier: classification.New(store, classification.WithThreshold(a.cfg.Matching.Threshold)),
		normalizer: normalizer,
		calculator: scoring.New(normalizer, scoring.WithWeights(a.cfg.Scoring.Weights())),
	}
}

// Analyze runs the pipeline over one posting. A nil profile skips scoring
// and leaves Fit unset.
func (a *Analyzer) Analyze(ctx context.Context, text string, profile *types.UserProfile) (*types.AnalysisResult, error) {
	cleaned := ingestion.CleanText(text)
	if cleaned == "" {
		return nil, &InputError{Message: "posting text is empty"}
	}
	hash := ingestion.Hash(cleaned)
	log := logger.WithAnalysis(a.log, hash, "")

	stages, dictWarning := a.currentStages(ctx)

	result, hit := a.cache.Get(hash)
	if hit {
		result.Metadata.CacheHit = true
		log.Debug("extraction served from cache")
	} else {
		result = a.extract(ctx, stages, cleaned, hash, dictWarning, log)
		a.cache.Put(hash, result)
	}

	analysis := &types.AnalysisResult{Extraction: result}
	fields := []zap.Field{
		zap.Int("phrases", result.Metadata.PhraseCount),
		zap.Bool("cache_hit", result.Metadata.CacheHit),
	}
	if profile != nil {
		analysis.Fit = stages.calculator.Score(&result, profile)
		fields = append(fields, zap.Float64("overall_score", analysis.Fit.OverallScore))
	}
	log.Info("analysis complete", fields...)

	return analysis, nil
}

func (a *Analyzer) extract(ctx context.Context, stages *stageSet, cleaned, hash, dictWarning string, log *zap.Logger) types.ExtractionResult {
	phrases, taggerFallback := stages.extractor.Extract(cleaned)
	doc := a.detector.Analyze(cleaned)

	items := make([]types.ClassifiedItem, 0, len(phrases))
	for _, phrase := range phrases {
		assignment := doc.Assign(phrase)
		for _, atom := range stages.splitter.Split(phrase.Raw) {
			item := stages.classifier.Classify(atom)
			item.Level = assignment.Level
			item.Multiplier = assignment.Multiplier
			item.Evidence = joinEvidence(item.Evidence, assignment.Evidence)
			items = append(items, item)
		}
	}

	normalized := stages.normalizer.Normalize(items)

	var warnings []string
	if dictWarning != "" {
		warnings = append(warnings, dictWarning)
	}

	var recorded []types.Candidate
	if a.manager != nil {
		var err error
		recorded, err = a.manager.Record(ctx, normalized.Candidates, hash)
		if err != nil {
			log.Warn("failed to persist candidates", zap.Error(err))
			warnings = append(warnings, "candidate persistence unavailable")
		}
	}

	log.Debug("extraction finished",
		zap.Int("phrases", len(phrases)),
		zap.Int("items", len(items)),
		zap.Int("candidates", len(recorded)),
		zap.Int("dropped", normalized.Dropped),
		zap.Bool("tagger_fallback", taggerFallback),
		zap.Bool("default_to_required", doc.DefaultToRequired()),
	)

	return types.ExtractionResult{
		RequiredCoreSkills: normalized.RequiredCoreSkills,
		DesiredCoreSkills:  normalized.DesiredCoreSkills,
		RequiredTools:      normalized.RequiredTools,
		DesiredTools:       normalized.DesiredTools,
		Candidates:         recorded,
		Metadata: types.AnalysisMetadata{
			Hash:              hash,
			Timestamp:         time.Now().UTC().Format(time.RFC3339),
			DefaultToRequired: doc.DefaultToRequired(),
			TaggerFallback:    taggerFallback,
			PhraseCount:       len(phrases),
			Warnings:          warnings,
		},
	}
}

// currentStages returns stages built over the vocabulary extended with the
// accumulated dictionary, rebuilding only when the dictionary changed since
// the last analysis. A rebuild drops the result cache because its entries
// were produced by the old vocabulary. The second return value is a warning
// for analysis metadata, empty when the dictionary loaded cleanly.
func (a *Analyzer) currentStages(ctx context.Context) (*stageSet, string) {
	if a.manager == nil {
		return a.stages, ""
	}

	entries, err := a.manager.Dictionary(ctx)
	if err != nil {
		a.log.Warn("dictionary extensions unavailable", zap.Error(err))
		a.mu.Lock()
		defer a.mu.Unlock()
		return a.stages, "dictionary extensions unavailable"
	}

	key := dictionaryKey(entries)
	a.mu.Lock()
	defer a.mu.Unlock()
	if key == a.dictKey {
		return a.stages, ""
	}

	a.log.Info("vocabulary changed, rebuilding analysis stages",
		zap.Int("dictionary_entries", len(entries)))
	a.stages = a.buildStages(a.base.WithExtensions(entries))
	a.dictKey = key
	a.cache.Clear()
	return a.stages, ""
}

func dictionaryKey(entries []types.DictionaryEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(string(entry.Kind))
		b.WriteByte(':')
		b.WriteString(entry.Term)
		b.WriteByte('\n')
	}
	return b.String()
}

func joinEvidence(rule, requirement string) string {
	if rule == "" {
		return requirement
	}
	if requirement == "" {
		return rule
	}
	return rule + "; " + requirement
}
