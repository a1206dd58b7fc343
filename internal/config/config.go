// Package config holds every tunable the analyzer exposes: matching and
// scoring knobs, dataset paths, candidate store selection, and server
// settings. Values come from jobfit.yaml via viper, with environment
// overrides for secrets and DSNs.
package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/GetFractional/Job-Hunter-sub002/internal/cache"
	"github.com/GetFractional/Job-Hunter-sub002/internal/candidates"
	"github.com/GetFractional/Job-Hunter-sub002/internal/extraction"
	"github.com/GetFractional/Job-Hunter-sub002/internal/matching"
	"github.com/GetFractional/Job-Hunter-sub002/internal/normalization"
	"github.com/GetFractional/Job-Hunter-sub002/internal/requirements"
	"github.com/GetFractional/Job-Hunter-sub002/internal/scoring"
	"github.com/GetFractional/Job-Hunter-sub002/internal/taxonomy"
)

// Config is the full application configuration.
type Config struct {
	Debug bool `mapstructure:"debug"`
	JSON  bool `mapstructure:"json"`

	// Profile is the default path to the user profile JSON file. The CLI
	// --profile flag overrides it.
	Profile string `mapstructure:"profile"`

	Matching      Matching               `mapstructure:"matching"`
	Extraction    Extraction             `mapstructure:"extraction"`
	Requirements  Requirements           `mapstructure:"requirements"`
	Normalization Normalization          `mapstructure:"normalization"`
	Scoring       Scoring                `mapstructure:"scoring"`
	Cache         Cache                  `mapstructure:"cache"`
	Taxonomy      Taxonomy               `mapstructure:"taxonomy"`
	Store         candidates.StoreConfig `mapstructure:"store"`
	Server        Server                 `mapstructure:"server"`
}

// Matching tunes fuzzy phrase matching.
type Matching struct {
	// Threshold is the minimum similarity for a fuzzy taxonomy hit.
	Threshold float64 `mapstructure:"threshold"`
}

// Extraction tunes phrase extraction.
type Extraction struct {
	MinChars      int `mapstructure:"min_chars"`
	MaxChars      int `mapstructure:"max_chars"`
	MaxWords      int `mapstructure:"max_words"`
	ContextRadius int `mapstructure:"context_radius"`
	// Tagger enables the part-of-speech noun-phrase strategy. When the
	// tagger cannot be built the extractor falls back and flags it in
	// metadata.
	Tagger bool `mapstructure:"tagger"`
}

// Requirements holds the weight multipliers attached to requirement levels.
type Requirements struct {
	RequiredMultiplier float64 `mapstructure:"required_multiplier"`
	DesiredMultiplier  float64 `mapstructure:"desired_multiplier"`
	ExpertMultiplier   float64 `mapstructure:"expert_multiplier"`
}

// Levels converts the configured multipliers for the requirement detector.
func (r Requirements) Levels() requirements.Levels {
	return requirements.Levels{
		Required: r.RequiredMultiplier,
		Desired:  r.DesiredMultiplier,
		Expert:   r.ExpertMultiplier,
	}
}

// Normalization tunes the canonicalization stage.
type Normalization struct {
	// MinConfidence drops items whose composed confidence falls below it.
	MinConfidence float64 `mapstructure:"min_confidence"`
}

// Scoring holds the fit score weights and penalties.
type Scoring struct {
	RequiredWeight   float64 `mapstructure:"required_weight"`
	DesiredWeight    float64 `mapstructure:"desired_weight"`
	CoreSkillsWeight float64 `mapstructure:"core_skills_weight"`
	ToolsWeight      float64 `mapstructure:"tools_weight"`

	MissingRequiredSkillPenalty float64 `mapstructure:"missing_required_skill_penalty"`
	MissingRequiredToolPenalty  float64 `mapstructure:"missing_required_tool_penalty"`
	MissingExpertToolPenalty    float64 `mapstructure:"missing_expert_tool_penalty"`
	MissingDesiredToolPenalty   float64 `mapstructure:"missing_desired_tool_penalty"`
	PenaltyFloor                float64 `mapstructure:"penalty_floor"`
	ExpertMultiplier            float64 `mapstructure:"expert_multiplier"`
}

// Weights converts the configured values for the score calculator.
func (s Scoring) Weights() scoring.Weights {
	return scoring.Weights{
		Required:             s.RequiredWeight,
		Desired:              s.DesiredWeight,
		CoreSkills:           s.CoreSkillsWeight,
		Tools:                s.ToolsWeight,
		MissingRequiredSkill: s.MissingRequiredSkillPenalty,
		MissingRequiredTool:  s.MissingRequiredToolPenalty,
		MissingExpertTool:    s.MissingExpertToolPenalty,
		MissingDesiredTool:   s.MissingDesiredToolPenalty,
		PenaltyFloor:         s.PenaltyFloor,
		ExpertMultiplier:     s.ExpertMultiplier,
	}
}

// Cache tunes the analysis result cache.
type Cache struct {
	Capacity int `mapstructure:"capacity"`
}

// Taxonomy points at external vocabulary files. Empty paths use the
// embedded defaults.
type Taxonomy struct {
	DatasetPath  string `mapstructure:"dataset"`
	ToolsPath    string `mapstructure:"tools"`
	PatternsPath string `mapstructure:"patterns"`
}

// Options converts the configured paths for the taxonomy loader.
func (t Taxonomy) Options() taxonomy.Options {
	return taxonomy.Options{
		DatasetPath:  t.DatasetPath,
		ToolsPath:    t.ToolsPath,
		PatternsPath: t.PatternsPath,
	}
}

// Server holds the review API settings.
type Server struct {
	Addr string `mapstructure:"addr"`
	// JWTSecret verifies bearer tokens on mutating routes. Empty disables
	// authentication, which is only sensible for local use.
	JWTSecret  string        `mapstructure:"jwt_secret"`
	RateLimit  int           `mapstructure:"rate_limit"`
	RateWindow time.Duration `mapstructure:"rate_window"`
}

// Default returns the configuration with every knob at its named default.
func Default() *Config {
	w := scoring.DefaultWeights()
	levels := requirements.DefaultLevels()

	return &Config{
		Matching: Matching{Threshold: matching.DefaultThreshold},
		Extraction: Extraction{
			MinChars:      extraction.DefaultMinChars,
			MaxChars:      extraction.DefaultMaxChars,
			MaxWords:      extraction.DefaultMaxWords,
			ContextRadius: extraction.DefaultContextRadius,
			Tagger:        true,
		},
		Requirements: Requirements{
			RequiredMultiplier: levels.Required,
			DesiredMultiplier:  levels.Desired,
			ExpertMultiplier:   levels.Expert,
		},
		Normalization: Normalization{MinConfidence: normalization.DefaultMinConfidence},
		Scoring: Scoring{
			RequiredWeight:              w.Required,
			DesiredWeight:               w.Desired,
			CoreSkillsWeight:            w.CoreSkills,
			ToolsWeight:                 w.Tools,
			MissingRequiredSkillPenalty: w.MissingRequiredSkill,
			MissingRequiredToolPenalty:  w.MissingRequiredTool,
			MissingExpertToolPenalty:    w.MissingExpertTool,
			MissingDesiredToolPenalty:   w.MissingDesiredTool,
			PenaltyFloor:                w.PenaltyFloor,
			ExpertMultiplier:            w.ExpertMultiplier,
		},
		Cache: Cache{Capacity: cache.DefaultCapacity},
		Store: candidates.StoreConfig{Backend: candidates.BackendMemory},
		Server: Server{
			Addr:       ":8080",
			RateLimit:  60,
			RateWindow: time.Minute,
		},
	}
}

// Load decodes the viper state over the defaults and validates the result.
// Environment overrides are bound before decoding.
func Load(v *viper.Viper) (*Config, error) {
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result: cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"store.database_url": "DATABASE_URL",
		"store.backend":      "JOBFIT_STORE_BACKEND",
		"store.path":         "JOBFIT_STORE_PATH",
		"server.jwt_secret":  "JWT_SECRET",
		"server.addr":        "JOBFIT_ADDR",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	return nil
}

// Validate checks value ranges. Zero values that Default never produces are
// rejected rather than silently patched.
func (c *Config) Validate() error {
	if c.Matching.Threshold < 0 || c.Matching.Threshold > 1 {
		return fmt.Errorf("config error: matching.threshold must be in [0,1], got %v", c.Matching.Threshold)
	}
	if c.Normalization.MinConfidence < 0 || c.Normalization.MinConfidence > 1 {
		return fmt.Errorf("config error: normalization.min_confidence must be in [0,1], got %v", c.Normalization.MinConfidence)
	}
	if c.Extraction.MinChars <= 0 || c.Extraction.MaxChars < c.Extraction.MinChars {
		return fmt.Errorf("config error: extraction bounds are inverted")
	}
	if c.Extraction.MaxWords <= 0 {
		return fmt.Errorf("config error: extraction.max_words must be positive")
	}
	if c.Extraction.ContextRadius < 0 {
		return fmt.Errorf("config error: extraction.context_radius must be non-negative")
	}
	if c.Requirements.RequiredMultiplier <= 0 || c.Requirements.DesiredMultiplier <= 0 || c.Requirements.ExpertMultiplier <= 0 {
		return fmt.Errorf("config error: requirement multipliers must be positive")
	}
	if c.Scoring.CoreSkillsWeight < 0 || c.Scoring.ToolsWeight < 0 {
		return fmt.Errorf("config error: bucket weights must be non-negative")
	}
	if c.Scoring.PenaltyFloor > 0 {
		return fmt.Errorf("config error: scoring.penalty_floor must not be positive, got %v", c.Scoring.PenaltyFloor)
	}
	if c.Cache.Capacity <= 0 {
		return fmt.Errorf("config error: cache.capacity must be positive, got %d", c.Cache.Capacity)
	}
	switch c.Store.Backend {
	case "", candidates.BackendMemory, candidates.BackendSQLite, candidates.BackendPostgres:
	default:
		return fmt.Errorf("config error: unknown store.backend %q", c.Store.Backend)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("config error: server.rate_limit must be non-negative")
	}
	return nil
}
