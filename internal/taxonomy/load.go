package taxonomy

import (
	_ "embed"
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/GetFractional/Job-Hunter-sub002/internal/matching"
	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// Default vocabulary shipped with the binary. External files given through
// Options override these wholesale, not additively.
var (
	//go:embed data/taxonomy.json
	defaultDatasetJSON []byte

	//go:embed data/taxonomy_schema.json
	datasetSchemaJSON []byte

	//go:embed data/tools.yaml
	defaultToolsYAML []byte

	//go:embed data/patterns.yaml
	defaultPatternsYAML []byte
)

// Dataset is the on-disk shape of the skill taxonomy document.
type Dataset struct {
	Version        string                `json:"version" validate:"required,min=1"`
	Entries        []types.TaxonomyEntry `json:"entries" validate:"required,min=1,dive"`
	CanonicalRules []types.CanonicalRule `json:"canonical_rules,omitempty" validate:"omitempty,dive"`
	SynonymGroups  []types.SynonymGroup  `json:"synonym_groups,omitempty" validate:"omitempty,dive"`
}

// ToolEntry is one tool dictionary record.
type ToolEntry struct {
	Name      string   `yaml:"name" validate:"required,min=1"`
	Canonical string   `yaml:"canonical"`
	Aliases   []string `yaml:"aliases"`
}

func (t ToolEntry) taxonomyEntry() types.TaxonomyEntry {
	canonical := t.Canonical
	if canonical == "" {
		canonical = matching.Canonicalize(t.Name)
	}
	return types.TaxonomyEntry{
		Name:      t.Name,
		Canonical: canonical,
		Category:  ToolCategory,
		Aliases:   t.Aliases,
	}
}

// ToolsFile is the on-disk shape of the tool dictionary document.
type ToolsFile struct {
	Version string      `yaml:"version"`
	Tools   []ToolEntry `yaml:"tools" validate:"dive"`
	Deny    []string    `yaml:"deny"`
}

// PatternsFile is the on-disk shape of the classification patterns document.
type PatternsFile struct {
	Version      string            `yaml:"version"`
	SoftSkills   []string          `yaml:"soft_skills"`
	Noise        []string          `yaml:"noise"`
	ForcedSkills map[string]string `yaml:"forced_skills"`
	SingleTokens []string          `yaml:"single_tokens"`
}

// Options selects taxonomy sources. Empty paths use the embedded defaults.
type Options struct {
	DatasetPath  string
	ToolsPath    string
	PatternsPath string
}

// Default builds a Store from the embedded vocabulary.
func Default() (*Store, error) {
	return Load(Options{})
}

// Load builds a Store from the configured sources.
func Load(opts Options) (*Store, error) {
	dataset, err := loadDataset(opts.DatasetPath)
	if err != nil {
		return nil, err
	}

	tools, err := loadTools(opts.ToolsPath)
	if err != nil {
		return nil, err
	}

	patterns, err := loadPatterns(opts.PatternsPath)
	if err != nil {
		return nil, err
	}

	return NewStore(dataset, tools, patterns)
}

func loadDataset(path string) (Dataset, error) {
	data := defaultDatasetJSON
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return Dataset{}, &LoadError{Path: path, Message: "failed to read taxonomy dataset", Cause: err}
		}
	}
	return parseDataset(data)
}

func parseDataset(data []byte) (Dataset, error) {
	if err := validateDatasetSchema(datasetSchemaJSON, data); err != nil {
		return Dataset{}, err
	}

	var dataset Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return Dataset{}, &LoadError{Message: "failed to parse taxonomy dataset", Cause: err}
	}

	if err := validateStruct("taxonomy dataset", dataset); err != nil {
		return Dataset{}, err
	}
	return dataset, nil
}

func loadTools(path string) (ToolsFile, error) {
	data := defaultToolsYAML
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return ToolsFile{}, &LoadError{Path: path, Message: "failed to read tool dictionary", Cause: err}
		}
	}
	return parseTools(data)
}

func parseTools(data []byte) (ToolsFile, error) {
	var tools ToolsFile
	if err := yaml.Unmarshal(data, &tools); err != nil {
		return ToolsFile{}, &LoadError{Message: "failed to parse tool dictionary", Cause: err}
	}

	if err := validateStruct("tool dictionary", tools); err != nil {
		return ToolsFile{}, err
	}
	return tools, nil
}

func loadPatterns(path string) (PatternsFile, error) {
	data := defaultPatternsYAML
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return PatternsFile{}, &LoadError{Path: path, Message: "failed to read patterns document", Cause: err}
		}
	}
	return parsePatterns(data)
}

func parsePatterns(data []byte) (PatternsFile, error) {
	var patterns PatternsFile
	if err := yaml.Unmarshal(data, &patterns); err != nil {
		return PatternsFile{}, &LoadError{Message: "failed to parse patterns document", Cause: err}
	}
	return patterns, nil
}
