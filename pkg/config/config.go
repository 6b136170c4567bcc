// Package config loads and validates augur configuration. Files may be
// TOML, YAML or JSON; JSON files are additionally checked against an
// embedded schema so typos surface as validation errors instead of being
// silently ignored.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

// Config holds all configuration options for augur.
type Config struct {
	Analysis   AnalysisConfig   `koanf:"analysis"`
	Thresholds ThresholdConfig  `koanf:"thresholds"`
	Duplicates DuplicatesConfig `koanf:"duplicates"`
	Exclude    ExcludeConfig    `koanf:"exclude"`
	Output     OutputConfig     `koanf:"output"`
}

// AnalysisConfig controls which detectors run and how.
type AnalysisConfig struct {
	Metrics      bool  `koanf:"metrics"`
	MagicNumbers bool  `koanf:"magic_numbers"`
	DeadCode     bool  `koanf:"dead_code"`
	Duplicates   bool  `koanf:"duplicates"`
	Workers      int   `koanf:"workers"`
	MaxFileSize  int64 `koanf:"max_file_size"`
}

// ThresholdConfig holds the base (medium-tier) metric thresholds. Detector
// tier tables scale from these.
type ThresholdConfig struct {
	CyclomaticComplexity int `koanf:"cyclomatic_complexity"`
	CognitiveComplexity  int `koanf:"cognitive_complexity"`
	MaxNesting           int `koanf:"max_nesting"`
	ParameterCount       int `koanf:"parameter_count"`
	MethodLines          int `koanf:"method_lines"`
	ClassLines           int `koanf:"class_lines"`
	ClassMethods         int `koanf:"class_methods"`
}

// DuplicatesConfig holds duplicate-detection cutoffs.
type DuplicatesConfig struct {
	MinLines           int     `koanf:"min_lines"`
	MinComplexity      float64 `koanf:"min_complexity"`
	MinTokens          int     `koanf:"min_tokens"`
	SemanticSimilarity float64 `koanf:"semantic_similarity"`
}

// ExcludeConfig defines file exclusion rules. Patterns use doublestar
// glob syntax and match against the path relative to the scan root.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns"`
	Extensions []string `koanf:"extensions"`
	Dirs       []string `koanf:"dirs"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"`
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Metrics:      true,
			MagicNumbers: true,
			DeadCode:     true,
			Duplicates:   true,
			Workers:      0,
			MaxFileSize:  1 << 20,
		},
		Thresholds: ThresholdConfig{
			CyclomaticComplexity: 10,
			CognitiveComplexity:  15,
			MaxNesting:           4,
			ParameterCount:       5,
			MethodLines:          50,
			ClassLines:           300,
			ClassMethods:         20,
		},
		Duplicates: DuplicatesConfig{
			MinLines:           8,
			MinComplexity:      5.0,
			MinTokens:          100,
			SemanticSimilarity: 0.75,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"**/*_test.go",
				"**/*.min.js",
				"**/*.min.css",
				"**/*.generated.*",
			},
			Extensions: []string{
				".lock",
				".sum",
			},
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				".augur",
				"dist",
				"build",
				"__pycache__",
			},
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file, layered over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		if err := validateJSON(path); err != nil {
			return nil, err
		}
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// validateJSON checks a JSON config file against the embedded schema.
func validateJSON(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return fmt.Errorf("parsing embedded schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("augur-schema.json", schemaDoc); err != nil {
		return fmt.Errorf("loading embedded schema: %w", err)
	}
	schema, err := compiler.Compile("augur-schema.json")
	if err != nil {
		return fmt.Errorf("compiling embedded schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("config %s failed schema validation: %w", path, err)
	}
	return nil
}

// LoadOrDefault tries to load config from standard locations, falling back
// to the defaults when none exists.
func LoadOrDefault() *Config {
	configNames := []string{
		"augur.toml",
		"augur.yaml",
		"augur.yml",
		"augur.json",
		".augur.toml",
		".augur.yaml",
		".augur.yml",
		".augur.json",
	}
	searchDirs := []string{".", ".augur"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				if cfg, err := Load(path); err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}
