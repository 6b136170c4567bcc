package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Analysis.Metrics)
	assert.True(t, cfg.Analysis.Duplicates)
	assert.Equal(t, 8, cfg.Duplicates.MinLines)
	assert.Equal(t, 0.75, cfg.Duplicates.SemanticSimilarity)
	assert.Equal(t, 10, cfg.Thresholds.CyclomaticComplexity)
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "augur.toml", `
[thresholds]
cyclomatic_complexity = 20

[duplicates]
min_lines = 12
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Thresholds.CyclomaticComplexity)
	assert.Equal(t, 12, cfg.Duplicates.MinLines)
	// Untouched values keep their defaults.
	assert.Equal(t, 15, cfg.Thresholds.CognitiveComplexity)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "augur.yaml", `
analysis:
  magic_numbers: false
output:
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Analysis.MagicNumbers)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadJSONValidated(t *testing.T) {
	path := writeConfig(t, "augur.json", `{"thresholds": {"max_nesting": 6}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Thresholds.MaxNesting)
}

func TestLoadJSONRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "augur.json", `{"treshold": {"max_nesting": 6}}`)

	_, err := Load(path)
	assert.Error(t, err, "misspelled section must fail schema validation")
}

func TestLoadJSONRejectsBadValues(t *testing.T) {
	path := writeConfig(t, "augur.json", `{"duplicates": {"semantic_similarity": 1.5}}`)

	_, err := Load(path)
	assert.Error(t, err, "similarity above 1 must fail schema validation")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/augur.toml")
	assert.Error(t, err)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(old)

	cfg := LoadOrDefault()
	assert.Equal(t, 8, cfg.Duplicates.MinLines)
}
