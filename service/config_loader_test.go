package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoaderLoadConfigToml(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".pydry.toml", `
[duplication]
min_block_lines = 5
similarity_threshold = 0.9
source_root = "lib"
`)

	loader := NewDuplicationConfigurationLoader()
	req, err := loader.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5, req.MinBlockLines)
	assert.Equal(t, 0.9, req.SimilarityThreshold)
	assert.Equal(t, "lib", req.SourceRoot)
	assert.NoError(t, req.Validate())
}

func TestConfigLoaderLoadConfigYaml(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".pydry.yaml", `
duplication:
  analysis:
    min_block_lines: 4
    similarity_threshold: 0.85
`)

	loader := NewDuplicationConfigurationLoader()
	req, err := loader.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4, req.MinBlockLines)
	assert.Equal(t, 0.85, req.SimilarityThreshold)
}

func TestConfigLoaderUnsupportedExtension(t *testing.T) {
	loader := NewDuplicationConfigurationLoader()
	_, err := loader.LoadConfig("config.ini")
	assert.Error(t, err)
}

func TestConfigLoaderLoadDefaultConfig(t *testing.T) {
	t.Run("with discovered toml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".pydry.toml", "[duplication]\nmin_block_lines = 6\n")

		loader := NewDuplicationConfigurationLoader()
		req := loader.LoadDefaultConfig(dir)

		require.NotNil(t, req)
		assert.Equal(t, 6, req.MinBlockLines)
	})

	t.Run("falls back to defaults", func(t *testing.T) {
		dir := t.TempDir()

		loader := NewDuplicationConfigurationLoader()
		req := loader.LoadDefaultConfig(filepath.Join(dir))

		require.NotNil(t, req)
		assert.Equal(t, 3, req.MinBlockLines)
		assert.Equal(t, 0.80, req.SimilarityThreshold)
	})
}
