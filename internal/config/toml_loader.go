package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// PydryTomlConfig represents the structure of .pydry.toml
type PydryTomlConfig struct {
	Duplication DuplicationTomlSection `toml:"duplication"`
}

// DuplicationTomlSection represents the [duplication] section (flat structure)
type DuplicationTomlSection struct {
	MinBlockLines       int     `toml:"min_block_lines"`
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	SourceRoot          string  `toml:"source_root"`

	Paths           []string `toml:"paths"`
	Recursive       *bool    `toml:"recursive"` // pointer to detect unset
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`

	Format      string `toml:"format"`
	ShowContent *bool  `toml:"show_content"` // pointer to detect unset
}

// TomlConfigLoader handles TOML configuration loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads configuration from TOML files with ruff-like priority:
// 1. .pydry.toml (dedicated config file)
// 2. pyproject.toml (with [tool.pydry] section)
// 3. defaults
func (l *TomlConfigLoader) LoadConfig(startDir string) (*DuplicationConfig, error) {
	if config, err := l.loadFromPydryToml(startDir); err == nil {
		return config, nil
	}

	if config, err := LoadPyprojectConfig(startDir); err == nil {
		return config, nil
	}

	return DefaultDuplicationConfig(), nil
}

// loadFromPydryToml loads configuration from a .pydry.toml found by walking
// up the directory tree from startDir
func (l *TomlConfigLoader) loadFromPydryToml(startDir string) (*DuplicationConfig, error) {
	configPath, err := findConfigFile(startDir, ".pydry.toml")
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var parsed PydryTomlConfig
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	config := DefaultDuplicationConfig()
	applyTomlSection(config, &parsed.Duplication)
	return config, nil
}

// LoadTomlConfigFile loads configuration from an explicit TOML file path.
// A pyproject.toml is read through its [tool.pydry] section; any other file
// is treated as a dedicated pydry config.
func LoadTomlConfigFile(path string) (*DuplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultDuplicationConfig()

	if filepath.Base(path) == "pyproject.toml" {
		var pyproject PyprojectToml
		if err := toml.Unmarshal(data, &pyproject); err != nil {
			return nil, err
		}
		applyTomlSection(config, &pyproject.Tool.Pydry.Duplication)
		return config, nil
	}

	var parsed PydryTomlConfig
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	applyTomlSection(config, &parsed.Duplication)
	return config, nil
}

// findConfigFile walks up the directory tree to find the named file
func findConfigFile(startDir, name string) (string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, name)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// applyTomlSection merges a parsed [duplication] section into defaults.
// Only set values override.
func applyTomlSection(defaults *DuplicationConfig, section *DuplicationTomlSection) {
	if section.MinBlockLines > 0 {
		defaults.Analysis.MinBlockLines = section.MinBlockLines
	}
	if section.SimilarityThreshold > 0 {
		defaults.Analysis.SimilarityThreshold = section.SimilarityThreshold
	}
	if section.SourceRoot != "" {
		defaults.Analysis.SourceRoot = section.SourceRoot
	}

	if len(section.Paths) > 0 {
		defaults.Input.Paths = section.Paths
	}
	if section.Recursive != nil {
		defaults.Input.Recursive = *section.Recursive
	}
	if len(section.IncludePatterns) > 0 {
		defaults.Input.IncludePatterns = section.IncludePatterns
	}
	if len(section.ExcludePatterns) > 0 {
		defaults.Input.ExcludePatterns = section.ExcludePatterns
	}

	if section.Format != "" {
		defaults.Output.Format = section.Format
	}
	if section.ShowContent != nil {
		defaults.Output.ShowContent = *section.ShowContent
	}
}
