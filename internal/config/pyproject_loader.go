package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// PyprojectToml represents the structure of pyproject.toml
type PyprojectToml struct {
	Tool ToolConfig `toml:"tool"`
}

// ToolConfig represents the [tool] section
type ToolConfig struct {
	Pydry PydryToolConfig `toml:"pydry"`
}

// PydryToolConfig represents the [tool.pydry] section
type PydryToolConfig struct {
	Duplication DuplicationTomlSection `toml:"duplication"`
}

// LoadPyprojectConfig loads duplication configuration from a pyproject.toml
// found by walking up the directory tree from startDir
func LoadPyprojectConfig(startDir string) (*DuplicationConfig, error) {
	configPath, err := findConfigFile(startDir, "pyproject.toml")
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var pyproject PyprojectToml
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return nil, err
	}

	config := DefaultDuplicationConfig()
	applyTomlSection(config, &pyproject.Tool.Pydry.Duplication)
	return config, nil
}
