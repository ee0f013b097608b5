package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the main YAML configuration structure (.pydry.yaml).
// TOML files take priority over this; see TomlConfigLoader.
type Config struct {
	// Duplication holds duplication analysis configuration
	Duplication DuplicationConfig `mapstructure:"duplication" yaml:"duplication"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Duplication: *DefaultDuplicationConfig(),
	}
}

// LoadConfig loads configuration from a YAML file using viper
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".pydry")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && configPath == "" {
			// No config file found; fall back to defaults
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// FindConfigFile looks for a supported config file in the given directory
func FindConfigFile(dir string) string {
	candidates := []string{".pydry.toml", "pyproject.toml", ".pydry.yaml", ".pydry.yml"}
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// setDefaults registers default values with viper
func setDefaults(v *viper.Viper) {
	defaults := DefaultDuplicationConfig()

	v.SetDefault("duplication.analysis.min_block_lines", defaults.Analysis.MinBlockLines)
	v.SetDefault("duplication.analysis.similarity_threshold", defaults.Analysis.SimilarityThreshold)
	v.SetDefault("duplication.analysis.source_root", defaults.Analysis.SourceRoot)
	v.SetDefault("duplication.input.paths", defaults.Input.Paths)
	v.SetDefault("duplication.input.recursive", defaults.Input.Recursive)
	v.SetDefault("duplication.input.include_patterns", defaults.Input.IncludePatterns)
	v.SetDefault("duplication.input.exclude_patterns", defaults.Input.ExcludePatterns)
	v.SetDefault("duplication.output.format", defaults.Output.Format)
	v.SetDefault("duplication.output.show_content", defaults.Output.ShowContent)
}
