package config

import (
	"github.com/ludo-technologies/pydry/internal/constants"
)

// DuplicationConfig represents the unified duplication analysis configuration
type DuplicationConfig struct {
	// Analysis Configuration
	Analysis DuplicationAnalysisConfig `mapstructure:"analysis" yaml:"analysis" json:"analysis"`

	// Input Configuration
	Input InputConfig `mapstructure:"input" yaml:"input" json:"input"`

	// Output Configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
}

// DuplicationAnalysisConfig holds core analysis parameters
type DuplicationAnalysisConfig struct {
	// Minimum line span for a block to be retained
	MinBlockLines int `mapstructure:"min_block_lines" yaml:"min_block_lines" json:"min_block_lines"`

	// Minimum similarity for a pair to be reported (must be within [0,1])
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold" json:"similarity_threshold"`

	// Directory the cross-file baseline is built from for single-file analysis
	SourceRoot string `mapstructure:"source_root" yaml:"source_root" json:"source_root"`
}

// InputConfig holds input processing configuration
type InputConfig struct {
	Paths           []string `mapstructure:"paths" yaml:"paths" json:"paths"`
	Recursive       bool     `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns" json:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" json:"exclude_patterns"`
}

// OutputConfig holds output formatting configuration
type OutputConfig struct {
	Format      string `mapstructure:"format" yaml:"format" json:"format"`
	ShowContent bool   `mapstructure:"show_content" yaml:"show_content" json:"show_content"`
}

// DefaultDuplicationConfig returns a configuration with sensible defaults
func DefaultDuplicationConfig() *DuplicationConfig {
	return &DuplicationConfig{
		Analysis: DuplicationAnalysisConfig{
			MinBlockLines:       constants.DefaultMinBlockLines,
			SimilarityThreshold: constants.DefaultSimilarityThreshold,
			SourceRoot:          "src",
		},
		Input: InputConfig{
			Paths:           []string{"."},
			Recursive:       true,
			IncludePatterns: []string{"**/*.py"},
			ExcludePatterns: []string{},
		},
		Output: OutputConfig{
			Format:      "text",
			ShowContent: false,
		},
	}
}
