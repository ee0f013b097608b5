package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/pydry/domain"
	"github.com/ludo-technologies/pydry/internal/config"
)

// DuplicationConfigurationLoaderImpl implements the domain.DuplicationConfigurationLoader interface
type DuplicationConfigurationLoaderImpl struct{}

// NewDuplicationConfigurationLoader creates a new configuration loader
func NewDuplicationConfigurationLoader() *DuplicationConfigurationLoaderImpl {
	return &DuplicationConfigurationLoaderImpl{}
}

// LoadConfig loads duplication configuration from an explicit file path.
// TOML files are read directly; YAML files go through the viper loader.
func (c *DuplicationConfigurationLoaderImpl) LoadConfig(configPath string) (*domain.DuplicationRequest, error) {
	ext := strings.ToLower(filepath.Ext(configPath))

	var cfg *config.DuplicationConfig
	switch ext {
	case ".toml":
		loaded, err := config.LoadTomlConfigFile(configPath)
		if err != nil {
			return nil, domain.NewConfigError(fmt.Sprintf("failed to load configuration: %s", configPath), err)
		}
		cfg = loaded
	case ".yaml", ".yml":
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, domain.NewConfigError(fmt.Sprintf("failed to load configuration: %s", configPath), err)
		}
		cfg = &loaded.Duplication
	default:
		return nil, domain.NewConfigError(fmt.Sprintf("unsupported config file: %s", configPath), nil)
	}

	return c.configToRequest(cfg), nil
}

// LoadDefaultConfig returns configuration from discovered config files, falling
// back to hardcoded defaults when none is found or loading fails.
func (c *DuplicationConfigurationLoaderImpl) LoadDefaultConfig(startDir string) *domain.DuplicationRequest {
	if startDir == "" {
		startDir = "."
	}

	if configFile := config.FindConfigFile(startDir); configFile != "" {
		if req, err := c.LoadConfig(configFile); err == nil {
			return req
		}
	}

	// TOML loader walks up the tree; it never fails, it degrades to defaults
	tomlLoader := config.NewTomlConfigLoader()
	if cfg, err := tomlLoader.LoadConfig(startDir); err == nil {
		return c.configToRequest(cfg)
	}

	return domain.DefaultDuplicationRequest()
}

// configToRequest converts a config.DuplicationConfig to a domain.DuplicationRequest
func (c *DuplicationConfigurationLoaderImpl) configToRequest(cfg *config.DuplicationConfig) *domain.DuplicationRequest {
	req := domain.DefaultDuplicationRequest()

	req.MinBlockLines = cfg.Analysis.MinBlockLines
	req.SimilarityThreshold = cfg.Analysis.SimilarityThreshold
	req.SourceRoot = cfg.Analysis.SourceRoot

	if len(cfg.Input.Paths) > 0 {
		req.Paths = cfg.Input.Paths
	}
	req.Recursive = cfg.Input.Recursive
	req.IncludePatterns = cfg.Input.IncludePatterns
	req.ExcludePatterns = cfg.Input.ExcludePatterns

	if cfg.Output.Format != "" {
		req.OutputFormat = domain.OutputFormat(cfg.Output.Format)
	}
	req.ShowContent = cfg.Output.ShowContent

	return req
}
