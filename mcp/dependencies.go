package mcp

import (
	"github.com/ludo-technologies/pydry/domain"
	"github.com/ludo-technologies/pydry/internal/config"
	"github.com/ludo-technologies/pydry/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		fileReader: service.NewFileReader(),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildDuplicationService assembles a fresh duplication service with injected dependencies.
func (d *Dependencies) BuildDuplicationService() domain.DuplicationService {
	// No progress reporting over MCP: stdout carries JSON-RPC
	return service.NewDuplicationService(d.fileReader, nil, service.NewParallelExecutor())
}
