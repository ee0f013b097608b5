package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ludo-technologies/pydry/domain"
	"github.com/ludo-technologies/pydry/internal/constants"
	"github.com/mark3labs/mcp-go/mcp"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleAnalyzeFile handles the analyze_file tool
func (h *HandlerSet) HandleAnalyzeFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := h.requestFromConfig()
	req.Paths = []string{path}

	if sr, ok := args["source_root"].(string); ok && sr != "" {
		req.SourceRoot = sr
	}
	if rt, ok := args["realtime"].(bool); ok && rt {
		req.SimilarityThreshold = constants.RealtimeSimilarityThreshold
	}
	// An explicit threshold wins over the realtime preset.
	if st, ok := args["similarity_threshold"].(float64); ok {
		req.SimilarityThreshold = st
	}
	if ml, ok := args["min_lines"].(float64); ok {
		req.MinBlockLines = int(ml)
	}

	if err := req.Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	svc := h.deps.BuildDuplicationService()
	response, err := svc.AnalyzeFile(ctx, path, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("duplication analysis failed: %v", err)), nil
	}

	return marshalResult(response.Report)
}

// HandleAnalyzeDirectory handles the analyze_directory tool
func (h *HandlerSet) HandleAnalyzeDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := h.requestFromConfig()
	req.Paths = []string{path}

	if st, ok := args["similarity_threshold"].(float64); ok {
		req.SimilarityThreshold = st
	}
	if ml, ok := args["min_lines"].(float64); ok {
		req.MinBlockLines = int(ml)
	}
	if r, ok := args["recursive"].(bool); ok {
		req.Recursive = r
	}

	if err := req.Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	svc := h.deps.BuildDuplicationService()
	response, err := svc.AnalyzeDirectory(ctx, path, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("duplication analysis failed: %v", err)), nil
	}

	return marshalResult(response.Report)
}

// HandleGetDRYScore handles the get_dry_score tool
func (h *HandlerSet) HandleGetDRYScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := h.requestFromConfig()
	req.Paths = []string{path}

	svc := h.deps.BuildDuplicationService()
	response, err := svc.AnalyzeDirectory(ctx, path, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("duplication analysis failed: %v", err)), nil
	}

	report := response.Report
	return marshalResult(map[string]interface{}{
		"dry_score":        report.DRYScore,
		"total_duplicates": report.TotalDuplicates,
		"high_count":       report.HighCount,
		"medium_count":     report.MediumCount,
		"low_count":        report.LowCount,
		"files_analyzed":   report.FilesAnalyzed,
		"blocks_checked":   report.BlocksChecked,
	})
}

// requestFromConfig builds a request seeded from the loaded configuration
func (h *HandlerSet) requestFromConfig() *domain.DuplicationRequest {
	req := domain.DefaultDuplicationRequest()

	if cfg := h.deps.Config(); cfg != nil {
		dup := cfg.Duplication
		if dup.Analysis.MinBlockLines > 0 {
			req.MinBlockLines = dup.Analysis.MinBlockLines
		}
		if dup.Analysis.SimilarityThreshold > 0 {
			req.SimilarityThreshold = dup.Analysis.SimilarityThreshold
		}
		if dup.Analysis.SourceRoot != "" {
			req.SourceRoot = dup.Analysis.SourceRoot
		}
		req.Recursive = dup.Input.Recursive
		if len(dup.Input.IncludePatterns) > 0 {
			req.IncludePatterns = dup.Input.IncludePatterns
		}
		if len(dup.Input.ExcludePatterns) > 0 {
			req.ExcludePatterns = dup.Input.ExcludePatterns
		}
	}

	req.OutputFormat = domain.OutputFormatJSON
	req.ConfigPath = h.deps.ConfigPath()
	return req
}

// marshalResult converts a handler result to an MCP text result
func marshalResult(data interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
