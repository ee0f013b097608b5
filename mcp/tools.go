package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all pydry MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	// Tool 1: analyze_file - Single file duplication analysis
	s.AddTool(mcp.NewTool("analyze_file",
		mcp.WithDescription("Analyze a Python file for code duplicated from the rest of the project (cross-file pairs against the source root baseline)"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the Python file to analyze")),
		mcp.WithString("source_root",
			mcp.Description("Directory the baseline is built from (default: src)")),
		mcp.WithNumber("similarity_threshold",
			mcp.Description("Minimum similarity threshold 0.0-1.0 (default: 0.8)")),
		mcp.WithNumber("min_lines",
			mcp.Description("Minimum lines for a code block (default: 3)")),
		mcp.WithBoolean("realtime",
			mcp.Description("Use the looser 0.75 similarity threshold suited to quick editor-loop checks")),
	), h.HandleAnalyzeFile)

	// Tool 2: analyze_directory - Project-wide duplication analysis
	s.AddTool(mcp.NewTool("analyze_directory",
		mcp.WithDescription("Detect duplicated code blocks across all Python files under a directory"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the directory to analyze")),
		mcp.WithNumber("similarity_threshold",
			mcp.Description("Minimum similarity threshold 0.0-1.0 (default: 0.8)")),
		mcp.WithNumber("min_lines",
			mcp.Description("Minimum lines for a code block (default: 3)")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively analyze subdirectories (default: true)")),
	), h.HandleAnalyzeDirectory)

	// Tool 3: get_dry_score - DRY score only
	s.AddTool(mcp.NewTool("get_dry_score",
		mcp.WithDescription("Get the DRY score (0-100) and duplication counts for a directory"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the directory to analyze")),
	), h.HandleGetDRYScore)
}
