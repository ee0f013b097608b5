package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ludo-technologies/pydry/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "pydry"
	serverVersion = "1.0.0"
)

func main() {
	// Set up logging to stderr (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Create MCP server with tool capabilities
	server := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	// Register all pydry tools
	handlers := mcp.NewHandlerSet(mcp.NewDependencies(nil, ""))
	mcp.RegisterTools(server, handlers)

	log.Printf("Starting %s MCP server v%s\n", serverName, serverVersion)
	log.Println("Registered tools:")
	log.Println("  - analyze_file: Single file duplication analysis")
	log.Println("  - analyze_directory: Project-wide duplication analysis")
	log.Println("  - get_dry_score: DRY score and duplication counts")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	// Start server with stdio transport
	// This blocks until the server is terminated
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
