package main

import (
	"os"

	"github.com/ludo-technologies/pydry/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pydry",
	Short: "A Python Code Duplication Analyzer",
	Long: `pydry finds duplicated code in Python projects and scores how DRY
the codebase is.

It extracts code blocks from function and class declarations plus
consecutive statement runs, normalizes away string literals, comments,
and whitespace, then compares every pair by fingerprint and token
similarity.

Features:
  • Structural blocks from the parse tree, statement runs from raw lines
  • MD5 fingerprinting with token-set similarity fallback
  • Severity classification and refactoring suggestions
  • DRY score (0-100) per analysis run`,
	Version: version.Short(),
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
