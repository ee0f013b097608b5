package config

// DefaultConfigTOML is the starter configuration written by `pydry init`.
const DefaultConfigTOML = `# pydry configuration file
# Duplication analysis settings for this project.

[duplication]
# Minimum line span for a code block to be considered
# min_block_lines = 3

# Minimum similarity for a pair to be reported (0.0-1.0)
# similarity_threshold = 0.8

# Directory the cross-file baseline is built from for single-file analysis
# source_root = "src"

# Paths to analyze when none are given on the command line
# paths = ["."]

# Recursively analyze directories
# recursive = true

# File patterns to include
# include_patterns = ["**/*.py"]

# File patterns to exclude (in addition to the built-in test/migration policy)
# exclude_patterns = []

# Output format: text, json, yaml, csv
# format = "text"

# Include code previews in text output
# show_content = false
`
