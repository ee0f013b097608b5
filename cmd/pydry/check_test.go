package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const duplicatedSnippet = `def calculate_total(items):
    total = 0
    for item in items:
        total += item.price
    return total
`

func writeProjectFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func execCheck(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewCheckCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func decodeReport(t *testing.T, out string) int {
	t.Helper()

	var resp struct {
		Report struct {
			TotalDuplicates int `json:"total_duplicates"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp.Report.TotalDuplicates
}

func TestCheckCommandMissingExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "app.py", duplicatedSnippet)

	_, err := execCheck(t, dir, "-c", filepath.Join(dir, "never-there.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "never-there.toml")
}

func TestCheckCommandExplicitConfigApplies(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "billing.py", duplicatedSnippet)
	writeProjectFile(t, dir, "orders.py", duplicatedSnippet)

	cfgPath := filepath.Join(t.TempDir(), "strict.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[duplication]\nmin_block_lines = 10\n"), 0o644))

	out, err := execCheck(t, dir, "--json")
	require.NoError(t, err)
	assert.Greater(t, decodeReport(t, out), 0)

	// The explicit file raises the block minimum above every block in the
	// project, so the same tree comes back clean.
	out, err = execCheck(t, dir, "--json", "-c", cfgPath)
	require.NoError(t, err)
	assert.Zero(t, decodeReport(t, out))
}

func TestCheckCommandExplicitFlagsWinOverConfig(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "billing.py", duplicatedSnippet)
	writeProjectFile(t, dir, "orders.py", duplicatedSnippet)

	cfgPath := filepath.Join(t.TempDir(), "strict.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[duplication]\nmin_block_lines = 10\n"), 0o644))

	out, err := execCheck(t, dir, "--json", "-c", cfgPath, "--min-lines", "4")
	require.NoError(t, err)
	assert.Greater(t, decodeReport(t, out), 0)
}
