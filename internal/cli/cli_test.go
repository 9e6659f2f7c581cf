package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionFlag(t *testing.T) {
	output := captureOutput(t, func() {
		err := RunWithArgs("0.1.0-test", []string{"--version"})
		assert.NoError(t, err)
	})

	assert.Contains(t, output, "cursorstats 0.1.0-test")
}

func TestVersionOutputFormat(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	_ = RunWithArgs("1.2.3", []string{"--version"})

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := strings.TrimSpace(buf.String())

	assert.Equal(t, "cursorstats 1.2.3", output)
}

func TestAllSubcommandsExist(t *testing.T) {
	expected := []string{"workspaces", "analyze", "estimate", "history", "track", "projects"}
	parser, _, _ := buildParser("test")

	for _, name := range expected {
		cmd := parser.Find(name)
		assert.NotNil(t, cmd, "subcommand %q should exist", name)
	}
}

func TestUnknownSubcommandFails(t *testing.T) {
	parser, _, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{"nonexistent"})
	require.Error(t, err)
}

func TestHelpFlagDoesNotError(t *testing.T) {
	err := RunWithArgs("test", []string{"--help"})
	assert.NoError(t, err)
}

func TestAnalyzeRequiresSelection(t *testing.T) {
	err := RunWithArgs("test", []string{"analyze"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all or --workspace")
}

func TestEstimateRequiresDir(t *testing.T) {
	err := RunWithArgs("test", []string{"estimate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--dir is required")
}

func TestAnalyzeFlagsParsed(t *testing.T) {
	// Execute fails fast on the missing selection but flags are already
	// bound by then.
	p, _, c := buildParser("test")
	_, err := p.ParseArgs([]string{"analyze", "--no-charts", "--dump-prompts", "--archive", "--output-dir", "/tmp/out"})
	require.Error(t, err)

	assert.True(t, c.Analyze.NoCharts)
	assert.True(t, c.Analyze.DumpPrompts)
	assert.True(t, c.Analyze.Archive)
	assert.Equal(t, "/tmp/out", c.Analyze.OutputDir)
}

func TestAnalyzeWorkspaceFlagRepeatable(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // LoadOrCreate writes under $HOME

	p, _, c := buildParser("test")
	_, err := p.ParseArgs([]string{"analyze", "--workspace", "alpha", "--workspace", "2", "--storage-dir", "/nonexistent"})
	require.Error(t, err)

	assert.Equal(t, []string{"alpha", "2"}, c.Analyze.Workspace)
}

func TestEstimateIdleGapFlag(t *testing.T) {
	p, _, c := buildParser("test")
	_, err := p.ParseArgs([]string{"estimate", "--idle-gap", "45"})
	require.Error(t, err) // --dir still missing

	assert.Equal(t, 45, c.Estimate.IdleGapMin)
}

func TestGlobalFlagsJSON(t *testing.T) {
	p, globals, _ := buildParser("test")
	_, err := p.ParseArgs([]string{"--json", "estimate"})
	require.Error(t, err) // --dir missing, but globals are bound

	assert.True(t, globals.JSON)
}

func TestGlobalFlagsVerbose(t *testing.T) {
	p, globals, _ := buildParser("test")
	_, err := p.ParseArgs([]string{"--verbose", "analyze"})
	require.Error(t, err)

	assert.True(t, globals.Verbose)
}

func TestGlobalFlagsConfig(t *testing.T) {
	p, globals, _ := buildParser("test")
	_, err := p.ParseArgs([]string{"--config", "/tmp/test.yaml", "analyze"})
	require.Error(t, err)

	assert.Equal(t, "/tmp/test.yaml", globals.Config)
}
