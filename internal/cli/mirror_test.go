package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/shipit/internal/config"
	"github.com/shinji-kodama/shipit/internal/model"
)

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd := NewRootCommand()
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeSourceFile(t *testing.T, root, subtree, name, content string) {
	t.Helper()
	dir := filepath.Join(root, subtree)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	rootCmd := NewRootCommand()

	names := []string{}
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "mirror")
	assert.Contains(t, names, "publish")
}

func TestMirrorCommandCopiesIntoEmptyDestination(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "project")
	writeSourceFile(t, src, "commands", "build.md", "build steps")
	writeSourceFile(t, src, "scripts", "run.sh", "#!/bin/sh")

	out, err := execute(t, "mirror", "--from", src, "--to", dst)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dst, "commands", "build.md"))
	assert.FileExists(t, filepath.Join(dst, "scripts", "run.sh"))
	assert.Contains(t, out, "Copied: 2 file(s)")
	assert.Contains(t, out, "Skipped: 0 file(s)")
	assert.Contains(t, out, "Status: Success")
}

func TestMirrorCommandConflictAbortsWithoutTerminal(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeSourceFile(t, src, "commands", "build.md", "new")
	writeSourceFile(t, dst, "commands", "build.md", "old")

	out, err := execute(t, "mirror", "--from", src, "--to", dst)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConflictAborted, cliErr.Code)

	// The conflicting file keeps its destination content.
	data, readErr := os.ReadFile(filepath.Join(dst, "commands", "build.md"))
	require.NoError(t, readErr)
	assert.Equal(t, "old", string(data))
	assert.Contains(t, out, "Aborted")
}

func TestMirrorCommandMissingSourceFailsPrecondition(t *testing.T) {
	dst := t.TempDir()

	_, err := execute(t, "mirror", "--from", filepath.Join(t.TempDir(), "nope"), "--to", dst)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitPreconditionFailed, cliErr.Code)
}

func TestMirrorCommandSubtreeFlagLimitsSelection(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "project")
	writeSourceFile(t, src, "commands", "build.md", "build")
	writeSourceFile(t, src, "rules", "style.md", "style")

	_, err := execute(t, "mirror", "--from", src, "--to", dst, "--subtree", "rules")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dst, "rules", "style.md"))
	assert.NoFileExists(t, filepath.Join(dst, "commands", "build.md"))
}

func TestMirrorCommandJSONOutput(t *testing.T) {
	t.Cleanup(func() { jsonOutput = false })

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "project")
	writeSourceFile(t, src, "commands", "build.md", "build")

	out, err := execute(t, "mirror", "--json", "--from", src, "--to", dst)
	require.NoError(t, err)

	var parsed struct {
		Copied  int    `json:"copied"`
		Skipped int    `json:"skipped"`
		Status  string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, 1, parsed.Copied)
	assert.Equal(t, 0, parsed.Skipped)
	assert.Equal(t, "Success", parsed.Status)
}

func TestBuildMirrorPlanFlagBeatsConfig(t *testing.T) {
	cfg := &config.Config{Mirror: config.MirrorConfig{
		Source:   "/cfg/src",
		Dest:     "/cfg/dst",
		Subtrees: []string{"commands"},
	}}

	plan, err := buildMirrorPlan("/work", cfg, "/flag/src", "", nil)
	require.NoError(t, err)

	assert.Equal(t, "/flag/src", plan.SourceRoot)
	assert.Equal(t, "/cfg/dst", plan.DestRoot)
	assert.Equal(t, []string{"commands"}, plan.Subtrees)
}

func TestBuildMirrorPlanDefaults(t *testing.T) {
	plan, err := buildMirrorPlan("/work", &config.Config{}, "", "", nil)
	require.NoError(t, err)

	home, herr := os.UserHomeDir()
	require.NoError(t, herr)
	assert.Equal(t, filepath.Join(home, ".shipit"), plan.SourceRoot)
	assert.Equal(t, filepath.Join("/work", ".shipit"), plan.DestRoot)
	assert.Empty(t, plan.Subtrees)
}
