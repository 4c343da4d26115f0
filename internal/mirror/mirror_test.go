package mirror

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/shipit/internal/model"
	"github.com/shinji-kodama/shipit/internal/prompt"
)

// writeFile creates a file with parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// readFile returns the file content as a string.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// newSourceTree builds a source root with files under the default
// subtrees and returns the root.
func newSourceTree(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "commands", "build.md"), "build instructions\n")
	writeFile(t, filepath.Join(src, "commands", "nested", "deploy.md"), "deploy instructions\n")
	writeFile(t, filepath.Join(src, "scripts", "setup.sh"), "#!/bin/sh\necho setup\n")
	writeFile(t, filepath.Join(src, "rules", "style.md"), "style rules\n")
	return src
}

// interactivePrompter scripts conflict answers; one line per conflict.
func interactivePrompter(answers string) *prompt.Prompter {
	return &prompt.Prompter{
		In:          strings.NewReader(answers),
		Out:         &bytes.Buffer{},
		Interactive: true,
	}
}

// nonInteractivePrompter simulates a run with no attached input stream.
func nonInteractivePrompter() *prompt.Prompter {
	return &prompt.Prompter{
		In:          strings.NewReader(""),
		Out:         &bytes.Buffer{},
		Interactive: false,
	}
}

// TestRunFreshDestination verifies a conflict-free mirror: every source
// file lands at the same relative path, copied-count equals the total
// file count, and nothing is skipped.
func TestRunFreshDestination(t *testing.T) {
	src := newSourceTree(t)
	dest := filepath.Join(t.TempDir(), "dest")

	result, err := Run(Plan{SourceRoot: src, DestRoot: dest}, nonInteractivePrompter(), nil)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Copied)
	assert.Equal(t, 0, result.Skipped)
	assert.False(t, result.Aborted())
	assert.Equal(t, "Success", result.StatusLine())

	assert.Equal(t, "build instructions\n", readFile(t, filepath.Join(dest, "commands", "build.md")))
	assert.Equal(t, "deploy instructions\n", readFile(t, filepath.Join(dest, "commands", "nested", "deploy.md")))
	assert.Equal(t, "#!/bin/sh\necho setup\n", readFile(t, filepath.Join(dest, "scripts", "setup.sh")))
	assert.Equal(t, "style rules\n", readFile(t, filepath.Join(dest, "rules", "style.md")))
}

// TestRunMissingSourceRoot verifies the precondition failure: the run
// reports the error and the destination is never created.
func TestRunMissingSourceRoot(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "dest")

	_, err := Run(Plan{
		SourceRoot: filepath.Join(t.TempDir(), "does-not-exist"),
		DestRoot:   dest,
	}, nonInteractivePrompter(), nil)

	require.Error(t, err)
	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitPreconditionFailed, cliErr.Code)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "destination must not be created on precondition failure")
}

// TestRunAbsentSubtree verifies that a subtree missing from the source is
// an empty set of files, not an error.
func TestRunAbsentSubtree(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "scripts", "one.sh"), "one\n")
	// "commands" and "rules" do not exist under src.

	result, err := Run(Plan{SourceRoot: src, DestRoot: t.TempDir()}, nonInteractivePrompter(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Copied)
	assert.False(t, result.Aborted())
}

// TestRunInteractiveSkip verifies that a "no" answer (and the default
// empty answer, which is also "no") leaves the destination byte-for-byte
// unchanged and increments skipped-count exactly once per conflict.
func TestRunInteractiveSkip(t *testing.T) {
	src := newSourceTree(t)
	dest := t.TempDir()
	writeFile(t, filepath.Join(dest, "rules", "style.md"), "operator edits to keep\n")

	// Default answer: empty line = no.
	result, err := Run(Plan{SourceRoot: src, DestRoot: dest}, interactivePrompter("\n"), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Copied)
	assert.Equal(t, 1, result.Skipped)
	assert.False(t, result.Aborted())
	assert.Equal(t, "operator edits to keep\n", readFile(t, filepath.Join(dest, "rules", "style.md")),
		"declined conflict must leave the destination untouched")
}

// TestRunInteractiveOverwrite verifies that a "yes" answer copies over
// the conflicting destination file.
func TestRunInteractiveOverwrite(t *testing.T) {
	src := newSourceTree(t)
	dest := t.TempDir()
	writeFile(t, filepath.Join(dest, "scripts", "setup.sh"), "stale\n")

	result, err := Run(Plan{SourceRoot: src, DestRoot: dest}, interactivePrompter("y\n"), nil)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Copied)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, "#!/bin/sh\necho setup\n", readFile(t, filepath.Join(dest, "scripts", "setup.sh")))
}

// TestRunNonInteractiveConflictAborts verifies the fail-closed policy:
// the first conflict halts the whole traversal, files processed before it
// are present, files after it are not, and the abort reason names the path.
func TestRunNonInteractiveConflictAborts(t *testing.T) {
	src := newSourceTree(t)
	dest := t.TempDir()
	// Conflict inside the first subtree ("commands"), on the file that
	// sorts first ("build.md" precedes "nested/").
	writeFile(t, filepath.Join(dest, "commands", "build.md"), "pre-existing\n")

	result, err := Run(Plan{SourceRoot: src, DestRoot: dest}, nonInteractivePrompter(), nil)
	require.NoError(t, err, "an abort is a defined outcome, not an error")

	assert.True(t, result.Aborted())
	assert.Contains(t, result.AbortReason, filepath.Join(dest, "commands", "build.md"))
	assert.Contains(t, result.StatusLine(), "Aborted (")

	assert.Equal(t, 0, result.Copied)
	assert.Equal(t, 0, result.Skipped)

	// The conflicting file is untouched and nothing after it was copied.
	assert.Equal(t, "pre-existing\n", readFile(t, filepath.Join(dest, "commands", "build.md")))
	_, statErr := os.Stat(filepath.Join(dest, "scripts", "setup.sh"))
	assert.True(t, os.IsNotExist(statErr), "files after the conflict must not be processed")
}

// TestRunNonInteractiveKeepsEarlierCopies verifies that copies completed
// before the conflict are kept (no rollback).
func TestRunNonInteractiveKeepsEarlierCopies(t *testing.T) {
	src := newSourceTree(t)
	dest := t.TempDir()
	// Conflict in the last default subtree ("rules"); "commands" and
	// "scripts" are traversed first and copy cleanly.
	writeFile(t, filepath.Join(dest, "rules", "style.md"), "pre-existing\n")

	result, err := Run(Plan{SourceRoot: src, DestRoot: dest}, nonInteractivePrompter(), nil)
	require.NoError(t, err)

	assert.True(t, result.Aborted())
	assert.Equal(t, 3, result.Copied, "copies before the conflict are kept")
	assert.FileExists(t, filepath.Join(dest, "commands", "build.md"))
	assert.FileExists(t, filepath.Join(dest, "scripts", "setup.sh"))
	assert.Equal(t, "pre-existing\n", readFile(t, filepath.Join(dest, "rules", "style.md")))
}

// TestRunIdempotent verifies that running the mirror twice with "yes" on
// all conflicts yields the same destination content as running it once.
func TestRunIdempotent(t *testing.T) {
	src := newSourceTree(t)
	dest := t.TempDir()

	first, err := Run(Plan{SourceRoot: src, DestRoot: dest}, nonInteractivePrompter(), nil)
	require.NoError(t, err)
	require.Equal(t, 4, first.Copied)

	// Second run: every file is now a conflict, answered "yes" each time.
	second, err := Run(Plan{SourceRoot: src, DestRoot: dest},
		interactivePrompter("y\ny\ny\ny\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, second.Copied)
	assert.Equal(t, 0, second.Skipped)

	assert.Equal(t, "build instructions\n", readFile(t, filepath.Join(dest, "commands", "build.md")))
	assert.Equal(t, "style rules\n", readFile(t, filepath.Join(dest, "rules", "style.md")))
}

// TestRunCustomSubtrees verifies that configured subtree names replace
// the defaults.
func TestRunCustomSubtrees(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "hooks", "pre.sh"), "pre\n")
	writeFile(t, filepath.Join(src, "commands", "ignored.md"), "ignored\n")

	dest := t.TempDir()
	result, err := Run(Plan{
		SourceRoot: src,
		DestRoot:   dest,
		Subtrees:   []string{"hooks"},
	}, nonInteractivePrompter(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Copied)
	assert.FileExists(t, filepath.Join(dest, "hooks", "pre.sh"))
	_, statErr := os.Stat(filepath.Join(dest, "commands"))
	assert.True(t, os.IsNotExist(statErr), "unlisted subtrees must not be mirrored")
}

// TestRunIdenticalContentIsStillAConflict verifies the explicit design
// simplification: matching content does not bypass conflict resolution.
func TestRunIdenticalContentIsStillAConflict(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "rules", "same.md"), "identical\n")
	dest := t.TempDir()
	writeFile(t, filepath.Join(dest, "rules", "same.md"), "identical\n")

	result, err := Run(Plan{SourceRoot: src, DestRoot: dest}, nonInteractivePrompter(), nil)
	require.NoError(t, err)
	assert.True(t, result.Aborted(), "identical content must still count as a conflict")
}
