package run

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes external commands. It is the single seam between the
// orchestration layers and the operating system.
type Runner interface {
	// Run executes name with args in dir (empty dir means the current
	// working directory), captures stdout and stderr, and returns
	// trimmed stdout. A non-zero exit status is returned as an error
	// that includes the trimmed stderr output.
	Run(dir, name string, args ...string) (string, error)

	// RunInteractive executes name with args in dir with the process's
	// stdin, stdout, and stderr attached. Used for commands that drive
	// their own terminal interaction (gh auth login, brew install, ssh).
	RunInteractive(dir, name string, args ...string) error

	// LookPath reports where name resolves on PATH, or an error if it
	// does not resolve at all.
	LookPath(name string) (string, error)
}

// ExecRunner is the os/exec-backed Runner used in production.
//
// It is stateless; the zero value is ready to use. The struct exists as a
// receiver so a custom environment or logging middleware can be added
// without breaking callers.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(dir, name string, args ...string) (string, error) {
	// #nosec G204 — argv is constructed internally, not from shell text
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	// Capture stdout and stderr separately so stderr can be folded into
	// error messages while stdout is returned on success.
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("%s %s failed", name, strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", fmt.Errorf("%s: %w", message, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// RunInteractive implements Runner.
func (r *ExecRunner) RunInteractive(dir, name string, args ...string) error {
	// #nosec G204 — argv is constructed internally, not from shell text
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
