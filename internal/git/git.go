package git

import (
	"fmt"
	"strings"

	"github.com/shinji-kodama/shipit/internal/model"
	"github.com/shinji-kodama/shipit/internal/run"
)

// Git runs git commands against a single working directory.
type Git struct {
	runner run.Runner
	dir    string
}

// New creates a Git bound to the given working directory.
func New(runner run.Runner, dir string) *Git {
	return &Git{runner: runner, dir: dir}
}

// Dir returns the working directory this Git operates on.
func (g *Git) Dir() string {
	return g.dir
}

// run executes a git command in the working directory. On failure the
// error wraps the run layer's message (which already carries trimmed
// stderr) in a CLIError with ExitGitError.
func (g *Git) run(args ...string) (string, error) {
	out, err := g.runner.Run(g.dir, "git", args...)
	if err != nil {
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		return "", model.WrapCLIError(model.ExitGitError, message, err)
	}
	return out, nil
}

// probe executes a git command and reports only whether it succeeded.
// Used for commands whose exit status is the answer (rev-parse --verify,
// diff --cached --quiet).
func (g *Git) probe(args ...string) bool {
	_, err := g.runner.Run(g.dir, "git", args...)
	return err == nil
}

// IsRepo reports whether the working directory is inside a git repository.
func (g *Git) IsRepo() bool {
	return g.probe("rev-parse", "--is-inside-work-tree")
}

// Init initializes a new repository in the working directory.
func (g *Git) Init() error {
	_, err := g.run("init")
	return err
}

// CurrentBranch returns the checked-out branch name.
//
// For a fresh repository with no commits, `rev-parse --abbrev-ref HEAD`
// fails because HEAD is unborn; in that case the symbolic ref is read
// directly so the unborn branch's name (typically "main" or "master")
// is still reported.
func (g *Git) CurrentBranch() (string, error) {
	out, err := g.run("rev-parse", "--abbrev-ref", "HEAD")
	if err == nil {
		return out, nil
	}

	out, symErr := g.run("symbolic-ref", "--short", "HEAD")
	if symErr != nil {
		return "", err
	}
	return out, nil
}

// Branches returns the short names of all local branches. A fresh
// repository with no commits has no branches and returns an empty slice.
func (g *Git) Branches() ([]string, error) {
	out, err := g.run("for-each-ref", "--format=%(refname:short)", "refs/heads/")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// BranchExists reports whether a local branch with the given name exists.
func (g *Git) BranchExists(branch string) bool {
	return g.probe("rev-parse", "--verify", "refs/heads/"+branch)
}

// CreateBranch creates the branch and switches to it.
func (g *Git) CreateBranch(branch string) error {
	_, err := g.run("checkout", "-b", branch)
	return err
}

// Switch checks out an existing branch.
func (g *Git) Switch(branch string) error {
	_, err := g.run("checkout", branch)
	return err
}

// Status returns the working-tree status in short format. An empty string
// means a clean tree with no untracked files.
func (g *Git) Status() (string, error) {
	return g.run("status", "--short")
}

// AddAll stages every change in the working tree, including untracked
// files and deletions.
func (g *Git) AddAll() error {
	_, err := g.run("add", "-A")
	return err
}

// HasStagedChanges reports whether the index differs from HEAD.
// `git diff --cached --quiet` exits 1 when there are staged changes,
// 0 when there are none.
//
// In a repository with no commits HEAD does not resolve, which also makes
// the probe fail; in that state anything staged is a change, so the
// staged-file count is checked directly instead.
func (g *Git) HasStagedChanges() (bool, error) {
	if g.HasCommits() {
		return !g.probe("diff", "--cached", "--quiet"), nil
	}

	out, err := g.run("diff", "--cached", "--name-only")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// HasCommits reports whether HEAD resolves to at least one commit.
func (g *Git) HasCommits() bool {
	return g.probe("rev-parse", "--verify", "HEAD")
}

// Commit creates a commit with the given message from the staged changes.
func (g *Git) Commit(message string) error {
	_, err := g.run("commit", "-m", message)
	return err
}

// Push pushes the branch to origin and sets upstream tracking.
func (g *Git) Push(branch string) error {
	_, err := g.run("push", "-u", "origin", branch)
	return err
}

// HasRemote reports whether a remote with the given name is configured.
func (g *Git) HasRemote(name string) bool {
	return g.probe("remote", "get-url", name)
}

// RemoteURL returns the URL of the named remote.
func (g *Git) RemoteURL(name string) (string, error) {
	return g.run("remote", "get-url", name)
}

// HeadHash returns the abbreviated hash of the latest commit.
func (g *Git) HeadHash() (string, error) {
	return g.run("rev-parse", "--short", "HEAD")
}

// HeadSubject returns the subject line of the latest commit message.
func (g *Git) HeadSubject() (string, error) {
	return g.run("log", "-1", "--pretty=%s")
}
