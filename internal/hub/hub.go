package hub

import (
	"github.com/shinji-kodama/shipit/internal/model"
	"github.com/shinji-kodama/shipit/internal/prompt"
	"github.com/shinji-kodama/shipit/internal/run"
)

// Hub provides GitHub CLI operations for a single working directory.
type Hub struct {
	runner run.Runner
	dir    string
}

// New creates a Hub bound to the given working directory.
func New(runner run.Runner, dir string) *Hub {
	return &Hub{runner: runner, dir: dir}
}

// Installed reports whether the gh binary resolves on PATH.
func (h *Hub) Installed() bool {
	_, err := h.runner.LookPath("gh")
	return err == nil
}

// EnsureInstalled verifies gh is present, offering a brew install when an
// operator is attached. Declining, a failed install, and non-interactive
// absence are all fatal — the publish workflow cannot proceed without gh.
func (h *Hub) EnsureInstalled(p *prompt.Prompter) error {
	if h.Installed() {
		return nil
	}

	if !p.Interactive {
		return model.NewCLIError(model.ExitToolMissing,
			"GitHub CLI (gh) is not installed and cannot be installed non-interactively")
	}

	ok, err := p.Confirm("GitHub CLI (gh) is not installed. Install it with brew?", true)
	if err != nil {
		return err
	}
	if !ok {
		return model.NewCLIError(model.ExitToolMissing,
			"GitHub CLI (gh) is required; installation declined")
	}

	if err := h.runner.RunInteractive(h.dir, "brew", "install", "gh"); err != nil {
		return model.WrapCLIError(model.ExitToolMissing, "failed to install GitHub CLI (gh)", err)
	}
	return nil
}

// Authenticated reports whether the gh session has valid credentials.
// `gh auth status` exits non-zero when unauthenticated.
func (h *Hub) Authenticated() bool {
	_, err := h.runner.Run(h.dir, "gh", "auth", "status")
	return err == nil
}

// EnsureAuthenticated verifies the gh session, offering the login flow
// when an operator is attached. Declining, a failed login, and
// non-interactive absence are all fatal.
func (h *Hub) EnsureAuthenticated(p *prompt.Prompter) error {
	if h.Authenticated() {
		return nil
	}

	if !p.Interactive {
		return model.NewCLIError(model.ExitAuthError,
			"GitHub CLI is not authenticated and cannot log in non-interactively")
	}

	ok, err := p.Confirm("GitHub CLI is not authenticated. Run `gh auth login` now?", true)
	if err != nil {
		return err
	}
	if !ok {
		return model.NewCLIError(model.ExitAuthError,
			"GitHub authentication is required; login declined")
	}

	// The login flow drives its own terminal dialog (browser/device code),
	// so it runs with the process's streams attached.
	if err := h.runner.RunInteractive(h.dir, "gh", "auth", "login"); err != nil {
		return model.WrapCLIError(model.ExitAuthError, "GitHub authentication failed", err)
	}
	return nil
}

// CreateRepo creates a private repository named name from the working
// directory and attaches it as the "origin" remote. When push is true the
// existing local commits are pushed as part of creation; a repository with
// no commits is created without pushing (gh rejects --push on an empty
// history).
func (h *Hub) CreateRepo(name string, push bool) error {
	args := []string{"repo", "create", name, "--private", "--source=.", "--remote=origin"}
	if push {
		args = append(args, "--push")
	}

	if _, err := h.runner.Run(h.dir, "gh", args...); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to create remote repository", err)
	}
	return nil
}
