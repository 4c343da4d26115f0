package publish

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/shinji-kodama/shipit/internal/git"
	"github.com/shinji-kodama/shipit/internal/hub"
	"github.com/shinji-kodama/shipit/internal/model"
	"github.com/shinji-kodama/shipit/internal/prompt"
)

// Options pre-seed the prompt defaults of the publish workflow. Zero
// values fall back to the built-in defaults (current branch, "update").
type Options struct {
	// Branch overrides the default target branch offered at the prompt.
	Branch string

	// Message overrides the default commit message offered at the prompt.
	Message string
}

// Publisher runs the publish phases against one working directory.
type Publisher struct {
	git      *git.Git
	hub      *hub.Hub
	prompter *prompt.Prompter
	out      io.Writer
	opts     Options
}

// New creates a Publisher.
func New(g *git.Git, h *hub.Hub, p *prompt.Prompter, out io.Writer, opts Options) *Publisher {
	return &Publisher{git: g, hub: h, prompter: p, out: out, opts: opts}
}

// EnsureRepository is phase 1: local repository, GitHub CLI, GitHub
// authentication, and an "origin" remote all exist when it returns nil.
func (p *Publisher) EnsureRepository() error {
	if !p.git.IsRepo() {
		fmt.Fprintln(p.out, "No git repository found, initializing one.")
		if err := p.git.Init(); err != nil {
			return err
		}
	}

	if err := p.hub.EnsureInstalled(p.prompter); err != nil {
		return err
	}
	if err := p.hub.EnsureAuthenticated(p.prompter); err != nil {
		return err
	}

	if p.git.HasRemote("origin") {
		return nil
	}

	defaultName := filepath.Base(p.git.Dir())
	name, err := p.prompter.String("Remote repository name", defaultName)
	if err != nil {
		return err
	}

	// When commits already exist, repository creation also pushes them;
	// an empty history is created without pushing because gh rejects
	// --push on a repository with no commits.
	push := p.git.HasCommits()
	fmt.Fprintf(p.out, "Creating private repository %q on GitHub.\n", name)
	if err := p.hub.CreateRepo(name, push); err != nil {
		return err
	}
	return nil
}

// CommitAndPush is phase 2: select or create the target branch, stage and
// commit pending changes, and push the branch to origin with upstream
// tracking. Returns the resolved branch name for the later phases.
func (p *Publisher) CommitAndPush() (string, error) {
	branches, err := p.git.Branches()
	if err != nil {
		return "", err
	}
	if len(branches) > 0 {
		fmt.Fprintln(p.out, "Local branches:")
		for _, b := range branches {
			fmt.Fprintf(p.out, "  %s\n", b)
		}
	} else {
		// Fresh repository: no refs yet. Establish "main" as the
		// working branch before anything else.
		fmt.Fprintln(p.out, "No branches yet, creating \"main\".")
		if err := p.git.CreateBranch("main"); err != nil {
			return "", err
		}
	}

	current, err := p.git.CurrentBranch()
	if err != nil {
		return "", err
	}

	defaultBranch := current
	if p.opts.Branch != "" {
		defaultBranch = p.opts.Branch
	}
	branch, err := p.prompter.String("Target branch", defaultBranch)
	if err != nil {
		return "", err
	}

	if branch != current {
		if p.git.BranchExists(branch) {
			if err := p.git.Switch(branch); err != nil {
				return "", err
			}
		} else {
			if err := p.git.CreateBranch(branch); err != nil {
				return "", err
			}
		}
	}

	status, err := p.git.Status()
	if err != nil {
		return "", err
	}
	if status != "" {
		fmt.Fprintln(p.out, "Working tree changes:")
		fmt.Fprintln(p.out, status)
	} else {
		fmt.Fprintln(p.out, "Working tree is clean.")
	}

	ok, err := p.prompter.Confirm("Stage all changes?", true)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", model.NewCLIError(model.ExitUserDeclined, "staging declined, aborting")
	}
	if err := p.git.AddAll(); err != nil {
		return "", err
	}

	defaultMessage := "update"
	if p.opts.Message != "" {
		defaultMessage = p.opts.Message
	}
	message, err := p.prompter.String("Commit message", defaultMessage)
	if err != nil {
		return "", err
	}

	staged, err := p.git.HasStagedChanges()
	if err != nil {
		return "", err
	}
	if staged {
		if err := p.git.Commit(message); err != nil {
			return "", err
		}
	} else {
		fmt.Fprintln(p.out, "Nothing staged, skipping commit.")
	}

	// A branch with no commits at all has nothing git can push; report
	// the no-op instead of letting the push fail on an unborn HEAD.
	if !p.git.HasCommits() {
		fmt.Fprintf(p.out, "Branch %s has no commits, nothing to push.\n", branch)
		return branch, nil
	}

	fmt.Fprintf(p.out, "Pushing %s to origin.\n", branch)
	if err := p.git.Push(branch); err != nil {
		return "", err
	}
	return branch, nil
}

// Summarize is phase 3: collect the summary values for the run.
// Every lookup is best-effort; a failed one renders as its placeholder
// marker and never aborts the run.
func (p *Publisher) Summarize(branch string) *model.PublishResult {
	result := &model.PublishResult{
		Branch:        branch,
		RemoteURL:     model.ValueNA,
		CommitHash:    model.ValueNone,
		CommitMessage: model.ValueNone,
	}

	if url, err := p.git.RemoteURL("origin"); err == nil {
		result.RemoteURL = url
	}
	if hash, err := p.git.HeadHash(); err == nil {
		result.CommitHash = hash
	}
	if subject, err := p.git.HeadSubject(); err == nil {
		result.CommitMessage = subject
	}
	return result
}
