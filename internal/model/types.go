package model

import (
	"fmt"
	"strings"
)

// ConflictDecision represents the resolution chosen for a single file
// conflict during a mirror run. A conflict occurs whenever the destination
// file already exists — identical content is still a conflict, because the
// mirror tool never compares content hashes.
type ConflictDecision string

const (
	// DecisionOverwrite copies the source file over the destination.
	DecisionOverwrite ConflictDecision = "overwrite"

	// DecisionSkip leaves the destination file untouched.
	DecisionSkip ConflictDecision = "skip"

	// DecisionAbort halts the entire traversal. This is the mandatory
	// outcome for conflicts encountered in non-interactive mode, where
	// silently overwriting (or silently skipping) would hide the conflict.
	DecisionAbort ConflictDecision = "abort"
)

// String returns the string representation of ConflictDecision.
func (d ConflictDecision) String() string {
	return string(d)
}

// IsValid checks whether the ConflictDecision value is one of the
// predefined valid decisions.
func (d ConflictDecision) IsValid() bool {
	switch d {
	case DecisionOverwrite, DecisionSkip, DecisionAbort:
		return true
	default:
		return false
	}
}

// ParseConflictDecision converts a string to a ConflictDecision.
// Returns an error if the string does not match any valid decision.
func ParseConflictDecision(s string) (ConflictDecision, error) {
	d := ConflictDecision(strings.ToLower(s))
	if !d.IsValid() {
		return "", fmt.Errorf("invalid conflict decision: %q (valid: overwrite, skip, abort)", s)
	}
	return d, nil
}

// CopyResult accumulates the outcome of a mirror run.
//
// Invariant: Copied and Skipped only ever increase, and their sum equals
// the number of files visited in the source tree up to the point the
// traversal stopped (either completion or abort).
type CopyResult struct {
	// Copied is the number of files written to the destination,
	// including conflict overwrites confirmed by the operator.
	Copied int `json:"copied"`

	// Skipped is the number of conflicting files left untouched
	// after the operator declined to overwrite them.
	Skipped int `json:"skipped"`

	// AbortReason is set when a conflict in non-interactive mode halted
	// the traversal. Empty for runs that visited every source file.
	AbortReason string `json:"abortReason,omitempty"`
}

// Aborted reports whether the run was halted before visiting every file.
func (r *CopyResult) Aborted() bool {
	return r.AbortReason != ""
}

// StatusLine renders the final status line of a mirror run:
// "Success" for complete runs, "Aborted (<reason>)" otherwise.
func (r *CopyResult) StatusLine() string {
	if r.Aborted() {
		return fmt.Sprintf("Aborted (%s)", r.AbortReason)
	}
	return "Success"
}

// RepoState is a snapshot of the local repository queried from the git CLI.
// It is rebuilt at each phase that needs it; the publish tool never carries
// a snapshot across phase boundaries, because external git commands it runs
// in between invalidate it.
//
// State only moves forward: a repository, once initialized, is never
// un-initialized by this tool, and branch selection reuses or creates
// branches, never deletes them.
type RepoState struct {
	// HasRepo indicates a git repository exists at the working directory.
	HasRepo bool

	// HasOrigin indicates a remote named "origin" is configured.
	HasOrigin bool

	// CurrentBranch is the checked-out branch name. May be set even when
	// HasCommits is false (a fresh repository has an unborn branch).
	CurrentBranch string

	// HasCommits indicates HEAD resolves to at least one commit.
	HasCommits bool
}

// DeployTarget describes the optional remote deployment destination,
// sourced from project configuration and environment variables.
// An empty Host disables the deployment phase entirely.
type DeployTarget struct {
	// Host is the remote machine to deploy to. Required to activate
	// the deployment phase.
	Host string `json:"host,omitempty"`

	// User is the remote account. Defaults to DefaultDeployUser.
	User string `json:"user,omitempty"`

	// Path is the remote project directory. Defaults to DefaultDeployPath.
	Path string `json:"path,omitempty"`
}

const (
	// DefaultDeployUser is the remote account used when none is configured.
	DefaultDeployUser = "deploy"

	// DefaultDeployPath is the remote project directory used when none
	// is configured.
	DefaultDeployPath = "/srv/app"
)

// Enabled reports whether deployment is configured at all.
func (t DeployTarget) Enabled() bool {
	return t.Host != ""
}

// Address returns the ssh destination in user@host form, applying the
// default user when unset.
func (t DeployTarget) Address() string {
	user := t.User
	if user == "" {
		user = DefaultDeployUser
	}
	return user + "@" + t.Host
}

// RemotePath returns the configured remote directory, applying the
// default when unset.
func (t DeployTarget) RemotePath() string {
	if t.Path == "" {
		return DefaultDeployPath
	}
	return t.Path
}

// PublishResult holds the summary values reported at the end of a publish
// run. Every field is best-effort: lookups that fail render as the explicit
// markers below rather than aborting the run.
type PublishResult struct {
	// Branch is the resolved branch the changes were pushed to.
	Branch string `json:"branch"`

	// RemoteURL is the URL of the "origin" remote, or "N/A".
	RemoteURL string `json:"remoteUrl"`

	// CommitHash is the abbreviated hash of the latest commit, or "none".
	CommitHash string `json:"commitHash"`

	// CommitMessage is the subject line of the latest commit, or "none".
	CommitMessage string `json:"commitMessage"`
}

// Placeholder values used by PublishResult for lookups that failed.
const (
	// ValueNA marks a remote URL that could not be determined.
	ValueNA = "N/A"

	// ValueNone marks a commit hash or message on a branch with no commits.
	ValueNone = "none"
)

// ExitCode defines standard CLI exit codes. These codes allow scripts and
// CI systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitPreconditionFailed indicates a required input (such as the
	// mirror source root) was missing before any side effect occurred.
	ExitPreconditionFailed ExitCode = 2

	// ExitGitError indicates a git operation failed.
	ExitGitError ExitCode = 3

	// ExitToolMissing indicates a required external tool (gh) is not
	// installed and could not be installed.
	ExitToolMissing ExitCode = 4

	// ExitAuthError indicates the GitHub CLI session is unauthenticated
	// and the login flow was declined or failed.
	ExitAuthError ExitCode = 5

	// ExitConflictAborted indicates a non-interactive mirror run hit a
	// file conflict and halted.
	ExitConflictAborted ExitCode = 6

	// ExitUserDeclined indicates the operator declined a confirmation
	// that the workflow cannot proceed without.
	ExitUserDeclined ExitCode = 7

	// ExitDeployError indicates the remote deployment procedure failed.
	ExitDeployError ExitCode = 8
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
