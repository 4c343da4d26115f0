// Package model defines the domain types and value objects for the
// shipit CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (CopyResult, RepoState, DeployTarget, PublishResult) are
// process-local and transient — repository state is re-queried from the
// git CLI at each phase, never cached across phases.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
