// Package run provides typed external command invocation for the shipit CLI.
//
// Every external tool shipit talks to (git, gh, brew, ssh) is an opaque
// collaborator: a binary invoked with an explicit argument list that returns
// an exit status and, optionally, stdout. This package centralizes that
// contract behind the Runner interface so that:
//
//   - arguments are always passed as a list, never interpolated into a
//     shell string
//   - captured invocations return trimmed stdout and wrap stderr into the
//     error for diagnostics
//   - interactive invocations (gh auth login, brew install, ssh) attach
//     the process's own stdin/stdout/stderr
//
// Orchestration packages accept a Runner, which lets tests substitute a
// scripted fake (see runtest) without spawning processes.
package run
