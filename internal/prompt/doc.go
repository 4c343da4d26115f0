// Package prompt provides the single interactive-input capability used by
// the shipit CLI.
//
// Both workflows ask the operator questions (overwrite a file, pick a
// branch name, confirm a deploy). Rather than re-checking terminal state at
// every call site, a Prompter is constructed once: it detects whether an
// interactive input stream is attached and, when it is not, answers every
// question with its default immediately. This keeps the interactive and
// non-interactive branches in one place.
//
// Prompts are written to the Prompter's Out stream (stderr in production
// wiring) so that stdout remains reserved for command output.
package prompt
