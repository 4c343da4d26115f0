// Package mirror implements the conflict-aware tree copy workflow.
//
// A mirror run replicates a fixed set of named subtrees (by default
// commands, scripts, rules) from a source root into a destination root,
// preserving relative paths. The destination is never silently
// overwritten: every pre-existing destination file is a conflict, resolved
// by asking the operator when a terminal is attached, and by aborting the
// entire run when one is not. Identical content is still a conflict —
// the tool does not compare file contents.
//
// Each subtree is traversed exactly once with filepath.WalkDir. Copies
// completed before an abort are kept; there is no rollback.
package mirror
