// Package publish orchestrates the repository publish workflow: bring the
// working directory to a state where its current changes exist as a commit
// on a named branch of the "origin" remote.
//
// The workflow is a linear sequence of phases, each of which re-queries
// repository state from the git CLI rather than trusting an earlier
// snapshot, and each of which treats an external failure as fatal to the
// whole run. There is no retry and no rollback: the repository is left
// exactly as the last external tool left it.
//
// Phase outputs flow through return values (the resolved branch name from
// CommitAndPush feeds Summarize and the deployment phase); nothing is
// threaded through ambient mutable state.
package publish
