// Package git provides the git operations used by the shipit publish
// workflow.
//
// All operations are performed by invoking the git binary in the bound
// working directory through the run.Runner seam, rather than using a Git
// library like go-git. This approach:
//   - Uses the exact same Git behavior the user sees in their terminal
//   - Picks up the user's real configuration and credential helpers,
//     which matters for init, commit identity, and push
//   - Keeps git an opaque collaborator with an argv/exit-status contract
//
// Boolean probes (IsRepo, BranchExists, HasCommits, HasStagedChanges) map
// a non-zero exit status to false. Mutating operations wrap failures in
// model.CLIError with ExitGitError.
package git
