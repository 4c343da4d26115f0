// Package hub wraps the GitHub CLI (gh) and its installation path for the
// shipit publish workflow.
//
// Three prerequisites are bootstrapped here, each offered interactively
// and fatal when declined, failed, or unavailable non-interactively:
//
//   - gh must be installed (offered via `brew install gh`)
//   - the gh session must be authenticated (offered via `gh auth login`)
//   - a private remote repository can be created and attached as "origin"
//     (`gh repo create`)
//
// gh and brew are opaque collaborators invoked through run.Runner; the
// login and install flows run interactively because they drive their own
// terminal dialogs.
package hub
