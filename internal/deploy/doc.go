// Package deploy implements the optional remote deployment phase of the
// publish workflow.
//
// The deployment target (host, user, remote path) comes from the project
// configuration file with environment-variable overrides; an unset host
// disables the phase entirely. Deployment never happens unattended: a
// non-interactive run always skips it, and an interactive run requires
// explicit confirmation with a "no" default.
//
// The remote procedure is modeled as a sequence of typed steps rather than
// an inline script string. Render turns the steps into a shell script that
// is executed via `ssh <user@host> bash -c <script>`, keeping the ssh
// binary an opaque collaborator and the procedure inspectable in tests.
package deploy
