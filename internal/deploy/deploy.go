package deploy

import (
	"fmt"
	"strings"

	"github.com/shinji-kodama/shipit/internal/config"
	"github.com/shinji-kodama/shipit/internal/model"
	"github.com/shinji-kodama/shipit/internal/prompt"
	"github.com/shinji-kodama/shipit/internal/run"
)

// Environment variable names overriding the configured deploy target.
const (
	// EnvHost activates the deployment phase when set.
	EnvHost = "SHIPIT_DEPLOY_HOST"

	// EnvUser overrides the remote account.
	EnvUser = "SHIPIT_DEPLOY_USER"

	// EnvPath overrides the remote project directory.
	EnvPath = "SHIPIT_DEPLOY_PATH"
)

// Env looks up environment variables. Tests substitute a map lookup.
type Env func(key string) string

// ResolveTarget combines the configured deploy target with environment
// overrides. Environment variables win over the configuration file;
// user and path defaults are applied by the DeployTarget accessors, not
// here, so the resolved struct still shows what was explicitly set.
func ResolveTarget(cfg *config.Config, env Env) model.DeployTarget {
	target := cfg.Deploy
	if host := env(EnvHost); host != "" {
		target.Host = host
	}
	if user := env(EnvUser); user != "" {
		target.User = user
	}
	if path := env(EnvPath); path != "" {
		target.Path = path
	}
	return target
}

// Step is one typed operation of the remote procedure.
type Step interface {
	// Render emits the shell fragment for this step.
	Render() string
}

// StepChangeDir changes to the remote project directory. The procedure
// cannot continue if the directory is missing, so the cd failure message
// is explicit.
type StepChangeDir struct {
	// Path is the remote directory to enter.
	Path string
}

// Render implements Step.
func (s StepChangeDir) Render() string {
	return fmt.Sprintf("cd %s || { echo 'remote path %s does not exist'; exit 1; }",
		shellQuote(s.Path), s.Path)
}

// StepPullIfRepo pulls the just-pushed branch when a git checkout is
// present at the remote path; otherwise it reports that no automated
// deployment path exists and a manual or rsync step is required.
type StepPullIfRepo struct {
	// Branch is the branch to pull from origin.
	Branch string
}

// Render implements Step.
func (s StepPullIfRepo) Render() string {
	return strings.Join([]string{
		"if [ -d .git ]; then",
		fmt.Sprintf("  git pull origin %s", shellQuote(s.Branch)),
		"else",
		"  echo 'no git checkout at remote path; manual deployment (e.g. rsync) required'",
		"fi",
	}, "\n")
}

// StepComposeNotice logs a placeholder when container-build configuration
// files are present on the remote. No rebuild is performed.
type StepComposeNotice struct{}

// Render implements Step.
func (s StepComposeNotice) Render() string {
	return strings.Join([]string{
		"if [ -f docker-compose.yml ] || [ -f docker-compose.yaml ] || [ -f Dockerfile ]; then",
		"  echo 'container build files detected; rebuild is not automated, run it manually'",
		"fi",
	}, "\n")
}

// Procedure is the ordered remote step sequence.
type Procedure struct {
	// Steps are rendered and executed in order.
	Steps []Step
}

// DefaultProcedure is the fixed procedure the publish workflow runs:
// enter the remote path, pull the branch if a checkout is present,
// and notice container build files.
func DefaultProcedure(remotePath, branch string) Procedure {
	return Procedure{Steps: []Step{
		StepChangeDir{Path: remotePath},
		StepPullIfRepo{Branch: branch},
		StepComposeNotice{},
	}}
}

// Render emits the full remote script. `set -e` makes any unguarded step
// failure abort the session with a non-zero ssh exit status.
func (p Procedure) Render() string {
	var b strings.Builder
	b.WriteString("set -e\n")
	for _, step := range p.Steps {
		b.WriteString(step.Render())
		b.WriteString("\n")
	}
	return b.String()
}

// shellQuote single-quotes a value for safe inclusion in the rendered
// script. Embedded single quotes are escaped with the '\'' idiom.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Deployer runs the deployment phase.
type Deployer struct {
	runner run.Runner
}

// NewDeployer creates a Deployer using the given runner for ssh.
func NewDeployer(runner run.Runner) *Deployer {
	return &Deployer{runner: runner}
}

// Deploy executes the default remote procedure against the target.
//
// Returns (false, nil) when the phase is disabled or skipped: no host
// configured, non-interactive session (deployment never happens
// unattended), or the operator declined. Returns (true, nil) only after
// the remote procedure completed successfully.
func (d *Deployer) Deploy(target model.DeployTarget, branch string, p *prompt.Prompter) (bool, error) {
	if !target.Enabled() {
		return false, nil
	}

	if !p.Interactive {
		return false, nil
	}

	ok, err := p.Confirm(
		fmt.Sprintf("Deploy branch %s to %s:%s?", branch, target.Address(), target.RemotePath()), false)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	script := DefaultProcedure(target.RemotePath(), branch).Render()

	// The procedure is passed as a `bash -c` argument rather than on
	// stdin so the interactive runner keeps the operator's terminal
	// attached for ssh prompts (host keys, passphrases).
	if err := d.runner.RunInteractive("", "ssh", target.Address(), "bash", "-c", script); err != nil {
		return false, model.WrapCLIError(model.ExitDeployError,
			fmt.Sprintf("deployment to %s failed", target.Address()), err)
	}
	return true, nil
}
