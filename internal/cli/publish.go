package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/shipit/internal/config"
	"github.com/shinji-kodama/shipit/internal/deploy"
	"github.com/shinji-kodama/shipit/internal/git"
	"github.com/shinji-kodama/shipit/internal/hub"
	"github.com/shinji-kodama/shipit/internal/model"
	"github.com/shinji-kodama/shipit/internal/prompt"
	"github.com/shinji-kodama/shipit/internal/publish"
	"github.com/shinji-kodama/shipit/internal/run"
)

// NewPublishCommand creates the publish subcommand.
//
// The command walks the working directory through the publish phases in
// order: repository bootstrap (git init, gh install/login, remote
// creation), branch selection with commit and push, the run summary, and
// the optional deployment. Each phase re-queries git instead of trusting
// state observed by an earlier phase.
func NewPublishCommand() *cobra.Command {
	var (
		messageFlag string
		branchFlag  string
		yesFlag     bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Commit the project, push it to GitHub, and optionally deploy",
		Long: `Commit the working directory to a git repository and push it to GitHub.

Missing pieces are created along the way: a git repository is initialized
if none exists, the GitHub CLI is installed and authenticated with your
confirmation, and a private repository is created as the "origin" remote
when the project has none.

You are prompted for the target branch and the commit message; --branch
and --message pre-seed those prompts. After the push a summary of the
remote URL and the latest commit is printed.

When a deploy host is configured (shipit config file or the
SHIPIT_DEPLOY_* environment variables) you are offered a deployment to
that host over ssh. Deployment never runs without a terminal attached.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to determine working directory: %w", err)
			}

			cfg, err := config.Load(cwd)
			if err != nil {
				return err
			}

			runner := run.NewExecRunner()
			prompter := prompt.New()
			prompter.AssumeYes = yesFlag
			g := git.New(runner, cwd)
			h := hub.New(runner, cwd)

			out := cmd.OutOrStdout()
			pub := publish.New(g, h, prompter, out, publish.Options{
				Branch:  branchFlag,
				Message: messageFlag,
			})

			VerboseLog("publishing %s", cwd)
			if err := pub.EnsureRepository(); err != nil {
				return err
			}

			branch, err := pub.CommitAndPush()
			if err != nil {
				return err
			}

			result := pub.Summarize(branch)
			printPublishResult(cmd, result)

			target := deploy.ResolveTarget(cfg, os.Getenv)
			deployed, err := deploy.NewDeployer(runner).Deploy(target, branch, prompter)
			if err != nil {
				return err
			}
			if deployed {
				fmt.Fprintf(out, "Deployed %s to %s:%s\n", branch, target.Address(), target.RemotePath())
			}

			if !IsJSONOutput() {
				fmt.Fprintln(out, "Done")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&messageFlag, "message", "m", "", "Default commit message offered at the prompt")
	cmd.Flags().StringVarP(&branchFlag, "branch", "b", "", "Default target branch offered at the prompt")
	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Answer yes to every confirmation prompt")

	return cmd
}

// printPublishResult outputs the run summary in text or JSON format.
func printPublishResult(cmd *cobra.Command, result *model.PublishResult) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Branch: %s\n", result.Branch)
	fmt.Fprintf(cmd.OutOrStdout(), "Remote: %s\n", result.RemoteURL)
	fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", result.CommitHash)
	fmt.Fprintf(cmd.OutOrStdout(), "Message: %s\n", result.CommitMessage)
}
