package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/shipit/internal/config"
	"github.com/shinji-kodama/shipit/internal/mirror"
	"github.com/shinji-kodama/shipit/internal/model"
	"github.com/shinji-kodama/shipit/internal/prompt"
)

// NewMirrorCommand creates the mirror subcommand.
//
// The command copies the configured subtrees from a source tooling
// directory into the project, prompting before overwriting any file that
// already exists at the destination. Without a terminal attached the
// first conflict aborts the run.
func NewMirrorCommand() *cobra.Command {
	var (
		fromFlag     string
		toFlag       string
		subtreeFlags []string
	)

	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Copy tooling subtrees into the project, asking before overwriting",
		Long: `Copy the commands, scripts and rules subtrees of a local tooling
directory into the project.

Files that do not exist at the destination are copied unconditionally.
For each file that already exists you are asked whether to overwrite it;
answering no (the default) keeps the destination copy. When no terminal
is attached the first conflict aborts the run, keeping everything copied
up to that point.

Source, destination and subtree names come from flags, falling back to
the project configuration file (shipit.json/.jsonc/.yaml/.yml) and then
to the built-in defaults (~/.shipit into ./.shipit).`,
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

			plan, err := buildMirrorPlan(cwd, cfg, fromFlag, toFlag, subtreeFlags)
			if err != nil {
				return err
			}
			VerboseLog("mirroring %v from %s into %s", plan.Subtrees, plan.SourceRoot, plan.DestRoot)

			prompter := prompt.New()
			result, err := mirror.Run(plan, prompter, Trace(VerboseLog))
			if err != nil {
				return err
			}

			printMirrorResult(cmd, result)

			// An abort is a defined outcome of the copy, but still a
			// failed run for the caller's exit status.
			if result.Aborted() {
				return model.NewCLIError(model.ExitConflictAborted, result.AbortReason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "Source root to mirror from (default ~/.shipit)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Destination root to mirror into (default ./.shipit)")
	cmd.Flags().StringSliceVar(&subtreeFlags, "subtree", nil, "Subtree to mirror (repeatable; default commands,scripts,rules)")

	return cmd
}

// Trace adapts a printf-style function to the mirror trace callback.
func Trace(fn func(format string, args ...interface{})) mirror.Trace {
	return func(format string, args ...interface{}) {
		fn(format, args...)
	}
}

// buildMirrorPlan resolves the mirror plan from flags, configuration and
// defaults, in that order of precedence.
func buildMirrorPlan(cwd string, cfg *config.Config, fromFlag, toFlag string, subtreeFlags []string) (mirror.Plan, error) {
	source := fromFlag
	if source == "" {
		source = cfg.Mirror.Source
	}
	if source == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return mirror.Plan{}, fmt.Errorf("failed to determine home directory: %w", err)
		}
		source = filepath.Join(home, ".shipit")
	}

	dest := toFlag
	if dest == "" {
		dest = cfg.Mirror.Dest
	}
	if dest == "" {
		dest = filepath.Join(cwd, ".shipit")
	}

	subtrees := subtreeFlags
	if len(subtrees) == 0 {
		subtrees = cfg.Mirror.Subtrees
	}
	// An empty slice here falls through to mirror.DefaultSubtrees.

	return mirror.Plan{SourceRoot: source, DestRoot: dest, Subtrees: subtrees}, nil
}

// printMirrorResult outputs the copy counts in text or JSON format.
func printMirrorResult(cmd *cobra.Command, result *model.CopyResult) {
	if IsJSONOutput() {
		obj := map[string]interface{}{
			"copied":  result.Copied,
			"skipped": result.Skipped,
			"status":  result.StatusLine(),
		}
		if result.Aborted() {
			obj["abortReason"] = result.AbortReason
		}
		data, _ := json.MarshalIndent(obj, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Copied: %d file(s)\n", result.Copied)
	fmt.Fprintf(cmd.OutOrStdout(), "Skipped: %d file(s)\n", result.Skipped)
	fmt.Fprintf(cmd.OutOrStdout(), "Status: %s\n", result.StatusLine())
}
