package mirror

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/shipit/internal/model"
	"github.com/shinji-kodama/shipit/internal/prompt"
)

// DefaultSubtrees are the subtree names mirrored when none are configured.
var DefaultSubtrees = []string{"commands", "scripts", "rules"}

// Plan describes a single mirror invocation. It is constructed once and
// discarded at exit.
type Plan struct {
	// SourceRoot is the directory the subtrees are copied from.
	// It must exist; its absence is a precondition failure.
	SourceRoot string

	// DestRoot is the directory the subtrees are copied into.
	// Created if absent.
	DestRoot string

	// Subtrees are the named subtrees to replicate. A subtree absent
	// from the source root is treated as an empty set of files.
	Subtrees []string
}

// errAborted signals that the traversal stopped on a non-interactive
// conflict. It never escapes Run; the abort reason lives in the result.
var errAborted = errors.New("mirror aborted")

// Trace is called by Run for per-file progress lines. Nil disables tracing.
type Trace func(format string, args ...interface{})

// Run executes the mirror plan.
//
// The returned CopyResult is valid even when err is nil but the run
// aborted: an abort on a non-interactive conflict is a defined outcome,
// reported through CopyResult.AbortReason, and copies completed before the
// conflict are kept. A non-nil error is returned only for precondition and
// I/O failures.
func Run(plan Plan, p *prompt.Prompter, trace Trace) (*model.CopyResult, error) {
	if trace == nil {
		trace = func(string, ...interface{}) {}
	}

	// Precondition: the source root must exist before anything is touched.
	info, err := os.Stat(plan.SourceRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.NewCLIError(model.ExitPreconditionFailed,
				fmt.Sprintf("source root does not exist: %s", plan.SourceRoot))
		}
		return nil, fmt.Errorf("failed to inspect source root %s: %w", plan.SourceRoot, err)
	}
	if !info.IsDir() {
		return nil, model.NewCLIError(model.ExitPreconditionFailed,
			fmt.Sprintf("source root is not a directory: %s", plan.SourceRoot))
	}

	if err := os.MkdirAll(plan.DestRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create destination root %s: %w", plan.DestRoot, err)
	}

	subtrees := plan.Subtrees
	if len(subtrees) == 0 {
		subtrees = DefaultSubtrees
	}

	result := &model.CopyResult{}
	for _, subtree := range subtrees {
		if err := mirrorSubtree(plan, subtree, p, trace, result); err != nil {
			if errors.Is(err, errAborted) {
				// Defined outcome: stop the whole run, keep what was
				// copied, report the reason.
				return result, nil
			}
			return result, err
		}
	}
	return result, nil
}

// mirrorSubtree copies one named subtree. Returns errAborted when a
// non-interactive conflict halts the run.
func mirrorSubtree(plan Plan, subtree string, p *prompt.Prompter, trace Trace, result *model.CopyResult) error {
	srcRoot := filepath.Join(plan.SourceRoot, subtree)
	if _, err := os.Stat(srcRoot); os.IsNotExist(err) {
		// An absent subtree is an empty set of files, not an error.
		trace("subtree %s not present in source, skipping", subtree)
		return nil
	}

	return filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}
		dest := filepath.Join(plan.DestRoot, subtree, rel)

		decision, err := resolveConflict(dest, plan.SourceRoot, p)
		if err != nil {
			return err
		}

		switch decision {
		case model.DecisionAbort:
			result.AbortReason = fmt.Sprintf("conflict at %s in non-interactive mode", dest)
			return errAborted
		case model.DecisionSkip:
			trace("skipped %s", dest)
			result.Skipped++
			return nil
		default:
			if err := copyFile(path, dest); err != nil {
				return err
			}
			trace("copied %s", dest)
			result.Copied++
			return nil
		}
	})
}

// resolveConflict decides what to do with a single destination path.
// A missing destination is an unconditional overwrite (plain copy); an
// existing one is resolved by policy: prompt with a "no" default when an
// operator is attached, abort when not.
func resolveConflict(dest, sourceRoot string, p *prompt.Prompter) (model.ConflictDecision, error) {
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return model.DecisionOverwrite, nil
	}

	if !p.Interactive {
		return model.DecisionAbort, nil
	}

	ok, err := p.Confirm(
		fmt.Sprintf("Overwrite %s with the copy from %s?", dest, sourceRoot), false)
	if err != nil {
		return "", err
	}
	if ok {
		return model.DecisionOverwrite, nil
	}
	return model.DecisionSkip, nil
}

// copyFile streams src to dest, creating missing parent directories and
// preserving the source file mode.
func copyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dest, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", dest, err)
	}
	return nil
}
