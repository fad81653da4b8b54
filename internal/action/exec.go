package action

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/haslund/reorg/internal/fsops"
	"github.com/haslund/reorg/internal/pathutil"
)

// Executor performs actions against a filesystem. In dry-run mode
// every mutating branch only logs the intended effect; nothing is
// written.
//
// Recursion into directories synthesizes plain child Action values and
// performs them through the same entry point, so an action is atomic
// from the caller's point of view: it either completes its whole tree
// of sub-operations or returns the first error.
type Executor struct {
	fs     fsops.FS
	log    *slog.Logger
	dryRun bool
}

// NewExecutor creates an Executor over the given filesystem.
func NewExecutor(fs fsops.FS, log *slog.Logger, dryRun bool) *Executor {
	if log == nil {
		log = slog.Default()
	}
	return &Executor{fs: fs, log: log, dryRun: dryRun}
}

// DryRun reports whether the executor only simulates mutations.
func (x *Executor) DryRun() bool {
	return x.dryRun
}

// Perform executes a single action according to its kind. Errors from
// the underlying filesystem calls propagate unchanged and are fatal
// for the action.
func (x *Executor) Perform(a *Action) error {
	mode := "perform"
	if x.dryRun {
		mode = "dry-run"
	}
	x.log.Info("about to "+mode, "action", a.String())

	switch a.Kind {
	case Delete:
		if err := x.delete(a); err != nil {
			return err
		}
	case Copy, Move:
		if err := x.migrate(a); err != nil {
			return err
		}
	case Ignore:
		x.log.Info("ignoring source", "path", a.Source)
	case NotDefined:
		return fmt.Errorf("%w: action not defined for %s", ErrInvalidOperation, a.Source)
	default:
		return fmt.Errorf("%w: unknown action %s", ErrInvalidOperation, a.Kind)
	}

	if !x.dryRun {
		x.log.Info("action performed", "action", a.String())
	}
	return nil
}

// delete removes the source: a single unlink for files, a recursive
// removal for directories.
func (x *Executor) delete(a *Action) error {
	if x.dryRun {
		x.log.Info("would delete", "path", a.Source)
		return nil
	}

	info, err := x.fs.Stat(a.Source)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", a.Source, err)
	}
	if info.IsDir() {
		return x.fs.RemoveAll(a.Source)
	}
	return x.fs.Remove(a.Source)
}

// migrate implements the shared Copy/Move algorithm. The branch order
// matters: target-collision and directory-to-file checks run first,
// then the structural cases that re-target and recurse, and finally
// the direct migration of a single file or whole tree.
func (x *Executor) migrate(a *Action) error {
	tgtInfo, err := x.fs.Stat(a.Target)
	tgtExists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat target %s: %w", a.Target, err)
	}
	if tgtExists && !tgtInfo.IsDir() {
		return fmt.Errorf("%w: %s", ErrTargetExists, a)
	}

	srcInfo, err := x.fs.Stat(a.Source)
	if err != nil {
		return fmt.Errorf("failed to stat source %s: %w", a.Source, err)
	}

	if srcInfo.IsDir() && a.targetIsFile {
		return fmt.Errorf("%w: cannot migrate a directory to a file: %s", ErrInvalidOperation, a)
	}

	switch {
	case srcInfo.IsDir() && tgtExists:
		// Target is an existing directory. Same name means the two
		// trees merge element by element; a different name nests the
		// source under the target, keeping its own name.
		if strings.EqualFold(filepath.Base(a.Source), filepath.Base(a.Target)) {
			if err := x.migrateElements(a); err != nil {
				return err
			}
			if a.Kind == Move && !x.dryRun {
				return x.fs.Remove(a.Source)
			}
			return nil
		}
		return x.migrateWithSourceName(a, false)

	case !srcInfo.IsDir() && !a.targetIsFile:
		// The target denotes a containing directory for this file.
		return x.migrateWithSourceName(a, true)

	default:
		return x.migrateDirect(a, srcInfo.IsDir())
	}
}

// migrateWithSourceName re-targets the action to target/source-name and
// performs the nested action.
func (x *Executor) migrateWithSourceName(a *Action, sourceIsFile bool) error {
	nested := a.Clone()
	nested.Target = filepath.Join(a.Target, filepath.Base(a.Source))
	nested.targetIsFile = filepath.Ext(nested.Target) != ""
	if sourceIsFile {
		nested.MarkTargetAsFile()
	}
	return x.Perform(nested)
}

// migrateElements migrates every direct child of the source into the
// target, skipping excluded descendants. Directory children inherit the
// exclusions under their own subtree; file children carry the
// target-is-file mark so an extension-less name is not misread as a
// directory.
func (x *Executor) migrateElements(a *Action) error {
	entries, err := x.fs.ReadDir(a.Source)
	if err != nil {
		return err
	}

	excluded := a.excludedSet()
	for _, entry := range entries {
		childSource := filepath.Join(a.Source, entry.Name())
		if excluded[childSource] {
			continue
		}

		child, err := New(a.Kind, childSource, filepath.Join(a.Target, entry.Name()), a.Priority)
		if err != nil {
			return err
		}
		if entry.IsDir() {
			for p := range excluded {
				if !pathutil.IsAncestor(childSource, p) {
					continue
				}
				if err := child.IgnoreSubfolder(p, false); err != nil {
					return err
				}
			}
		} else {
			child.MarkTargetAsFile()
		}

		if err := x.Perform(child); err != nil {
			return err
		}
	}
	return nil
}

// migrateDirect performs the underlying copy or move once the target
// path is final: file-to-file, or a whole tree to a fresh path.
func (x *Executor) migrateDirect(a *Action, sourceIsDir bool) error {
	parent := filepath.Dir(a.Target)
	parentExists, err := x.fs.Exists(parent)
	if err != nil {
		return err
	}
	if !parentExists {
		if x.dryRun {
			x.log.Info("would create directory path", "path", parent)
		} else if err := x.fs.MkdirAll(parent, 0755); err != nil {
			return fmt.Errorf("failed to create directory path %s: %w", parent, err)
		}
	}

	if x.dryRun {
		x.log.Info("would migrate", "kind", a.Kind.String(), "source", a.Source, "target", a.Target)
		return nil
	}

	switch {
	case a.Kind == Move:
		return x.fs.Move(a.Source, a.Target)
	case sourceIsDir:
		return x.fs.CopyTree(a.Source, a.Target, a.excludedSet())
	default:
		return x.fs.CopyFile(a.Source, a.Target)
	}
}
