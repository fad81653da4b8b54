// Package engine provides the core business logic for reorg runs.
//
// The engine is the orchestration layer between the CLI commands and
// the lower-level packages: it reads the review workbook, hands the
// declarations to the planner, and drives execution; for the snapshot
// side it produces the directory record and writes the workbook.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/haslund/reorg/internal/fsops"
	"github.com/haslund/reorg/internal/planner"
	"github.com/haslund/reorg/internal/sheet"
	"github.com/haslund/reorg/internal/snapshot"
)

// Engine orchestrates reorg operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs  fsops.FS
	log *slog.Logger
}

// New creates a new Engine with the given dependencies.
func New(fs fsops.FS, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{fs: fs, log: log}
}

// Algorithm steps:
// 1. Open the workbook and pick the worksheet
// 2. Convert rows into the declared action set
// 3. Surface unaddressed-path warnings (non-fatal)
// 4. Resolve, prioritize, and perform the actions
func (e *Engine) Migrate(ctx context.Context, req *MigrateRequest) (*MigrateResult, error) {
	f, err := sheet.Open(req.WorkbookPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	sheetName, err := sheet.PickSheet(f, req.SheetName)
	if err != nil {
		return nil, err
	}

	actions, warnings, err := sheet.ToActions(f, sheetName)
	if err != nil {
		return nil, err
	}
	for _, warning := range warnings {
		e.log.Warn(warning)
	}

	result := &MigrateResult{
		Declared: len(actions),
		Warnings: warnings,
		DryRun:   req.DryRun,
	}

	performed, err := planner.PerformAll(e.fs, e.log, actions, req.DryRun)
	result.Performed = len(performed)
	if err != nil {
		return result, err
	}
	return result, nil
}

// Algorithm steps:
// 1. Verify the directory exists
// 2. Snapshot it, via tree(1) unless unavailable or disabled
// 3. Write the review workbook
func (e *Engine) Snapshot(ctx context.Context, req *SnapshotRequest) (*SnapshotResult, error) {
	isDir, err := e.fs.IsDir(req.Directory)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, fmt.Errorf("%s is not a directory", req.Directory)
	}

	var entries []snapshot.Entry
	usedTree := false
	if !req.NoTree && len(req.Excludes) == 0 && snapshot.TreeAvailable() {
		entries, err = snapshot.ReadTree(ctx, req.Directory)
		usedTree = err == nil
		if err != nil {
			e.log.Warn("tree failed, falling back to walker", "error", err)
		}
	}
	if !usedTree {
		entries, err = snapshot.Scan(e.fs, req.Directory, req.Excludes)
		if err != nil {
			return nil, err
		}
	}

	if err := sheet.Write(entries, req.WorkbookPath, req.SheetName); err != nil {
		return nil, err
	}

	return &SnapshotResult{
		Paths:        len(snapshot.Index(entries)),
		WorkbookPath: req.WorkbookPath,
		UsedTree:     usedTree,
	}, nil
}
