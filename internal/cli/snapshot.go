package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/haslund/reorg/internal/engine"
	"github.com/haslund/reorg/internal/sheet"
)

var (
	snapshotSheet    string
	snapshotExcludes []string
	snapshotNoTree   bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <directory> <workbook.xlsx>",
	Short: "Record a directory tree into a review workbook",
	Long: `Walk the directory (via the external tree tool when available) and write
one row per file and folder into a new xlsx workbook, ready for a reviewer
to annotate with actions and targets.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		dir, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve directory: %w", err)
		}
		workbook, err := filepath.Abs(args[1])
		if err != nil {
			return fmt.Errorf("failed to resolve workbook path: %w", err)
		}

		req := &engine.SnapshotRequest{
			Directory:    dir,
			WorkbookPath: workbook,
			SheetName:    snapshotSheet,
			Excludes:     snapshotExcludes,
			NoTree:       snapshotNoTree,
		}

		result, err := eng.Snapshot(context.Background(), req)
		if err != nil {
			return err
		}

		PrintSuccess(fmt.Sprintf("Recorded %s", PrintCount(result.Paths, "path", "paths")))
		PrintLabelValue("Workbook", result.WorkbookPath)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotSheet, "sheet", sheet.DefaultSheetName, "Worksheet name")
	snapshotCmd.Flags().StringSliceVar(&snapshotExcludes, "exclude", nil, "Glob pattern to leave out (implies the built-in walker; repeatable)")
	snapshotCmd.Flags().BoolVar(&snapshotNoTree, "no-tree", false, "Use the built-in walker even if tree is installed")
}
