package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/haslund/reorg/internal/engine"
)

var (
	migrateSheet  string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <workbook.xlsx>",
	Short: "Execute the actions declared in a review workbook",
	Long: `Read the action table from the workbook, resolve conflicts between
actions declared at different depths of the same tree, and perform the
resulting filesystem operations deepest-first.

With --dry-run every intended mutation is logged and nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		workbook, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve workbook path: %w", err)
		}

		req := &engine.MigrateRequest{
			WorkbookPath: workbook,
			SheetName:    migrateSheet,
			DryRun:       migrateDryRun,
		}

		result, err := eng.Migrate(context.Background(), req)
		if err != nil {
			if result != nil && result.Performed > 0 {
				PrintWarning(fmt.Sprintf("Aborted after %s; completed actions are not rolled back",
					PrintCount(result.Performed, "action", "actions")))
			}
			return err
		}

		for _, warning := range result.Warnings {
			PrintWarning(warning)
		}

		if migrateDryRun {
			PrintInfo(fmt.Sprintf("Dry run: would perform %s", PrintCount(result.Performed, "action", "actions")))
			return nil
		}

		PrintSuccess(fmt.Sprintf("Performed %s", PrintCount(result.Performed, "action", "actions")))
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateSheet, "sheet", "", "Worksheet to read (default: active sheet)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Log intended actions without touching the filesystem")
}
