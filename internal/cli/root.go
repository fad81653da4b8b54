package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd is the root command for reorg.
var rootCmd = &cobra.Command{
	Use:     "reorg",
	Version: "dev",
	Short:   "Sheet-driven bulk filesystem reorganization",
	Long: `reorg plans and executes bulk filesystem reorganizations driven by a
reviewed spreadsheet.

'reorg snapshot' records a directory tree into an xlsx workbook. A reviewer
annotates each path with an action (Ignore, Copy, Move, Delete) and an
optional target; 'reorg migrate' then resolves the annotations into a
conflict-free, ordered set of filesystem operations and performs them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion sets the version reported by the root command.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the reorg CLI version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(os.Stdout, rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(migrateCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
