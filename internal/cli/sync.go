package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repoconf-labs/repoconf/internal/engine"
)

var (
	syncDryRun bool
	syncTools  []string
)

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Report what would change without writing")
	syncCmd.Flags().StringSliceVar(&syncTools, "tool", nil, "Restrict to the named tools")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Converge all managed artifacts to the rule registry",
	Long: `Render every enabled tool's configuration from the rule registry and
write it into the repository. Content outside managed blocks is preserved.
Stale entries from removed rules are cleaned up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, _, err := loadEngine()
		if err != nil {
			return err
		}
		report, err := e.Sync(engine.SyncOptions{DryRun: syncDryRun, Tools: syncTools})
		if err != nil {
			return err
		}
		printReport(cmd, report)
		if !report.Succeeded() {
			return fmt.Errorf("some projections failed")
		}
		return nil
	},
}
