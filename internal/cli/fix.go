package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repoconf-labs/repoconf/internal/engine"
)

var (
	fixDryRun bool
	fixTools  []string
)

func init() {
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "Report what would change without writing")
	fixCmd.Flags().StringSliceVar(&fixTools, "tool", nil, "Restrict to the named tools")
	rootCmd.AddCommand(fixCmd)
}

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Repair missing or drifted managed artifacts",
	Long: `Rewrite the artifacts that check would flag as missing or drifted.
Unlike sync, fix never removes stale blocks; it only restores what should
already be there. The summary counts what this run actually repaired.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, _, err := loadEngine()
		if err != nil {
			return err
		}
		report, err := e.Fix(engine.SyncOptions{DryRun: fixDryRun, Tools: fixTools})
		if err != nil {
			return err
		}
		printReport(cmd, report)
		if !report.Succeeded() {
			return fmt.Errorf("some repairs failed")
		}
		return nil
	},
}
