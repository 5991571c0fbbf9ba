package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repoconf-labs/repoconf/internal/engine"
)

var checkTools []string

func init() {
	checkCmd.Flags().StringSliceVar(&checkTools, "tool", nil, "Restrict to the named tools")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report the state of every managed artifact without writing",
	Long: `Classify each projected artifact as healthy, missing, drifted, or
unmanaged. Check never modifies the repository; it exits non-zero when
anything needs attention, so it suits CI gates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, _, err := loadEngine()
		if err != nil {
			return err
		}
		report, err := e.Check(engine.SyncOptions{Tools: checkTools})
		if err != nil {
			return err
		}
		printReport(cmd, report)
		if !report.Clean() {
			return fmt.Errorf("managed artifacts are out of sync")
		}
		return nil
	},
}
