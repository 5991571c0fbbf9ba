package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/repoconf-labs/repoconf/internal/config"
	"github.com/repoconf-labs/repoconf/internal/engine"
	"github.com/repoconf-labs/repoconf/internal/rules"
)

// loadEngine locates the project from the working directory and builds an
// engine over its registry and enabled tools.
func loadEngine() (*engine.Engine, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("resolving working directory: %w", err)
	}
	root, err := config.FindRoot(cwd)
	if err != nil {
		return nil, "", err
	}
	project, err := config.LoadProject(root)
	if err != nil {
		return nil, "", err
	}
	reg, err := rules.LoadOrCreate(config.RegistryPath(root))
	if err != nil {
		return nil, "", err
	}
	e := engine.New(root, reg, project.Tools, engine.Options{
		Storage:    config.StorageOptions(),
		LedgerPath: config.LedgerPath(root),
	})
	return e, root, nil
}

// printReport renders a projection report as an aligned table followed by
// outcome totals.
func printReport(cmd *cobra.Command, report engine.Report) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, it := range report.Items {
		target := it.Path
		if it.Block != "" {
			target += "#" + it.Block
		}
		status := string(it.State)
		if it.Outcome != "" {
			status = string(it.Outcome)
		}
		detail := it.Action
		if it.Err != nil {
			detail = it.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.Tool, target, status, detail)
	}
	w.Flush()

	c := report.Counts()
	label := ""
	if report.DryRun {
		label = " (dry run)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d healthy, %d fixed, %d failed, %d skipped%s\n",
		c.Healthy, c.Fixed, c.Failed, c.Skipped, label)
}
