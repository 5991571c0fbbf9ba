package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/repoconf-labs/repoconf/internal/config"
	"github.com/repoconf-labs/repoconf/internal/tools"
)

func init() {
	rootCmd.AddCommand(toolsCmd)
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List supported tool integrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled := map[string]bool{}
		if cwd, err := os.Getwd(); err == nil {
			if root, err := config.FindRoot(cwd); err == nil {
				if project, err := config.LoadProject(root); err == nil {
					for _, name := range project.Tools {
						enabled[name] = true
					}
				}
			}
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TOOL\tENABLED")
		for _, name := range tools.Names() {
			state := "no"
			if enabled[name] {
				state = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\n", name, state)
		}
		return w.Flush()
	},
}
