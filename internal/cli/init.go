package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/repoconf-labs/repoconf/internal/branding"
	"github.com/repoconf-labs/repoconf/internal/config"
	"github.com/repoconf-labs/repoconf/internal/rules"
	"github.com/repoconf-labs/repoconf/internal/tools"
)

var initTools string

func init() {
	initCmd.Flags().StringVar(&initTools, "tools", "", "Comma-separated list of tools to enable (default: all)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize " + branding.DisplayName() + " in the current repository",
	Long: `Create the ` + branding.ProjectDir() + `/ directory with a project config and an
empty rule registry. Supported tools: ` + strings.Join(tools.Names(), ", ") + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}

		var names []string
		if initTools != "" {
			names = strings.Split(initTools, ",")
			for i := range names {
				names[i] = strings.TrimSpace(names[i])
			}
		}

		p, err := config.InitProject(cwd, names)
		if err != nil {
			return err
		}

		reg, err := rules.LoadOrCreate(config.RegistryPath(cwd))
		if err != nil {
			return err
		}
		if err := reg.Save(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s in %s\n", branding.DisplayName(), config.ProjectDir(cwd))
		fmt.Fprintf(cmd.OutOrStdout(), "Enabled tools: %s\n", strings.Join(p.Tools, ", "))
		fmt.Fprintf(cmd.OutOrStdout(), "Add a rule with '%s rule add <id> <content>' and run '%s sync'.\n",
			branding.CLIName(), branding.CLIName())
		return nil
	},
}
