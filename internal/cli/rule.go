package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/repoconf-labs/repoconf/internal/branding"
	"github.com/repoconf-labs/repoconf/internal/config"
	"github.com/repoconf-labs/repoconf/internal/rules"
)

var ruleAddTags []string

func init() {
	ruleAddCmd.Flags().StringSliceVar(&ruleAddTags, "tag", nil, "Tags to attach to the rule")
	ruleCmd.AddCommand(ruleAddCmd)
	ruleCmd.AddCommand(ruleListCmd)
	ruleCmd.AddCommand(ruleShowCmd)
	ruleCmd.AddCommand(ruleUpdateCmd)
	ruleCmd.AddCommand(ruleRemoveCmd)
	rootCmd.AddCommand(ruleCmd)
}

var ruleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage the rule registry",
	Long: `Add, list, update, and remove the rules that drive sync. Run
'` + branding.CLIName() + ` sync' after changing rules to project them into the tools.`,
}

// loadRegistry locates the project and opens its rule registry.
func loadRegistry() (*rules.Registry, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	root, err := config.FindRoot(cwd)
	if err != nil {
		return nil, err
	}
	return rules.LoadOrCreate(config.RegistryPath(root))
}

var ruleAddCmd = &cobra.Command{
	Use:   "add <id> <content>",
	Short: "Add a rule",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		r, err := rules.NewRule(args[0], args[1], ruleAddTags)
		if err != nil {
			return err
		}
		if err := reg.Add(r); err != nil {
			return err
		}
		if err := reg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added rule %q.\n", r.ID)
		return nil
	},
}

var ruleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		list := reg.List()
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No rules registered yet.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTAGS\tUPDATED\tCONTENT")
		for _, r := range list {
			content := r.Content
			if len(content) > 60 {
				content = content[:57] + "..."
			}
			content = strings.ReplaceAll(content, "\n", " ")
			id := r.ID
			if r.Drifted() {
				// Registry was edited by hand without updating the hash.
				id += " (!)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				id, strings.Join(r.Tags, ","), r.Updated.Format("2006-01-02"), content)
		}
		return w.Flush()
	},
}

var ruleShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a rule's full content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		r, err := reg.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), r.Content)
		return nil
	},
}

var ruleUpdateCmd = &cobra.Command{
	Use:   "update <id> <content>",
	Short: "Replace a rule's content",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		changed, err := reg.Update(args[0], args[1])
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintf(cmd.OutOrStdout(), "Rule %q is already up to date.\n", args[0])
			return nil
		}
		if err := reg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated rule %q. Run '%s sync' to apply.\n", args[0], branding.CLIName())
		return nil
	},
}

var ruleRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		if err := reg.Remove(args[0]); err != nil {
			return err
		}
		if err := reg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed rule %q. Run '%s sync' to clean up its blocks.\n", args[0], branding.CLIName())
		return nil
	},
}
