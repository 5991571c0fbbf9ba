package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/repoconf-labs/repoconf/internal/branding"
	"github.com/repoconf-labs/repoconf/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps AI tool configuration artifacts (.cursorrules, CLAUDE.md,
VS Code settings, Copilot instructions) in sync from one declarative rule
registry committed alongside your code.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		setupLogging()
	},
}

// setupLogging installs a slog handler honoring the configured level.
// Diagnostics go to stderr so command output stays scriptable.
func setupLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(config.Get(config.KeyLogLevel)) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		return err
	}
	return nil
}
