// Package cli wires configuration, logging, storage and the assistant
// controller behind cobra commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var (
	cfgFile     string
	dataPath    string
	driverFlag  string
	logLevelArg string
)

var rootCmd = &cobra.Command{
	Use:   "assistd",
	Short: "assistd - a terminal personal assistant",
	Long: `assistd keeps your to-do list, notes and budget in one place and
rewards you with points, streaks and badges for getting things done.

Talk to it in plain language ("add task buy milk due friday",
"spent 12 for lunch", "how many points do i have") from the
interactive TUI or straight from the shell.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "assistd %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./assistd.yaml or ~/.config/assistd/assistd.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "override storage.path")
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "override storage.driver (sqlite or file)")
	rootCmd.PersistentFlags().StringVar(&logLevelArg, "log-level", "", "override log.level (debug, info, warn, error)")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
