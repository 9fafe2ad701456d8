// Package cli implements the doramcp command tree. Service dependencies
// are package-level variables wired during app initialization.
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

var rootCmd = &cobra.Command{
	Use:   "doramcp",
	Short: "DORA metrics calculation and MCP server",
	Long: `doramcp computes the four DORA software delivery metrics (deployment
frequency, lead time for changes, change failure rate, mean time to
recovery), classifies each against the standard benchmark thresholds,
and aggregates them into an overall performance assessment.

It can serve the calculators as MCP tools over stdio, run them directly
from the command line, or explore what-if scenarios in an interactive
dashboard.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("doramcp %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
