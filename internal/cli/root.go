package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitFindings     = 1
	ExitUsageError   = 2
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "redline",
	Short: "Local AI text review",
	Long:  "Redline reviews prose documents with a local LLM backend and reports issues as inline diagnostics.",
}

func init() {
	// Runtime failures should not dump the usage text.
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run executes the root command and returns an exit code.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error. A handler that classified its
		// failure set exitCode; anything else (bad flags, unknown
		// subcommands, argument validation) is a usage error.
		if exitCode != ExitSuccess {
			return exitCode
		}
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print redline version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "redline version %s\n", version)
	},
}
