package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "session-tracker",
	Short: "Track and measure AI-assisted work sessions",
	Long: `session-tracker records AI-assisted work sessions, the interactions and
issues inside them, and computes effectiveness and ROI metrics from the
accumulated history.

Run "session-tracker serve" to expose the tracker as MCP tools over stdio,
or use the subcommands directly from the shell.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
