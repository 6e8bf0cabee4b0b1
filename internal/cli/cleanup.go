package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Auto-close all active sessions",
	Long: `Close every active session regardless of execution context.

Sessions open longer than the configured maximum get their duration capped
at the limit. Useful after a crash left sessions dangling.`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	return printResult(app.Service.CloseActiveSessionsOnShutdown(ctx))
}
