package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [session-id]",
	Short: "Print the observability summary report",
	Long: `Print the session/effectiveness/issue/ROI summary report.

With a session ID the report covers that session only; without one it
covers the full history. The session ID is the only scoping available;
there is no date or time-range filter.

Examples:
  session-tracker report
  session-tracker report my_session_20260115_093000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	sessionID := ""
	if len(args) == 1 {
		sessionID = args[0]
	}

	res := app.Service.GetObservability(ctx, sessionID)
	if !res.Success {
		return fmt.Errorf("%s", res.Error)
	}

	fmt.Println(res.Data["report"])
	return nil
}
