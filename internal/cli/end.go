package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var endCmd = &cobra.Command{
	Use:   "end <session-id>",
	Short: "Complete a session",
	Long: `Complete a session with an outcome.

Examples:
  session-tracker end my_session_20260115_093000 --outcome success
  session-tracker end my_session_20260115_093000 --outcome partial --notes "tests still flaky" --final-estimate 120`,
	Args: cobra.ExactArgs(1),
	RunE: runEnd,
}

// Flags
var (
	endOutcome       string
	endNotes         string
	endFinalEstimate int
)

func init() {
	rootCmd.AddCommand(endCmd)

	endCmd.Flags().StringVarP(&endOutcome, "outcome", "o", "", "Session outcome (success, partial, failed)")
	endCmd.Flags().StringVar(&endNotes, "notes", "", "Closing notes")
	endCmd.Flags().IntVar(&endFinalEstimate, "final-estimate", 0, "Corrected human-alone estimate in minutes")

	endCmd.MarkFlagRequired("outcome")
}

func runEnd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	return printResult(app.Service.EndSession(ctx, args[0], endOutcome, endNotes, endFinalEstimate))
}
