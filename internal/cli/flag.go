package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var flagCmd = &cobra.Command{
	Use:   "flag <session-id>",
	Short: "Flag a quality issue against a session",
	Long: `Flag a quality problem encountered during a session.

Examples:
  session-tracker flag my_session_20260115_093000 --type hallucination --severity high
  session-tracker flag my_session_20260115_093000 --type wrong_approach --severity low --description "suggested O(n^2) loop"`,
	Args: cobra.ExactArgs(1),
	RunE: runFlag,
}

// Flags
var (
	flagIssueType   string
	flagDescription string
	flagSeverity    string
)

func init() {
	rootCmd.AddCommand(flagCmd)

	flagCmd.Flags().StringVarP(&flagIssueType, "type", "t", "", "Issue type, free-form (hallucination, wrong_approach, ...)")
	flagCmd.Flags().StringVarP(&flagDescription, "description", "d", "", "What went wrong")
	flagCmd.Flags().StringVarP(&flagSeverity, "severity", "s", "", "Severity (low, medium, high, critical)")

	flagCmd.MarkFlagRequired("type")
	flagCmd.MarkFlagRequired("severity")
}

func runFlag(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	return printResult(app.Service.FlagIssue(ctx, args[0], flagIssueType, flagDescription, flagSeverity))
}
