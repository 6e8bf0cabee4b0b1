package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log <session-id>",
	Short: "Log an interaction for a session",
	Long: `Record one prompt/response exchange with an effectiveness rating.

Examples:
  session-tracker log my_session_20260115_093000 --prompt "refactor the parser" --rating 4
  session-tracker log my_session_20260115_093000 --prompt "fix tests" --rating 2 --iterations 3 --tool Edit --tool Bash`,
	Args: cobra.ExactArgs(1),
	RunE: runLog,
}

// Flags
var (
	logPrompt     string
	logResponse   string
	logRating     int
	logIterations int
	logTools      []string
)

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().StringVarP(&logPrompt, "prompt", "p", "", "Prompt text or summary")
	logCmd.Flags().StringVar(&logResponse, "response", "", "Response summary")
	logCmd.Flags().IntVarP(&logRating, "rating", "r", 3, "Effectiveness rating 1-5")
	logCmd.Flags().IntVar(&logIterations, "iterations", 1, "Attempts before the response was usable")
	logCmd.Flags().StringArrayVar(&logTools, "tool", nil, "Tool used during the exchange (repeatable)")

	logCmd.MarkFlagRequired("prompt")
}

func runLog(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	return printResult(app.Service.LogInteraction(ctx, args[0], logPrompt, logResponse, logRating, logIterations, logTools))
}
