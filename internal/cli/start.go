package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/tracker"
)

var startCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start a new session",
	Long: `Start tracking a new AI-assisted work session.

Starting a session auto-closes any other active session in the same
execution context.

Examples:
  session-tracker start "fix login bug" --task-type debugging
  session-tracker start "new api endpoint" --task-type code_generation --estimate 90
  session-tracker start "nightly batch" --task-type refactoring --execution-context background`,
	Args: cobra.ExactArgs(1),
	RunE: runStart,
}

// Flags
var (
	startTaskType         string
	startModel            string
	startEstimate         int
	startEstimateSource   string
	startContext          string
	startExecutionContext string
	startDeveloper        string
	startProject          string
)

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVarP(&startTaskType, "task-type", "t", "", "Task type (code_generation, debugging, refactoring, ...)")
	startCmd.Flags().StringVarP(&startModel, "model", "m", "", "Model assisting the session")
	startCmd.Flags().IntVar(&startEstimate, "estimate", 0, "Estimated human-alone minutes")
	startCmd.Flags().StringVar(&startEstimateSource, "estimate-source", "", "Where the estimate came from (user, historical, ai, default)")
	startCmd.Flags().StringVar(&startContext, "context", "", "Free-form task context")
	startCmd.Flags().StringVar(&startExecutionContext, "execution-context", "", "Execution context (foreground or background)")
	startCmd.Flags().StringVar(&startDeveloper, "developer", "", "Developer name")
	startCmd.Flags().StringVar(&startProject, "project", "", "Project name")

	startCmd.MarkFlagRequired("task-type")
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	return printResult(app.Service.StartSession(ctx, tracker.StartParams{
		Name:             args[0],
		TaskType:         startTaskType,
		ModelName:        startModel,
		EstimateMinutes:  startEstimate,
		EstimateSource:   startEstimateSource,
		Context:          startContext,
		ExecutionContext: startExecutionContext,
		Developer:        startDeveloper,
		Project:          startProject,
	}))
}
