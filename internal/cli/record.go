package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
)

var recordCmd = &cobra.Command{
	Use:   "record <session-id>",
	Short: "Record per-function code metrics from stdin",
	Long: `Record analyzer-produced code quality metrics for a session.

Reads a JSON array of per-function records from stdin:

  [{"function_name": "parseConfig", "modification_type": "modified",
    "lines_added": 12, "lines_modified": 4, "complexity": 3}]

Example:
  analyzer --json | session-tracker record my_session_20260115_093000`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	var docs []map[string]any
	if err := json.NewDecoder(os.Stdin).Decode(&docs); err != nil {
		return fmt.Errorf("failed to parse code metrics from stdin: %w", err)
	}
	records := make([]domain.CodeMetric, len(docs))
	for i, doc := range docs {
		records[i] = domain.CodeMetricFromMap(doc)
	}

	ctx := context.Background()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	return printResult(app.Service.RecordCodeMetrics(ctx, args[0], records))
}
