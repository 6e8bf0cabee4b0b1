package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var roiCmd = &cobra.Command{
	Use:   "roi",
	Short: "Compute return-on-investment figures",
	Long: `Compute time, cost and productivity figures from the full session
history, using the configured hourly rates.`,
	RunE: runROI,
}

func init() {
	rootCmd.AddCommand(roiCmd)
}

func runROI(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	return printResult(app.Service.CalculateROI(ctx))
}
