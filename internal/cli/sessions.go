package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List active sessions",
	Long:  `List sessions that have not been completed yet.`,
	RunE:  runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	res := app.Service.GetActiveSessions(ctx)
	if res.Error != "" {
		fmt.Fprintf(os.Stderr, "warning: %s\n", res.Error)
	}

	sessions, _ := res.Data["sessions"].([]map[string]any)
	if len(sessions) == 0 {
		fmt.Println("No active sessions")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTASK TYPE\tSTARTED")
	fmt.Fprintln(w, "--\t----\t---------\t-------")
	for _, s := range sessions {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\n", s["id"], s["name"], s["task_type"], s["start_time"])
	}
	w.Flush()

	fmt.Printf("\n%s\n", res.Message)
	return nil
}
