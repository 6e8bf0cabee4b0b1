package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tracker as MCP tools over stdio",
	Long: `Serve the tracker as an MCP server on stdin/stdout.

Register it with an MCP client, e.g.:

  claude mcp add session-tracker -- session-tracker serve

Any session left active when the server stops is auto-closed.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	return serveErr(mcpserver.New(app.Service, app.Log).Run(ctx))
}

// serveErr filters the transport error: cancellation is the normal SIGINT
// shutdown path and must not turn into a nonzero exit.
func serveErr(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
