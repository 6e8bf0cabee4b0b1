package main

import "github.com/mgrandau/ai-session-tracker-mcp/internal/cli"

func main() {
	cli.Execute()
}
