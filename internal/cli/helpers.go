package cli

import (
	"encoding/json"
	"fmt"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
)

// printResult renders a controller result for shell consumption. Failed
// results become a non-nil error so cobra sets the exit code.
func printResult(res domain.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	fmt.Println(string(data))

	if !res.Success {
		return fmt.Errorf("%s", res.Error)
	}
	return nil
}
