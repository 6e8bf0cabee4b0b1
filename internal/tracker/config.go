package tracker

import (
	"github.com/mgrandau/ai-session-tracker-mcp/internal/metrics"
)

// DefaultMaxSessionHours caps how long an auto-closed session may appear to
// have run, so a forgotten overnight session cannot inflate ROI metrics.
const DefaultMaxSessionHours = 8.0

// Config holds the controller's policy knobs. Tests override fields directly
// on the struct they pass to NewService; there is no ambient global state.
type Config struct {
	// MaxSessionHours bounds the end time applied by auto-close sweeps.
	// Explicit ends are never capped.
	MaxSessionHours float64
	// Metrics holds the rate constants handed to the reduction engine.
	Metrics metrics.Config
}

// DefaultConfig returns the compiled-in policy.
func DefaultConfig() Config {
	return Config{
		MaxSessionHours: DefaultMaxSessionHours,
		Metrics:         metrics.DefaultConfig(),
	}
}
