// Package metrics reduces session, interaction and issue history into
// durations, distributions and ROI figures. Every function is pure: results
// depend only on the arguments and the rate constants in Config.
package metrics

// Config holds the rate assumptions behind every cost figure. Reports echo
// the config they were computed with so they stay self-describing.
type Config struct {
	// HumanHourlyRate is the fully loaded developer cost per hour in USD.
	HumanHourlyRate float64 `yaml:"human_hourly_rate"`
	// AIMonthlyCost is the monthly AI subscription cost in USD.
	AIMonthlyCost float64 `yaml:"ai_monthly_cost"`
	// HoursPerMonth converts the subscription into an hourly AI rate.
	HoursPerMonth float64 `yaml:"hours_per_month"`
	// HumanTimeMultiplier estimates the human-only baseline as a multiple
	// of AI-tracked time.
	HumanTimeMultiplier float64 `yaml:"human_time_multiplier"`
	// OversightRate is the fraction of AI time a human spends supervising,
	// costed at the human rate.
	OversightRate float64 `yaml:"oversight_rate"`
}

// DefaultConfig returns the compiled-in rate assumptions.
func DefaultConfig() Config {
	return Config{
		HumanHourlyRate:     100,
		AIMonthlyCost:       200,
		HoursPerMonth:       160,
		HumanTimeMultiplier: 3,
		OversightRate:       0.2,
	}
}

// roiExcludedTaskTypes lists categories that measure oversight of AI rather
// than AI productivity; their time never counts toward ROI.
var roiExcludedTaskTypes = map[string]bool{
	"human_review": true,
	"ai_oversight": true,
}
