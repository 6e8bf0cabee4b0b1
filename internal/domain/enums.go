package domain

// Closed value sets accepted by the lifecycle controller. Validation happens
// before any mutation; an unknown value is a failed result, never a panic.

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
)

// ValidTaskTypes enumerates the categories a session can be filed under.
var ValidTaskTypes = []string{
	"code_generation",
	"debugging",
	"refactoring",
	"testing",
	"documentation",
	"planning",
	"human_review",
	"ai_oversight",
	"other",
}

// ValidOutcomes enumerates the terminal outcomes of a completed session.
var ValidOutcomes = []string{"success", "partial", "failed"}

// ValidSeverities enumerates issue severities.
var ValidSeverities = []string{"low", "medium", "high", "critical"}

// ValidExecutionContexts scope which sessions may auto-close which others.
var ValidExecutionContexts = []string{"foreground", "background"}

// ValidEstimateSources enumerates where a human-time estimate came from.
var ValidEstimateSources = []string{"user", "historical", "ai", "default"}

// IsValidTaskType reports whether t is a known task category.
func IsValidTaskType(t string) bool { return contains(ValidTaskTypes, t) }

// IsValidOutcome reports whether o is a known session outcome.
func IsValidOutcome(o string) bool { return contains(ValidOutcomes, o) }

// IsValidSeverity reports whether s is a known issue severity.
func IsValidSeverity(s string) bool { return contains(ValidSeverities, s) }

// IsValidExecutionContext reports whether e is a known execution context.
func IsValidExecutionContext(e string) bool { return contains(ValidExecutionContexts, e) }

// IsValidEstimateSource reports whether s is a known estimate source.
func IsValidEstimateSource(s string) bool { return contains(ValidEstimateSources, s) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
