package metrics

import (
	"strings"
	"time"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
)

// ParseTimestamp parses an ISO-8601 timestamp, normalizing a trailing "Z"
// zone marker to an explicit offset first.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	return time.Parse(time.RFC3339, s)
}

// SessionDuration computes elapsed minutes between a session's start and end
// timestamps. Absent, empty or unparsable timestamps yield 0, never an error.
func SessionDuration(s domain.Session) float64 {
	if s.StartTime == "" || s.EndTime == "" {
		return 0
	}
	start, err := ParseTimestamp(s.StartTime)
	if err != nil {
		return 0
	}
	end, err := ParseTimestamp(s.EndTime)
	if err != nil {
		return 0
	}
	return end.Sub(start).Minutes()
}

// EffectivenessDistribution tallies interaction ratings into five buckets.
// Ratings outside [1,5] are dropped from the tally, not clamped; the clamping
// policy belongs to Interaction construction only.
func EffectivenessDistribution(interactions []domain.Interaction) map[int]int {
	dist := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, i := range interactions {
		if i.Rating >= 1 && i.Rating <= 5 {
			dist[i.Rating]++
		}
	}
	return dist
}

// AverageEffectiveness returns the arithmetic mean of ratings across all
// interactions. A missing rating counts as 0 rather than being excluded,
// deliberately pulling the average down instead of inflating it.
func AverageEffectiveness(interactions []domain.Interaction) float64 {
	if len(interactions) == 0 {
		return 0
	}
	var sum float64
	for _, i := range interactions {
		sum += float64(i.Rating)
	}
	return sum / float64(len(interactions))
}

// IssueSummaryResult holds issue counts grouped by type and severity.
type IssueSummaryResult struct {
	Total      int
	ByType     map[string]int
	BySeverity map[string]int
}

// IssueSummary counts issues by type and severity. Missing values fall into
// an "unknown" bucket instead of being dropped.
func IssueSummary(issues []domain.Issue) IssueSummaryResult {
	r := IssueSummaryResult{
		Total:      len(issues),
		ByType:     map[string]int{},
		BySeverity: map[string]int{},
	}
	for _, i := range issues {
		r.ByType[orUnknown(i.IssueType)]++
		r.BySeverity[orUnknown(i.Severity)]++
	}
	return r
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// CodeMetricsSummaryResult aggregates function-level quality records.
type CodeMetricsSummaryResult struct {
	TotalFunctions     int
	TotalLinesAdded    int
	TotalLinesModified int
	AvgComplexity      float64
	AvgDocScore        float64
	TotalEffortScore   float64
}

// CodeMetricsSummary aggregates code metric records across all sessions.
// Empty input yields all-zero fields.
func CodeMetricsSummary(sessions map[string]domain.Session) CodeMetricsSummaryResult {
	var r CodeMetricsSummaryResult
	var complexitySum, docSum float64
	for _, s := range sessions {
		for _, m := range s.CodeMetrics {
			r.TotalFunctions++
			r.TotalLinesAdded += m.LinesAdded
			r.TotalLinesModified += m.LinesModified
			complexitySum += float64(m.Complexity)
			docSum += float64(m.DocumentationScore)
			r.TotalEffortScore += m.EffortScore()
		}
	}
	if r.TotalFunctions > 0 {
		r.AvgComplexity = complexitySum / float64(r.TotalFunctions)
		r.AvgDocScore = docSum / float64(r.TotalFunctions)
	}
	return r
}
