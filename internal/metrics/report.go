package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
)

// SummaryReport renders a deterministic textual report combining every
// reduction over the given history. Pure formatting; all numbers come from
// the functions above.
func SummaryReport(cfg Config, sessions map[string]domain.Session, interactions []domain.Interaction, issues []domain.Issue) string {
	var b strings.Builder

	active, completed := 0, 0
	for _, s := range sessions {
		if s.Status == domain.StatusCompleted {
			completed++
		} else {
			active++
		}
	}

	b.WriteString("=== Session Overview ===\n")
	fmt.Fprintf(&b, "Total sessions: %d\n", len(sessions))
	fmt.Fprintf(&b, "Active: %d\n", active)
	fmt.Fprintf(&b, "Completed: %d\n", completed)

	b.WriteString("\n=== Effectiveness ===\n")
	fmt.Fprintf(&b, "Average rating: %.2f\n", AverageEffectiveness(interactions))
	dist := EffectivenessDistribution(interactions)
	for rating := 1; rating <= 5; rating++ {
		fmt.Fprintf(&b, "Rating %d: %d\n", rating, dist[rating])
	}

	b.WriteString("\n=== Issues ===\n")
	issueSummary := IssueSummary(issues)
	fmt.Fprintf(&b, "Total issues: %d\n", issueSummary.Total)
	writeSortedCounts(&b, "By severity", issueSummary.BySeverity)
	writeSortedCounts(&b, "By type", issueSummary.ByType)

	b.WriteString("\n=== Code Metrics ===\n")
	code := CodeMetricsSummary(sessions)
	fmt.Fprintf(&b, "Functions touched: %d\n", code.TotalFunctions)
	fmt.Fprintf(&b, "Lines added: %d\n", code.TotalLinesAdded)
	fmt.Fprintf(&b, "Lines modified: %d\n", code.TotalLinesModified)
	fmt.Fprintf(&b, "Avg complexity: %.2f\n", code.AvgComplexity)
	fmt.Fprintf(&b, "Avg documentation score: %.2f\n", code.AvgDocScore)
	fmt.Fprintf(&b, "Total effort score: %.2f\n", code.TotalEffortScore)

	b.WriteString("\n=== ROI ===\n")
	roi := CalculateROI(cfg, sessions, interactions)
	fmt.Fprintf(&b, "AI time: %.1f min (%.2f h)\n", roi.Time.TotalAIMinutes, roi.Time.TotalAIHours)
	fmt.Fprintf(&b, "Estimated human time: %.2f h\n", roi.Time.EstimatedHumanHours)
	fmt.Fprintf(&b, "Human cost: $%.2f\n", roi.Cost.HumanCost)
	fmt.Fprintf(&b, "AI cost: $%.2f (oversight $%.2f)\n", roi.Cost.AICost, roi.Cost.OversightCost)
	fmt.Fprintf(&b, "Cost saved: $%.2f\n", roi.Cost.CostSaved)
	fmt.Fprintf(&b, "ROI: %.1f%%\n", roi.Cost.ROIPercent)
	fmt.Fprintf(&b, "Assumptions: human $%.0f/h, AI $%.0f/mo over %.0f h/mo, %gx baseline, %g oversight\n",
		cfg.HumanHourlyRate, cfg.AIMonthlyCost, cfg.HoursPerMonth, cfg.HumanTimeMultiplier, cfg.OversightRate)

	return b.String()
}

func writeSortedCounts(b *strings.Builder, label string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(b, "%s:\n", label)
	for _, k := range keys {
		fmt.Fprintf(b, "  %s: %d\n", k, counts[k])
	}
}
