package metrics

import (
	"math"
	"testing"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
)

func TestSessionDuration(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected float64
	}{
		{"ninety minutes with Z suffix", "2026-01-02T10:00:00Z", "2026-01-02T11:30:00Z", 90},
		{"explicit offset", "2026-01-02T10:00:00+00:00", "2026-01-02T10:45:00+00:00", 45},
		{"mixed zone markers", "2026-01-02T10:00:00Z", "2026-01-02T12:00:00+01:00", 60},
		{"missing end", "2026-01-02T10:00:00Z", "", 0},
		{"missing start", "", "2026-01-02T10:00:00Z", 0},
		{"both missing", "", "", 0},
		{"garbage start", "not-a-time", "2026-01-02T10:00:00Z", 0},
		{"garbage end", "2026-01-02T10:00:00Z", "yesterday", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.Session{ID: "s", StartTime: tt.start, EndTime: tt.end}
			assertFloatNear(t, "duration", tt.expected, SessionDuration(s))
		})
	}
}

func TestEffectivenessDistribution_DropsOutOfRange(t *testing.T) {
	interactions := []domain.Interaction{
		{Rating: 1}, {Rating: 5}, {Rating: 5},
		{Rating: 0},  // missing rating in source document
		{Rating: 7},  // out of range, dropped, not clamped
		{Rating: -2}, // out of range, dropped
	}
	dist := EffectivenessDistribution(interactions)
	if dist[1] != 1 || dist[5] != 2 {
		t.Errorf("unexpected distribution: %v", dist)
	}
	total := 0
	for _, n := range dist {
		total += n
	}
	if total != 3 {
		t.Errorf("out-of-range ratings must be dropped, tally = %d", total)
	}
	for rating := 1; rating <= 5; rating++ {
		if _, ok := dist[rating]; !ok {
			t.Errorf("bucket %d missing", rating)
		}
	}
}

func TestAverageEffectiveness(t *testing.T) {
	tests := []struct {
		name         string
		interactions []domain.Interaction
		expected     float64
	}{
		{"empty input", nil, 0},
		{"simple mean", []domain.Interaction{{Rating: 4}, {Rating: 2}}, 3},
		// A missing rating counts as 0 and pulls the mean down.
		{"missing rating counts as zero", []domain.Interaction{{Rating: 4}, {Rating: 0}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFloatNear(t, "average", tt.expected, AverageEffectiveness(tt.interactions))
		})
	}
}

func TestIssueSummary_UnknownBuckets(t *testing.T) {
	issues := []domain.Issue{
		{IssueType: "hallucination", Severity: "high"},
		{IssueType: "hallucination", Severity: ""},
		{IssueType: "", Severity: "low"},
	}
	r := IssueSummary(issues)
	if r.Total != 3 {
		t.Errorf("total = %d, want 3", r.Total)
	}
	if r.ByType["hallucination"] != 2 || r.ByType["unknown"] != 1 {
		t.Errorf("type buckets wrong: %v", r.ByType)
	}
	if r.BySeverity["high"] != 1 || r.BySeverity["low"] != 1 || r.BySeverity["unknown"] != 1 {
		t.Errorf("severity buckets wrong: %v", r.BySeverity)
	}
}

func TestCodeMetricsSummary(t *testing.T) {
	sessions := map[string]domain.Session{
		"a": {ID: "a", CodeMetrics: []domain.CodeMetric{
			{LinesAdded: 10, LinesModified: 2, Complexity: 4, DocumentationScore: 80},
			{LinesAdded: 6, Complexity: 2, DocumentationScore: 60},
		}},
		"b": {ID: "b"},
	}
	r := CodeMetricsSummary(sessions)
	if r.TotalFunctions != 2 || r.TotalLinesAdded != 16 || r.TotalLinesModified != 2 {
		t.Errorf("totals wrong: %+v", r)
	}
	assertFloatNear(t, "AvgComplexity", 3, r.AvgComplexity)
	assertFloatNear(t, "AvgDocScore", 70, r.AvgDocScore)
	if r.TotalEffortScore <= 0 {
		t.Errorf("effort score must be positive, got %v", r.TotalEffortScore)
	}
}

func TestCodeMetricsSummary_Empty(t *testing.T) {
	r := CodeMetricsSummary(map[string]domain.Session{})
	if r != (CodeMetricsSummaryResult{}) {
		t.Errorf("empty input must yield zero values, got %+v", r)
	}
}

func assertFloatNear(t *testing.T, name string, expected, actual float64) {
	t.Helper()
	if math.Abs(expected-actual) > 0.0001 {
		t.Errorf("%s: expected %.6f, got %.6f", name, expected, actual)
	}
}
