package metrics

import (
	"strings"
	"testing"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
)

func completedSession(id, taskType string) domain.Session {
	return domain.Session{
		ID:        id,
		TaskType:  taskType,
		StartTime: "2026-01-02T10:00:00Z",
		EndTime:   "2026-01-02T10:00:00Z",
		Status:    domain.StatusCompleted,
	}
}

func TestCalculateROI_SingleHourSession(t *testing.T) {
	s := completedSession("s1", "code_generation")
	s.EndTime = "2026-01-02T11:00:00Z"

	roi := CalculateROI(DefaultConfig(), map[string]domain.Session{"s1": s}, nil)

	assertFloatNear(t, "TotalAIMinutes", 60, roi.Time.TotalAIMinutes)
	assertFloatNear(t, "TotalAIHours", 1, roi.Time.TotalAIHours)
	assertFloatNear(t, "EstimatedHumanHours", 3, roi.Time.EstimatedHumanHours)
	if roi.Time.CompletedSessions != 1 {
		t.Errorf("completed sessions = %d, want 1", roi.Time.CompletedSessions)
	}

	// human: 3h * $100 = $300; AI: 1h * ($200/160) + 0.2h * $100 = $21.25
	assertFloatNear(t, "HumanCost", 300, roi.Cost.HumanCost)
	assertFloatNear(t, "AICost", 21.25, roi.Cost.AICost)
	assertFloatNear(t, "OversightCost", 20, roi.Cost.OversightCost)
	if roi.Cost.CostSaved <= 0 {
		t.Errorf("cost saved must be positive, got %v", roi.Cost.CostSaved)
	}
	if roi.ConfigUsed != DefaultConfig() {
		t.Error("result must echo the config it was computed with")
	}
}

func TestCalculateROI_Filtering(t *testing.T) {
	review := completedSession("r1", "human_review")
	review.EndTime = "2026-01-02T12:00:00Z"

	active := domain.Session{
		ID:        "a1",
		TaskType:  "code_generation",
		StartTime: "2026-01-02T10:00:00Z",
		Status:    domain.StatusActive,
	}

	sessions := map[string]domain.Session{"r1": review, "a1": active}
	roi := CalculateROI(DefaultConfig(), sessions, nil)

	if roi.Time.TotalAIMinutes != 0 {
		t.Errorf("review and active sessions must contribute no AI time, got %v", roi.Time.TotalAIMinutes)
	}
	if roi.Time.CompletedSessions != 0 {
		t.Errorf("completed count = %d, want 0", roi.Time.CompletedSessions)
	}
}

func TestCalculateROI_ZeroHumanCost(t *testing.T) {
	roi := CalculateROI(DefaultConfig(), map[string]domain.Session{}, nil)
	if roi.Cost.ROIPercent != 0 {
		t.Errorf("ROI with zero human cost must be 0, got %v", roi.Cost.ROIPercent)
	}
}

func TestCalculateROI_ProductivityFromUnfilteredInteractions(t *testing.T) {
	s := completedSession("s1", "code_generation")
	s.EndTime = "2026-01-02T10:30:00Z"

	interactions := []domain.Interaction{
		{SessionID: "s1", Rating: 4},
		{SessionID: "other", Rating: 2},
	}

	roi := CalculateROI(DefaultConfig(), map[string]domain.Session{"s1": s}, interactions)

	if roi.Productivity.TotalInteractions != 2 {
		t.Errorf("productivity must use the unfiltered interaction list, got %d", roi.Productivity.TotalInteractions)
	}
	assertFloatNear(t, "AvgEffectiveness", 3, roi.Productivity.AvgEffectiveness)
	assertFloatNear(t, "InteractionsPerSession", 2, roi.Productivity.InteractionsPerSession)
}

func TestSummaryReport_SectionOrdering(t *testing.T) {
	s := completedSession("s1", "code_generation")
	s.EndTime = "2026-01-02T11:00:00Z"
	report := SummaryReport(DefaultConfig(), map[string]domain.Session{"s1": s},
		[]domain.Interaction{{Rating: 4}}, []domain.Issue{{Severity: "high"}})

	order := []string{"=== Session Overview ===", "=== Effectiveness ===", "=== Issues ===", "=== Code Metrics ===", "=== ROI ==="}
	last := -1
	for _, section := range order {
		idx := strings.Index(report, section)
		if idx < 0 {
			t.Fatalf("report missing section %q", section)
		}
		if idx < last {
			t.Errorf("section %q out of order", section)
		}
		last = idx
	}
}

func TestSummaryReport_Deterministic(t *testing.T) {
	sessions := map[string]domain.Session{
		"a": completedSession("a", "testing"),
		"b": completedSession("b", "debugging"),
	}
	issues := []domain.Issue{{IssueType: "style"}, {IssueType: "bug"}}
	first := SummaryReport(DefaultConfig(), sessions, nil, issues)
	for range 10 {
		if SummaryReport(DefaultConfig(), sessions, nil, issues) != first {
			t.Fatal("report rendering must be deterministic")
		}
	}
}
