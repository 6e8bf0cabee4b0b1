package domain

import (
	"reflect"
	"strings"
	"testing"
)

func TestNewSession_IDAndDefaults(t *testing.T) {
	s := NewSession("Fix Auth Bug", "debugging", "login flow", "sonnet", 30, "user", "dev1", "webapp", "foreground")

	if !strings.HasPrefix(s.ID, "fix_auth_bug_") {
		t.Errorf("unexpected ID prefix: %s", s.ID)
	}
	if s.Status != StatusActive {
		t.Errorf("expected active status, got %s", s.Status)
	}
	if s.EndTime != "" || s.Outcome != "" {
		t.Error("end time and outcome must be absent until closed")
	}
	if s.StartTime == "" {
		t.Error("start time must be stamped at construction")
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces to underscores", "My Session", "my_session"},
		{"special chars dropped", "fix: auth!! bug", "fix_auth_bug"},
		{"path separators", "feature/login", "feature_login"},
		{"empty falls back", "!!!", "session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeName(tt.input); got != tt.expected {
				t.Errorf("sanitizeName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSession_RoundTrip(t *testing.T) {
	s := NewSession("roundtrip", "code_generation", "ctx", "opus", 45, "historical", "dev2", "cli", "background")
	s.EndTime = "2026-01-02T15:04:05Z"
	s.Status = StatusCompleted
	s.Outcome = "success"
	s.Notes = "done"
	s.InteractionCount = 3
	s.AvgEffectiveness = 4.5
	s.CodeMetrics = []CodeMetric{{
		FunctionName:       "parse",
		ModificationType:   "modified",
		LinesAdded:         10,
		LinesModified:      4,
		LinesDeleted:       1,
		Complexity:         6,
		DocumentationScore: 80,
		HasDocstring:       true,
	}}

	got, err := SessionFromMap(s.ToMap())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(s, got) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, s)
	}
}

func TestSessionFromMap_LegacyNameAlias(t *testing.T) {
	m := map[string]any{
		"id":           "legacy_20260101_000000",
		"session_name": "legacy session",
	}
	s, err := SessionFromMap(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "legacy session" {
		t.Errorf("expected legacy alias to populate name, got %q", s.Name)
	}
}

func TestSessionFromMap_MissingID(t *testing.T) {
	if _, err := SessionFromMap(map[string]any{"name": "no id"}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestSessionFromMap_DefaultsOptionalFields(t *testing.T) {
	s, err := SessionFromMap(map[string]any{"id": "bare_20260101_000000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != StatusActive {
		t.Errorf("missing status must default to active, got %s", s.Status)
	}
	if s.InteractionCount != 0 || s.AvgEffectiveness != 0 || len(s.CodeMetrics) != 0 {
		t.Error("numeric and list fields must default to zero values")
	}
}

func TestSessionFromMap_JSONDecodedNumbers(t *testing.T) {
	// encoding/json decodes every number as float64.
	m := map[string]any{
		"id":                "json_20260101_000000",
		"estimate_minutes":  float64(30),
		"interaction_count": float64(2),
		"avg_effectiveness": float64(3.5),
	}
	s, err := SessionFromMap(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.EstimateMinutes != 30 || s.InteractionCount != 2 || s.AvgEffectiveness != 3.5 {
		t.Errorf("JSON-decoded numbers not coerced: %+v", s)
	}
}
