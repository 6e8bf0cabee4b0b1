package domain

import (
	"fmt"
	"strings"
	"time"
)

// Session is one tracked unit of AI-assisted work, bounded by a start and
// (eventually) an end event. Timestamps are RFC3339 strings because sessions
// live in a document store and malformed values must survive a round trip
// instead of failing it.
type Session struct {
	ID               string
	Name             string
	TaskType         string
	Context          string
	ModelName        string
	EstimateMinutes  int
	EstimateSource   string
	Developer        string
	Project          string
	StartTime        string
	EndTime          string
	Status           SessionStatus
	Outcome          string
	Notes            string
	InteractionCount int
	AvgEffectiveness float64
	CodeMetrics      []CodeMetric
	ExecutionContext string
}

// NewSession creates an active session. The identifier combines the sanitized
// name with the creation timestamp; uniqueness relies on timestamp
// granularity, not a collision-checked allocator.
func NewSession(name, taskType, context, modelName string, estimateMinutes int, estimateSource, developer, project, executionContext string) Session {
	now := time.Now().UTC()
	return Session{
		ID:               fmt.Sprintf("%s_%s", sanitizeName(name), now.Format("20060102_150405")),
		Name:             name,
		TaskType:         taskType,
		Context:          context,
		ModelName:        modelName,
		EstimateMinutes:  estimateMinutes,
		EstimateSource:   estimateSource,
		Developer:        developer,
		Project:          project,
		StartTime:        now.Format(time.RFC3339),
		Status:           StatusActive,
		ExecutionContext: executionContext,
	}
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '/':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "session"
	}
	return b.String()
}

// ToMap serializes the session into a flat document record.
func (s Session) ToMap() map[string]any {
	metrics := make([]any, len(s.CodeMetrics))
	for i, m := range s.CodeMetrics {
		metrics[i] = m.ToMap()
	}
	return map[string]any{
		"id":                s.ID,
		"name":              s.Name,
		"task_type":         s.TaskType,
		"context":           s.Context,
		"model_name":        s.ModelName,
		"estimate_minutes":  s.EstimateMinutes,
		"estimate_source":   s.EstimateSource,
		"developer":         s.Developer,
		"project":           s.Project,
		"start_time":        s.StartTime,
		"end_time":          s.EndTime,
		"status":            string(s.Status),
		"outcome":           s.Outcome,
		"notes":             s.Notes,
		"interaction_count": s.InteractionCount,
		"avg_effectiveness": s.AvgEffectiveness,
		"code_metrics":      metrics,
		"execution_context": s.ExecutionContext,
	}
}

// SessionFromMap deserializes a session document. Only the identifier is
// required; every optional field defaults when missing. The legacy
// "session_name" key is accepted as an alias for "name".
func SessionFromMap(m map[string]any) (Session, error) {
	id := mapString(m, "id")
	if id == "" {
		return Session{}, fmt.Errorf("session document missing id")
	}

	name := mapString(m, "name")
	if name == "" {
		name = mapString(m, "session_name")
	}

	status := SessionStatus(mapString(m, "status"))
	if status == "" {
		status = StatusActive
	}

	s := Session{
		ID:               id,
		Name:             name,
		TaskType:         mapString(m, "task_type"),
		Context:          mapString(m, "context"),
		ModelName:        mapString(m, "model_name"),
		EstimateMinutes:  mapInt(m, "estimate_minutes"),
		EstimateSource:   mapString(m, "estimate_source"),
		Developer:        mapString(m, "developer"),
		Project:          mapString(m, "project"),
		StartTime:        mapString(m, "start_time"),
		EndTime:          mapString(m, "end_time"),
		Status:           status,
		Outcome:          mapString(m, "outcome"),
		Notes:            mapString(m, "notes"),
		InteractionCount: mapInt(m, "interaction_count"),
		AvgEffectiveness: mapFloat(m, "avg_effectiveness"),
		ExecutionContext: mapString(m, "execution_context"),
	}

	if raw, ok := m["code_metrics"].([]any); ok {
		for _, entry := range raw {
			if doc, ok := entry.(map[string]any); ok {
				s.CodeMetrics = append(s.CodeMetrics, CodeMetricFromMap(doc))
			}
		}
	}

	return s, nil
}
