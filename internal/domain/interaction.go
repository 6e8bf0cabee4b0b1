package domain

import (
	"time"

	"github.com/google/uuid"
)

// Interaction is one prompt/response exchange inside a session. Records are
// append-only: created once by the log operation, never mutated.
type Interaction struct {
	ID              string
	SessionID       string
	Timestamp       string
	Prompt          string
	ResponseSummary string
	Rating          int
	Iterations      int
	ToolsUsed       []string
}

// NewInteraction creates an interaction, clamping the effectiveness rating to
// [1,5] and the iteration count to at least 1.
func NewInteraction(sessionID, prompt, responseSummary string, rating, iterations int, toolsUsed []string) Interaction {
	if rating < 1 {
		rating = 1
	} else if rating > 5 {
		rating = 5
	}
	if iterations < 1 {
		iterations = 1
	}
	return Interaction{
		ID:              uuid.NewString(),
		SessionID:       sessionID,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Prompt:          prompt,
		ResponseSummary: responseSummary,
		Rating:          rating,
		Iterations:      iterations,
		ToolsUsed:       toolsUsed,
	}
}

// ToMap serializes the interaction into a flat document record.
func (i Interaction) ToMap() map[string]any {
	tools := make([]any, len(i.ToolsUsed))
	for n, t := range i.ToolsUsed {
		tools[n] = t
	}
	return map[string]any{
		"id":               i.ID,
		"session_id":       i.SessionID,
		"timestamp":        i.Timestamp,
		"prompt":           i.Prompt,
		"response_summary": i.ResponseSummary,
		"rating":           i.Rating,
		"iterations":       i.Iterations,
		"tools_used":       tools,
	}
}

// InteractionFromMap deserializes an interaction document. Deserialization
// does not clamp: a document written by another producer keeps its values,
// and a missing rating stays 0 so the averaging policy can count it against
// the mean.
func InteractionFromMap(m map[string]any) Interaction {
	return Interaction{
		ID:              mapString(m, "id"),
		SessionID:       mapString(m, "session_id"),
		Timestamp:       mapString(m, "timestamp"),
		Prompt:          mapString(m, "prompt"),
		ResponseSummary: mapString(m, "response_summary"),
		Rating:          mapInt(m, "rating"),
		Iterations:      mapInt(m, "iterations"),
		ToolsUsed:       mapStringSlice(m, "tools_used"),
	}
}
