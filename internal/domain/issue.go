package domain

import (
	"time"

	"github.com/google/uuid"
)

// Issue is a flagged quality problem inside a session. Resolution fields are
// owned by an external collaborator; this core only creates issues.
type Issue struct {
	ID              string
	SessionID       string
	Timestamp       string
	IssueType       string
	Description     string
	Severity        string
	Resolved        bool
	ResolutionNotes string
}

// NewIssue creates an unresolved issue referencing the given session.
func NewIssue(sessionID, issueType, description, severity string) Issue {
	return Issue{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		IssueType:   issueType,
		Description: description,
		Severity:    severity,
	}
}

// ToMap serializes the issue into a flat document record.
func (i Issue) ToMap() map[string]any {
	return map[string]any{
		"id":               i.ID,
		"session_id":       i.SessionID,
		"timestamp":        i.Timestamp,
		"issue_type":       i.IssueType,
		"description":      i.Description,
		"severity":         i.Severity,
		"resolved":         i.Resolved,
		"resolution_notes": i.ResolutionNotes,
	}
}

// IssueFromMap deserializes an issue document, defaulting missing fields.
func IssueFromMap(m map[string]any) Issue {
	return Issue{
		ID:              mapString(m, "id"),
		SessionID:       mapString(m, "session_id"),
		Timestamp:       mapString(m, "timestamp"),
		IssueType:       mapString(m, "issue_type"),
		Description:     mapString(m, "description"),
		Severity:        mapString(m, "severity"),
		Resolved:        mapBool(m, "resolved"),
		ResolutionNotes: mapString(m, "resolution_notes"),
	}
}
