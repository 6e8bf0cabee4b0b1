package ports

import (
	"context"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
)

// Storage is the persistence collaborator for the lifecycle controller. The
// controller assumes single-writer access; implementations are not required
// to defend against concurrent read-modify-write from multiple processes.
type Storage interface {
	// LoadSessions returns the full session mapping keyed by session id.
	LoadSessions(ctx context.Context) (map[string]domain.Session, error)
	// SaveSessions replaces the full session mapping.
	SaveSessions(ctx context.Context, sessions map[string]domain.Session) error
	// GetSession returns a single session, or nil when the id is unknown.
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	// UpdateSession writes back a single session by id.
	UpdateSession(ctx context.Context, id string, session domain.Session) error

	LoadInteractions(ctx context.Context) ([]domain.Interaction, error)
	AddInteraction(ctx context.Context, interaction domain.Interaction) error
	GetSessionInteractions(ctx context.Context, sessionID string) ([]domain.Interaction, error)

	LoadIssues(ctx context.Context) ([]domain.Issue, error)
	AddIssue(ctx context.Context, issue domain.Issue) error
	GetSessionIssues(ctx context.Context, sessionID string) ([]domain.Issue, error)
}
