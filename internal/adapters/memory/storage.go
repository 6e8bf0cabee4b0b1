// Package memory provides an in-memory Storage implementation, used by tests
// and as the default backend when no database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
)

// Storage keeps all records in process memory. Safe for concurrent use,
// though the lifecycle controller itself is single-writer.
type Storage struct {
	mu           sync.RWMutex
	sessions     map[string]domain.Session
	interactions []domain.Interaction
	issues       []domain.Issue
}

// NewStorage creates an empty in-memory store.
func NewStorage() *Storage {
	return &Storage{sessions: make(map[string]domain.Session)}
}

func (s *Storage) LoadSessions(_ context.Context) (map[string]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Session, len(s.sessions))
	for id, sess := range s.sessions {
		out[id] = sess
	}
	return out, nil
}

func (s *Storage) SaveSessions(_ context.Context, sessions map[string]domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]domain.Session, len(sessions))
	for id, sess := range sessions {
		s.sessions[id] = sess
	}
	return nil
}

func (s *Storage) GetSession(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[id]; ok {
		return &sess, nil
	}
	return nil, nil
}

func (s *Storage) UpdateSession(_ context.Context, id string, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = session
	return nil
}

func (s *Storage) LoadInteractions(_ context.Context) ([]domain.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Interaction, len(s.interactions))
	copy(out, s.interactions)
	return out, nil
}

func (s *Storage) AddInteraction(_ context.Context, interaction domain.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions = append(s.interactions, interaction)
	return nil
}

func (s *Storage) GetSessionInteractions(_ context.Context, sessionID string) ([]domain.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Interaction
	for _, i := range s.interactions {
		if i.SessionID == sessionID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (s *Storage) LoadIssues(_ context.Context) ([]domain.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Issue, len(s.issues))
	copy(out, s.issues)
	return out, nil
}

func (s *Storage) AddIssue(_ context.Context, issue domain.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issues = append(s.issues, issue)
	return nil
}

func (s *Storage) GetSessionIssues(_ context.Context, sessionID string) ([]domain.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Issue
	for _, i := range s.issues {
		if i.SessionID == sessionID {
			out = append(out, i)
		}
	}
	return out, nil
}
