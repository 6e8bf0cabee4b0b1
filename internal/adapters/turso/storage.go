package turso

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
)

// Storage persists sessions, interactions and issues as JSON documents.
// Sessions are keyed by id; interactions and issues are append-only logs kept
// in insertion order.
type Storage struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS interactions (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS issues (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	data TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_interactions_session ON interactions(session_id);
CREATE INDEX IF NOT EXISTS idx_issues_session ON issues(session_id);
`

// NewStorage creates the document tables if needed and returns the store.
func NewStorage(db *sql.DB) (*Storage, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) LoadSessions(ctx context.Context) (map[string]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM sessions`)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	defer rows.Close()

	sessions := make(map[string]domain.Session)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sess, err := decodeSession(data)
		if err != nil {
			return nil, err
		}
		sessions[sess.ID] = sess
	}
	return sessions, rows.Err()
}

func (s *Storage) SaveSessions(ctx context.Context, sessions map[string]domain.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	for id, sess := range sessions {
		data, err := encodeDoc(sess.ToMap())
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO sessions (id, data) VALUES (?, ?)`, id, data); err != nil {
			return fmt.Errorf("failed to insert session %s: %w", id, err)
		}
	}
	return tx.Commit()
}

func (s *Storage) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM sessions WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	sess, err := decodeSession(data)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Storage) UpdateSession(ctx context.Context, id string, session domain.Session) error {
	data, err := encodeDoc(session.ToMap())
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, data) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		id, data)
	if err != nil {
		return fmt.Errorf("failed to update session %s: %w", id, err)
	}
	return nil
}

func (s *Storage) LoadInteractions(ctx context.Context) ([]domain.Interaction, error) {
	return s.queryInteractions(ctx, `SELECT data FROM interactions ORDER BY seq`)
}

func (s *Storage) AddInteraction(ctx context.Context, interaction domain.Interaction) error {
	data, err := encodeDoc(interaction.ToMap())
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO interactions (session_id, data) VALUES (?, ?)`,
		interaction.SessionID, data)
	if err != nil {
		return fmt.Errorf("failed to add interaction: %w", err)
	}
	return nil
}

func (s *Storage) GetSessionInteractions(ctx context.Context, sessionID string) ([]domain.Interaction, error) {
	return s.queryInteractions(ctx,
		`SELECT data FROM interactions WHERE session_id = ? ORDER BY seq`, sessionID)
}

func (s *Storage) queryInteractions(ctx context.Context, query string, args ...any) ([]domain.Interaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Interaction
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan interaction row: %w", err)
		}
		doc, err := decodeDoc(data)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.InteractionFromMap(doc))
	}
	return out, rows.Err()
}

func (s *Storage) LoadIssues(ctx context.Context) ([]domain.Issue, error) {
	return s.queryIssues(ctx, `SELECT data FROM issues ORDER BY seq`)
}

func (s *Storage) AddIssue(ctx context.Context, issue domain.Issue) error {
	data, err := encodeDoc(issue.ToMap())
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO issues (session_id, data) VALUES (?, ?)`,
		issue.SessionID, data)
	if err != nil {
		return fmt.Errorf("failed to add issue: %w", err)
	}
	return nil
}

func (s *Storage) GetSessionIssues(ctx context.Context, sessionID string) ([]domain.Issue, error) {
	return s.queryIssues(ctx, `SELECT data FROM issues WHERE session_id = ? ORDER BY seq`, sessionID)
}

func (s *Storage) queryIssues(ctx context.Context, query string, args ...any) ([]domain.Issue, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load issues: %w", err)
	}
	defer rows.Close()

	var out []domain.Issue
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan issue row: %w", err)
		}
		doc, err := decodeDoc(data)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.IssueFromMap(doc))
	}
	return out, rows.Err()
}

func encodeDoc(doc map[string]any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(data), nil
}

func decodeDoc(data string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}

func decodeSession(data string) (domain.Session, error) {
	doc, err := decodeDoc(data)
	if err != nil {
		return domain.Session{}, err
	}
	sess, err := domain.SessionFromMap(doc)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to decode session document: %w", err)
	}
	return sess, nil
}
