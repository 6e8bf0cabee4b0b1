package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
	"github.com/mgrandau/ai-session-tracker-mcp/internal/metrics"
)

// CloseActiveSessionsOnShutdown sweeps every active session regardless of
// execution context. A start-triggered sweep is context-scoped; a process
// shutdown must not leave any session open.
func (s *Service) CloseActiveSessionsOnShutdown(ctx context.Context) domain.Result {
	closed := s.sweep(ctx, "", "shutdown")
	return domain.OK(fmt.Sprintf("%d sessions auto-closed", len(closed)), map[string]any{
		"closed_sessions": closed,
	})
}

// sweep auto-closes active sessions, restricted to one execution context when
// executionContext is non-empty. Best-effort: storage failures degrade to
// "0 sessions affected" so a hiccup never blocks the primary operation.
func (s *Service) sweep(ctx context.Context, executionContext, reason string) []string {
	sessions, err := s.storage.LoadSessions(ctx)
	if err != nil {
		s.log.Error(fmt.Sprintf("auto-close sweep skipped, failed to load sessions: %v", err))
		return []string{}
	}

	closed := []string{}
	for id, sess := range sessions {
		if sess.Status == domain.StatusCompleted {
			continue
		}
		if executionContext != "" && sess.ExecutionContext != executionContext {
			continue
		}

		updated := s.applyAutoClose(sess, reason)
		if err := s.storage.UpdateSession(ctx, id, updated); err != nil {
			s.log.Error(fmt.Sprintf("failed to auto-close session %s: %v", id, err))
			continue
		}
		s.log.Debug(fmt.Sprintf("auto-closed session %s (%s)", id, reason))
		s.exportClose(ctx, updated, metrics.SessionDuration(updated), true)
		closed = append(closed, id)
	}
	return closed
}

// applyAutoClose completes a session with outcome "partial" and a capped end
// time. If the session has already exceeded MaxSessionHours, the stored end
// time is clamped to start + MaxSessionHours and the note records the actual
// elapsed time. An unparsable start falls back to the current time, uncapped.
func (s *Service) applyAutoClose(sess domain.Session, reason string) domain.Session {
	now := s.now().UTC()
	end := now
	note := fmt.Sprintf("[Auto-closed: %s]", reason)

	if start, err := metrics.ParseTimestamp(sess.StartTime); err == nil {
		maxEnd := start.Add(time.Duration(s.cfg.MaxSessionHours * float64(time.Hour)))
		if now.After(maxEnd) {
			end = maxEnd
			note = fmt.Sprintf("[Auto-closed: %s] Duration capped at %.1fh (actual elapsed %.1fh)",
				reason, s.cfg.MaxSessionHours, now.Sub(start).Hours())
		}
	}

	sess.Status = domain.StatusCompleted
	sess.Outcome = "partial"
	sess.EndTime = end.UTC().Format(time.RFC3339)
	sess.Notes = appendNote(sess.Notes, note)
	return sess
}
