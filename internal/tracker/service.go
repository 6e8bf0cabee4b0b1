// Package tracker implements the session lifecycle controller: it validates
// inputs, applies auto-close and duration-capping policy, and reduces history
// into response figures. Every public operation returns a domain.Result;
// storage failures are translated at this boundary and never propagate.
package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
	"github.com/mgrandau/ai-session-tracker-mcp/internal/metrics"
	"github.com/mgrandau/ai-session-tracker-mcp/internal/ports"
)

// Service orchestrates session state transitions.
type Service struct {
	storage  ports.Storage
	log      ports.Logger
	exporter ports.MetricsExporter
	cfg      Config

	// now is swapped in tests to pin the clock.
	now func() time.Time
}

// NewService creates a lifecycle controller over the given collaborators.
func NewService(storage ports.Storage, log ports.Logger, exporter ports.MetricsExporter, cfg Config) *Service {
	if cfg.MaxSessionHours <= 0 {
		cfg.MaxSessionHours = DefaultMaxSessionHours
	}
	return &Service{
		storage:  storage,
		log:      log,
		exporter: exporter,
		cfg:      cfg,
		now:      time.Now,
	}
}

// StartParams carries the inputs of a session start.
type StartParams struct {
	Name             string
	TaskType         string
	ModelName        string
	EstimateMinutes  int
	EstimateSource   string
	Context          string
	ExecutionContext string
	Developer        string
	Project          string
}

// StartSession validates the request, auto-closes every active session
// sharing its execution context, then creates and persists a new active
// session. The ids of swept sessions are returned in the result data.
func (s *Service) StartSession(ctx context.Context, p StartParams) domain.Result {
	if strings.TrimSpace(p.Name) == "" {
		return domain.Fail("validation failed", "session name is required")
	}
	if !domain.IsValidTaskType(p.TaskType) {
		return domain.Fail("validation failed",
			fmt.Sprintf("invalid task_type %q, expected one of %s", p.TaskType, strings.Join(domain.ValidTaskTypes, ", ")))
	}
	if p.EstimateSource == "" {
		p.EstimateSource = "default"
	}
	if !domain.IsValidEstimateSource(p.EstimateSource) {
		return domain.Fail("validation failed",
			fmt.Sprintf("invalid estimate_source %q, expected one of %s", p.EstimateSource, strings.Join(domain.ValidEstimateSources, ", ")))
	}
	if p.ExecutionContext == "" {
		p.ExecutionContext = "foreground"
	}
	if !domain.IsValidExecutionContext(p.ExecutionContext) {
		return domain.Fail("validation failed",
			fmt.Sprintf("invalid execution_context %q, expected one of %s", p.ExecutionContext, strings.Join(domain.ValidExecutionContexts, ", ")))
	}

	// Independent foreground and background workflows must not terminate
	// each other, so the sweep is scoped to the new session's context.
	closed := s.sweep(ctx, p.ExecutionContext, "new session started")

	sess := domain.NewSession(p.Name, p.TaskType, p.Context, p.ModelName,
		p.EstimateMinutes, p.EstimateSource, p.Developer, p.Project, p.ExecutionContext)

	if err := s.storage.UpdateSession(ctx, sess.ID, sess); err != nil {
		s.log.Error(fmt.Sprintf("failed to persist new session %s: %v", sess.ID, err))
		return domain.Fail("failed to start session", err.Error())
	}

	s.log.Debug(fmt.Sprintf("started session %s (%s, %s)", sess.ID, sess.TaskType, sess.ExecutionContext))
	return domain.OK(fmt.Sprintf("Session %s started", sess.ID), map[string]any{
		"session_id":           sess.ID,
		"start_time":           sess.StartTime,
		"auto_closed_sessions": closed,
	})
}

// LogInteraction appends a prompt/response exchange to a session, then
// recomputes the session's interaction count and average effectiveness with a
// full recount. The recount is O(n) per call but cannot drift.
func (s *Service) LogInteraction(ctx context.Context, sessionID, prompt, responseSummary string, rating, iterations int, toolsUsed []string) domain.Result {
	sess, res := s.mustGetSession(ctx, sessionID)
	if sess == nil {
		return res
	}

	interaction := domain.NewInteraction(sessionID, prompt, responseSummary, rating, iterations, toolsUsed)
	if err := s.storage.AddInteraction(ctx, interaction); err != nil {
		s.log.Error(fmt.Sprintf("failed to add interaction for %s: %v", sessionID, err))
		return domain.Fail("failed to log interaction", err.Error())
	}

	all, err := s.storage.GetSessionInteractions(ctx, sessionID)
	if err != nil {
		s.log.Error(fmt.Sprintf("failed to recount interactions for %s: %v", sessionID, err))
		return domain.Fail("failed to log interaction", err.Error())
	}

	sess.InteractionCount = len(all)
	sess.AvgEffectiveness = metrics.AverageEffectiveness(all)
	if err := s.storage.UpdateSession(ctx, sessionID, *sess); err != nil {
		s.log.Error(fmt.Sprintf("failed to update session %s: %v", sessionID, err))
		return domain.Fail("failed to log interaction", err.Error())
	}

	return domain.OK("Interaction logged", map[string]any{
		"interaction_id":    interaction.ID,
		"interaction_count": sess.InteractionCount,
		"avg_effectiveness": sess.AvgEffectiveness,
	})
}

// EndSession explicitly completes a session. The end time is the true current
// time, never capped; capping applies only to auto-close.
func (s *Service) EndSession(ctx context.Context, sessionID, outcome, notes string, finalEstimateMinutes int) domain.Result {
	sess, res := s.mustGetSession(ctx, sessionID)
	if sess == nil {
		return res
	}
	// Completion is a one-way transition; a second end must not restamp the
	// outcome or move the end time, which would inflate the duration.
	if sess.Status == domain.StatusCompleted {
		return domain.Fail("session already completed",
			fmt.Sprintf("session %s was already completed with outcome %q", sessionID, sess.Outcome))
	}
	if !domain.IsValidOutcome(outcome) {
		return domain.Fail("validation failed",
			fmt.Sprintf("invalid outcome %q, expected one of %s", outcome, strings.Join(domain.ValidOutcomes, ", ")))
	}

	sess.Status = domain.StatusCompleted
	sess.Outcome = outcome
	sess.EndTime = s.now().UTC().Format(time.RFC3339)
	if notes != "" {
		sess.Notes = appendNote(sess.Notes, notes)
	}
	if finalEstimateMinutes > 0 {
		sess.EstimateMinutes = finalEstimateMinutes
	}

	if err := s.storage.UpdateSession(ctx, sessionID, *sess); err != nil {
		s.log.Error(fmt.Sprintf("failed to end session %s: %v", sessionID, err))
		return domain.Fail("failed to end session", err.Error())
	}

	duration := metrics.SessionDuration(*sess)
	s.exportClose(ctx, *sess, duration, false)

	issueCount := 0
	if issues, err := s.storage.GetSessionIssues(ctx, sessionID); err == nil {
		issueCount = len(issues)
	}

	s.log.Debug(fmt.Sprintf("ended session %s (%s, %.1f min)", sessionID, outcome, duration))
	return domain.OK(fmt.Sprintf("Session %s completed", sessionID), map[string]any{
		"duration_minutes":  duration,
		"outcome":           outcome,
		"interaction_count": sess.InteractionCount,
		"avg_effectiveness": sess.AvgEffectiveness,
		"issue_count":       issueCount,
	})
}

// FlagIssue records a quality problem against a session. The session record
// itself is not mutated; issues reference it by id.
func (s *Service) FlagIssue(ctx context.Context, sessionID, issueType, description, severity string) domain.Result {
	sess, res := s.mustGetSession(ctx, sessionID)
	if sess == nil {
		return res
	}
	if !domain.IsValidSeverity(severity) {
		return domain.Fail("validation failed",
			fmt.Sprintf("invalid severity %q, expected one of %s", severity, strings.Join(domain.ValidSeverities, ", ")))
	}

	issue := domain.NewIssue(sessionID, issueType, description, severity)
	if err := s.storage.AddIssue(ctx, issue); err != nil {
		s.log.Error(fmt.Sprintf("failed to add issue for %s: %v", sessionID, err))
		return domain.Fail("failed to flag issue", err.Error())
	}

	return domain.OK("Issue flagged", map[string]any{
		"issue_id": issue.ID,
		"severity": severity,
	})
}

// RecordCodeMetrics appends analyzer-produced function records verbatim to
// the session's metric list.
func (s *Service) RecordCodeMetrics(ctx context.Context, sessionID string, records []domain.CodeMetric) domain.Result {
	sess, res := s.mustGetSession(ctx, sessionID)
	if sess == nil {
		return res
	}

	sess.CodeMetrics = append(sess.CodeMetrics, records...)
	if err := s.storage.UpdateSession(ctx, sessionID, *sess); err != nil {
		s.log.Error(fmt.Sprintf("failed to record code metrics for %s: %v", sessionID, err))
		return domain.Fail("failed to record code metrics", err.Error())
	}

	var effort float64
	for _, r := range records {
		effort += r.EffortScore()
	}
	return domain.OK("Code metrics recorded", map[string]any{
		"functions_recorded": len(records),
		"effort_score":       effort,
		"total_functions":    len(sess.CodeMetrics),
	})
}

// GetActiveSessions returns minimal identifying information for every session
// that is not completed. It never fails: a storage error degrades to an empty
// list with the detail carried in the result's error field.
func (s *Service) GetActiveSessions(ctx context.Context) domain.Result {
	sessions, err := s.storage.LoadSessions(ctx)
	if err != nil {
		s.log.Error(fmt.Sprintf("failed to load sessions: %v", err))
		return domain.Result{
			Success: true,
			Message: "0 active sessions",
			Data:    map[string]any{"sessions": []map[string]any{}},
			Error:   err.Error(),
		}
	}

	var active []map[string]any
	for _, sess := range sessions {
		if sess.Status == domain.StatusCompleted {
			continue
		}
		active = append(active, map[string]any{
			"id":         sess.ID,
			"name":       sess.Name,
			"task_type":  sess.TaskType,
			"start_time": sess.StartTime,
		})
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i]["start_time"].(string) < active[j]["start_time"].(string)
	})
	if active == nil {
		active = []map[string]any{}
	}

	return domain.OK(fmt.Sprintf("%d active sessions", len(active)), map[string]any{
		"sessions": active,
	})
}

// GetObservability renders the summary report, optionally filtered to a
// single session. An explicit session id that matches nothing is not-found.
func (s *Service) GetObservability(ctx context.Context, sessionID string) domain.Result {
	sessions, err := s.storage.LoadSessions(ctx)
	if err != nil {
		return domain.Fail("failed to load sessions", err.Error())
	}
	interactions, err := s.storage.LoadInteractions(ctx)
	if err != nil {
		return domain.Fail("failed to load interactions", err.Error())
	}
	issues, err := s.storage.LoadIssues(ctx)
	if err != nil {
		return domain.Fail("failed to load issues", err.Error())
	}

	if sessionID != "" {
		sess, ok := sessions[sessionID]
		if !ok {
			return domain.Fail("session not found", fmt.Sprintf("no session with id %q", sessionID))
		}
		sessions = map[string]domain.Session{sessionID: sess}

		filteredInteractions := interactions[:0:0]
		for _, i := range interactions {
			if i.SessionID == sessionID {
				filteredInteractions = append(filteredInteractions, i)
			}
		}
		interactions = filteredInteractions

		filteredIssues := issues[:0:0]
		for _, i := range issues {
			if i.SessionID == sessionID {
				filteredIssues = append(filteredIssues, i)
			}
		}
		issues = filteredIssues
	}

	report := metrics.SummaryReport(s.cfg.Metrics, sessions, interactions, issues)
	return domain.OK("Observability report", map[string]any{
		"report":            report,
		"session_count":     len(sessions),
		"interaction_count": len(interactions),
		"issue_count":       len(issues),
	})
}

// CalculateROI reduces the full history into ROI figures.
func (s *Service) CalculateROI(ctx context.Context) domain.Result {
	sessions, err := s.storage.LoadSessions(ctx)
	if err != nil {
		return domain.Fail("failed to load sessions", err.Error())
	}
	interactions, err := s.storage.LoadInteractions(ctx)
	if err != nil {
		return domain.Fail("failed to load interactions", err.Error())
	}

	roi := metrics.CalculateROI(s.cfg.Metrics, sessions, interactions)
	return domain.OK("ROI calculated", map[string]any{"roi": roi})
}

// mustGetSession looks up a session, translating storage failure and absence
// into failed results. The returned session is non-nil exactly when the
// Result should be ignored.
func (s *Service) mustGetSession(ctx context.Context, sessionID string) (*domain.Session, domain.Result) {
	sess, err := s.storage.GetSession(ctx, sessionID)
	if err != nil {
		s.log.Error(fmt.Sprintf("failed to get session %s: %v", sessionID, err))
		return nil, domain.Fail("storage error", err.Error())
	}
	if sess == nil {
		return nil, domain.Fail("session not found", fmt.Sprintf("no session with id %q", sessionID))
	}
	return sess, domain.Result{}
}

func (s *Service) exportClose(ctx context.Context, sess domain.Session, durationMinutes float64, autoClosed bool) {
	if s.exporter == nil {
		return
	}
	err := s.exporter.ExportSessionClose(ctx, &ports.SessionCloseMetrics{
		SessionID:        sess.ID,
		TaskType:         sess.TaskType,
		Project:          sess.Project,
		Outcome:          sess.Outcome,
		ExecutionContext: sess.ExecutionContext,
		AutoClosed:       autoClosed,
		DurationMinutes:  durationMinutes,
		InteractionCount: int64(sess.InteractionCount),
		AvgEffectiveness: sess.AvgEffectiveness,
	})
	if err != nil {
		s.log.Debug(fmt.Sprintf("metrics export failed for %s: %v", sess.ID, err))
	}
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}
