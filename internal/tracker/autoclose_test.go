package tracker

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/adapters/memory"
	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
)

func plantActive(t *testing.T, svc *Service, id, executionContext string, startedAgo time.Duration, now time.Time) {
	t.Helper()
	err := svc.storage.UpdateSession(context.Background(), id, domain.Session{
		ID:               id,
		StartTime:        now.Add(-startedAgo).Format(time.RFC3339),
		Status:           domain.StatusActive,
		ExecutionContext: executionContext,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestAutoClose_CapsLongSessions(t *testing.T) {
	svc, store := newTestService(t)
	svc.cfg.MaxSessionHours = 4
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	plantActive(t, svc, "overnight", "foreground", 10*time.Hour, now)

	res := svc.StartSession(ctx, StartParams{Name: "morning", TaskType: "debugging", ExecutionContext: "foreground"})
	if !res.Success {
		t.Fatalf("start failed: %s", res.Error)
	}

	sess, _ := store.GetSession(ctx, "overnight")
	wantEnd := now.Add(-10 * time.Hour).Add(4 * time.Hour).Format(time.RFC3339)
	if sess.EndTime != wantEnd {
		t.Errorf("end time %s, want capped %s", sess.EndTime, wantEnd)
	}
	if !strings.Contains(sess.Notes, "capped") || !strings.Contains(sess.Notes, "10.0h") {
		t.Errorf("note must record the cap and actual elapsed time: %q", sess.Notes)
	}
}

func TestAutoClose_ShortSessionGetsTrueEndTime(t *testing.T) {
	svc, store := newTestService(t)
	svc.cfg.MaxSessionHours = 4
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	plantActive(t, svc, "recent", "foreground", time.Hour, now)

	svc.StartSession(ctx, StartParams{Name: "next", TaskType: "debugging", ExecutionContext: "foreground"})

	sess, _ := store.GetSession(ctx, "recent")
	if sess.EndTime != now.Format(time.RFC3339) {
		t.Errorf("end time %s, want true current time %s", sess.EndTime, now.Format(time.RFC3339))
	}
	if strings.Contains(sess.Notes, "capped") {
		t.Errorf("no cap expected within the limit: %q", sess.Notes)
	}
}

func TestAutoClose_UnparsableStartFallsBackToNow(t *testing.T) {
	svc, store := newTestService(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	err := store.UpdateSession(ctx, "broken", domain.Session{
		ID:               "broken",
		StartTime:        "not-a-timestamp",
		Status:           domain.StatusActive,
		ExecutionContext: "foreground",
		Notes:            "prior note",
	})
	if err != nil {
		t.Fatal(err)
	}

	svc.StartSession(ctx, StartParams{Name: "next", TaskType: "debugging", ExecutionContext: "foreground"})

	sess, _ := store.GetSession(ctx, "broken")
	if sess.EndTime != now.Format(time.RFC3339) {
		t.Errorf("unparsable start must fall back to now, got %s", sess.EndTime)
	}
	if !strings.Contains(sess.Notes, "prior note") || !strings.Contains(sess.Notes, "Auto-closed") {
		t.Errorf("prior notes must be preserved and the closure noted: %q", sess.Notes)
	}
}

func TestShutdownSweep_ClosesAllContexts(t *testing.T) {
	svc, store := newTestService(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	plantActive(t, svc, "fg", "foreground", time.Minute, now)
	plantActive(t, svc, "bg", "background", time.Minute, now)

	res := svc.CloseActiveSessionsOnShutdown(ctx)
	if !res.Success {
		t.Fatalf("shutdown sweep failed: %s", res.Error)
	}
	closed := res.Data["closed_sessions"].([]string)
	if len(closed) != 2 {
		t.Fatalf("expected both contexts swept, got %v", closed)
	}

	for _, id := range []string{"fg", "bg"} {
		sess, _ := store.GetSession(ctx, id)
		if sess.Status != domain.StatusCompleted || sess.Outcome != "partial" {
			t.Errorf("session %s not closed: %+v", id, sess)
		}
		if !strings.Contains(sess.Notes, "shutdown") {
			t.Errorf("shutdown reason missing from note: %q", sess.Notes)
		}
	}
}

func TestShutdownSweep_StorageFailureDegradesToZero(t *testing.T) {
	svc := NewService(failStorage{}, nopLogger{}, &captureExporter{}, DefaultConfig())
	res := svc.CloseActiveSessionsOnShutdown(context.Background())
	if !res.Success {
		t.Fatal("shutdown sweep is best-effort and must not fail")
	}
	if len(res.Data["closed_sessions"].([]string)) != 0 {
		t.Error("expected 0 sessions affected")
	}
}

func TestAutoClose_ExportsMetrics(t *testing.T) {
	exp := &captureExporter{}
	svc := NewService(memory.NewStorage(), nopLogger{}, exp, DefaultConfig())
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	plantActive(t, svc, "metered", "foreground", 30*time.Minute, now)
	svc.CloseActiveSessionsOnShutdown(ctx)

	if len(exp.closed) != 1 {
		t.Fatalf("expected one export, got %d", len(exp.closed))
	}
	m := exp.closed[0]
	if !m.AutoClosed || m.DurationMinutes != 30 {
		t.Errorf("unexpected export: %+v", m)
	}
}
