package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
)

func TestPrintResultSuccess(t *testing.T) {
	res := domain.OK("done", map[string]any{"session_id": "abc"})
	if err := printResult(res); err != nil {
		t.Fatalf("expected nil error for successful result, got %v", err)
	}
}

func TestPrintResultFailure(t *testing.T) {
	res := domain.Fail("not found", "session xyz not found")
	err := printResult(res)
	if err == nil {
		t.Fatal("expected error for failed result")
	}
	if !strings.Contains(err.Error(), "xyz") {
		t.Errorf("error should carry the failure detail, got %q", err.Error())
	}
}

func TestServeErr(t *testing.T) {
	if err := serveErr(nil); err != nil {
		t.Errorf("nil should pass through, got %v", err)
	}
	// SIGINT cancels the context; that is the normal way serve stops.
	if err := serveErr(context.Canceled); err != nil {
		t.Errorf("cancellation must exit clean, got %v", err)
	}
	if err := serveErr(fmt.Errorf("connect: %w", context.Canceled)); err != nil {
		t.Errorf("wrapped cancellation must exit clean, got %v", err)
	}
	boom := errors.New("broken pipe")
	if err := serveErr(boom); !errors.Is(err, boom) {
		t.Errorf("real failures must propagate, got %v", err)
	}
}
