package ports

import "context"

// MetricsExporter exports session metrics to an external observability system.
type MetricsExporter interface {
	// ExportSessionClose exports metrics for a session that just completed.
	ExportSessionClose(ctx context.Context, m *SessionCloseMetrics) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// SessionCloseMetrics describes a completed session for export.
type SessionCloseMetrics struct {
	SessionID        string
	TaskType         string
	Project          string
	Outcome          string
	ExecutionContext string
	AutoClosed       bool

	DurationMinutes  float64
	InteractionCount int64
	AvgEffectiveness float64
}
