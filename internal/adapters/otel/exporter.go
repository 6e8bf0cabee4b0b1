// Package otel exports session lifecycle metrics to an OTLP collector.
package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/ports"
)

const (
	serviceName    = "session-tracker"
	serviceVersion = "1.0.0"
)

// Exporter exports session metrics to an OTEL Collector.
type Exporter struct {
	provider          *sdkmetric.MeterProvider
	meter             metric.Meter
	sessionsTotal     metric.Int64Counter
	durationHist      metric.Float64Histogram
	interactionsHist  metric.Int64Histogram
	effectivenessHist metric.Float64Histogram
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	sessionsTotal, err := meter.Int64Counter(
		"session_tracker_sessions_total",
		metric.WithDescription("Total number of completed sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sessions counter: %w", err)
	}

	durationHist, err := meter.Float64Histogram(
		"session_tracker_session_duration_minutes",
		metric.WithDescription("Session duration in minutes"),
		metric.WithUnit("min"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	interactionsHist, err := meter.Int64Histogram(
		"session_tracker_session_interactions",
		metric.WithDescription("Number of interactions per session"),
		metric.WithUnit("{interaction}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating interactions histogram: %w", err)
	}

	effectivenessHist, err := meter.Float64Histogram(
		"session_tracker_session_effectiveness",
		metric.WithDescription("Average effectiveness rating per session"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating effectiveness histogram: %w", err)
	}

	return &Exporter{
		provider:          provider,
		meter:             meter,
		sessionsTotal:     sessionsTotal,
		durationHist:      durationHist,
		interactionsHist:  interactionsHist,
		effectivenessHist: effectivenessHist,
	}, nil
}

// ExportSessionClose exports metrics for a session that just completed.
func (e *Exporter) ExportSessionClose(ctx context.Context, m *ports.SessionCloseMetrics) error {
	opt := metric.WithAttributes(
		attribute.String("task_type", m.TaskType),
		attribute.String("project", m.Project),
		attribute.String("outcome", m.Outcome),
		attribute.String("execution_context", m.ExecutionContext),
		attribute.Bool("auto_closed", m.AutoClosed),
	)

	e.sessionsTotal.Add(ctx, 1, opt)
	e.durationHist.Record(ctx, m.DurationMinutes, opt)
	e.interactionsHist.Record(ctx, m.InteractionCount, opt)
	e.effectivenessHist.Record(ctx, m.AvgEffectiveness, opt)

	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
