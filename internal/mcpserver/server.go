// Package mcpserver exposes the lifecycle controller as MCP tools over a
// stdio transport. Tool handlers translate the controller's uniform results
// into tool content; the transport layer never sees a Go error from the
// controller.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/domain"
	"github.com/mgrandau/ai-session-tracker-mcp/internal/ports"
	"github.com/mgrandau/ai-session-tracker-mcp/internal/tracker"
)

const (
	serverName    = "ai-session-tracker"
	serverVersion = "1.0.0"
)

// Server wires the lifecycle controller into an MCP server.
type Server struct {
	svc       *tracker.Service
	log       ports.Logger
	mcpServer *mcp.Server
}

// New creates the MCP server and registers every tool.
func New(svc *tracker.Service, log ports.Logger) *Server {
	s := &Server{
		svc: svc,
		log: log,
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Version: serverVersion,
		}, nil),
	}
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server, used by tests to connect over
// in-memory transports.
func (s *Server) MCP() *mcp.Server {
	return s.mcpServer
}

// Run serves MCP over stdio until the context is cancelled or the client
// disconnects, then sweeps any sessions still open. A process shutdown must
// not leave a session active.
func (s *Server) Run(ctx context.Context) error {
	err := s.mcpServer.Run(ctx, &mcp.StdioTransport{})

	res := s.svc.CloseActiveSessionsOnShutdown(context.Background())
	s.log.Debug(fmt.Sprintf("shutdown cleanup: %s", res.Message))

	return err
}

type startSessionInput struct {
	Name             string `json:"name"`
	TaskType         string `json:"task_type"`
	ModelName        string `json:"model_name,omitempty"`
	EstimateMinutes  int    `json:"estimate_minutes,omitempty"`
	EstimateSource   string `json:"estimate_source,omitempty"`
	Context          string `json:"context,omitempty"`
	ExecutionContext string `json:"execution_context,omitempty"`
	Developer        string `json:"developer,omitempty"`
	Project          string `json:"project,omitempty"`
}

type logInteractionInput struct {
	SessionID           string   `json:"session_id"`
	Prompt              string   `json:"prompt"`
	ResponseSummary     string   `json:"response_summary,omitempty"`
	EffectivenessRating int      `json:"effectiveness_rating"`
	IterationCount      int      `json:"iteration_count,omitempty"`
	ToolsUsed           []string `json:"tools_used,omitempty"`
}

type endSessionInput struct {
	SessionID            string `json:"session_id"`
	Outcome              string `json:"outcome"`
	Notes                string `json:"notes,omitempty"`
	FinalEstimateMinutes int    `json:"final_estimate_minutes,omitempty"`
}

type flagIssueInput struct {
	SessionID   string `json:"session_id"`
	IssueType   string `json:"issue_type"`
	Description string `json:"description,omitempty"`
	Severity    string `json:"severity"`
}

type codeMetricInput struct {
	FunctionName       string `json:"function_name"`
	ModificationType   string `json:"modification_type"`
	LinesAdded         int    `json:"lines_added,omitempty"`
	LinesModified      int    `json:"lines_modified,omitempty"`
	LinesDeleted       int    `json:"lines_deleted,omitempty"`
	Complexity         int    `json:"complexity,omitempty"`
	DocumentationScore int    `json:"documentation_score,omitempty"`
	HasDocstring       bool   `json:"has_docstring,omitempty"`
	HasTypeHints       bool   `json:"has_type_hints,omitempty"`
}

type recordCodeMetricsInput struct {
	SessionID string            `json:"session_id"`
	Functions []codeMetricInput `json:"functions"`
}

type sessionFilterInput struct {
	SessionID string `json:"session_id,omitempty"`
}

type emptyInput struct{}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_session",
		Description: "Start tracking a new AI-assisted work session. Auto-closes any other active session in the same execution context.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in startSessionInput) (*mcp.CallToolResult, any, error) {
		return toolResult(s.svc.StartSession(ctx, tracker.StartParams{
			Name:             in.Name,
			TaskType:         in.TaskType,
			ModelName:        in.ModelName,
			EstimateMinutes:  in.EstimateMinutes,
			EstimateSource:   in.EstimateSource,
			Context:          in.Context,
			ExecutionContext: in.ExecutionContext,
			Developer:        in.Developer,
			Project:          in.Project,
		}))
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_interaction",
		Description: "Record one prompt/response exchange for a session, with a 1-5 effectiveness rating.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in logInteractionInput) (*mcp.CallToolResult, any, error) {
		return toolResult(s.svc.LogInteraction(ctx, in.SessionID, in.Prompt, in.ResponseSummary,
			in.EffectivenessRating, in.IterationCount, in.ToolsUsed))
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "end_session",
		Description: "Complete a session with an outcome (success, partial or failed) and optional notes.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in endSessionInput) (*mcp.CallToolResult, any, error) {
		return toolResult(s.svc.EndSession(ctx, in.SessionID, in.Outcome, in.Notes, in.FinalEstimateMinutes))
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "flag_issue",
		Description: "Flag a quality problem (hallucination, wrong approach, etc.) against a session.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in flagIssueInput) (*mcp.CallToolResult, any, error) {
		return toolResult(s.svc.FlagIssue(ctx, in.SessionID, in.IssueType, in.Description, in.Severity))
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_code_metrics",
		Description: "Attach analyzer-produced per-function quality metrics to a session.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in recordCodeMetricsInput) (*mcp.CallToolResult, any, error) {
		records := make([]domain.CodeMetric, len(in.Functions))
		for i, f := range in.Functions {
			records[i] = domain.CodeMetric{
				FunctionName:       f.FunctionName,
				ModificationType:   f.ModificationType,
				LinesAdded:         f.LinesAdded,
				LinesModified:      f.LinesModified,
				LinesDeleted:       f.LinesDeleted,
				Complexity:         f.Complexity,
				DocumentationScore: f.DocumentationScore,
				HasDocstring:       f.HasDocstring,
				HasTypeHints:       f.HasTypeHints,
			}
		}
		return toolResult(s.svc.RecordCodeMetrics(ctx, in.SessionID, records))
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_active_sessions",
		Description: "List sessions that have not been completed yet.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
		return toolResult(s.svc.GetActiveSessions(ctx))
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_observability",
		Description: "Render the session/effectiveness/issue/ROI summary report. Scope is either one session (by session_id) or the full history; no time-range filter.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in sessionFilterInput) (*mcp.CallToolResult, any, error) {
		return toolResult(s.svc.GetObservability(ctx, in.SessionID))
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "calculate_roi",
		Description: "Compute return-on-investment figures from the full session history.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
		return toolResult(s.svc.CalculateROI(ctx))
	})
}

// toolResult renders a controller result as tool content. Failed results map
// to IsError, never to a Go error: a protocol error would tear down the
// session where a failed result should not.
func toolResult(res domain.Result) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
			IsError: true,
		}, nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		IsError: !res.Success,
	}, nil, nil
}
