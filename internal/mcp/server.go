// Package mcp provides the MCP (Model Context Protocol) server that
// exposes the DORA metrics calculators as tools for remote callers.
package mcp

import (
	"context"
	"time"

	"github.com/cloudsteak/dora-mcp-server/internal/observability"
	"github.com/cloudsteak/dora-mcp-server/pkg/dora"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the metrics engine and exposes it as MCP tools.
type Server struct {
	server *gomcp.Server

	eventLog          observability.EventLog
	defaultPeriodDays int
}

// Option configures a Server.
type Option func(*Server)

// WithEventLog enables audit logging of tool invocations. A nil log
// disables auditing.
func WithEventLog(el observability.EventLog) Option {
	return func(s *Server) { s.eventLog = el }
}

// WithDefaultPeriodDays overrides the measurement period used when a
// deployment-frequency call omits days.
func WithDefaultPeriodDays(days int) Option {
	return func(s *Server) {
		if days > 0 {
			s.defaultPeriodDays = days
		}
	}
}

// NewServer creates an MCP server announcing itself under the given name
// and version, with all five DORA tools registered.
func NewServer(name, version string, opts ...Option) *Server {
	if name == "" {
		name = "dora-metrics"
	}
	if version == "" {
		version = "dev"
	}

	s := &Server{defaultPeriodDays: 30}
	for _, opt := range opts {
		opt(s)
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: name, Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type deploymentFrequencyInput struct {
	Deployments int  `json:"deployments" jsonschema:"required,number of deployments in the measurement period"`
	Days        *int `json:"days,omitempty" jsonschema:"number of days in the measurement period (default 30)"`
}

type deploymentFrequencyOutput struct {
	Metric           string  `json:"metric"`
	Deployments      int     `json:"deployments"`
	Days             int     `json:"days"`
	FrequencyPerDay  float64 `json:"frequency_per_day"`
	PerformanceLevel string  `json:"performance_level"`
	Description      string  `json:"description"`
	CalculatedAt     string  `json:"calculated_at"`
}

type leadTimeInput struct {
	CommitToDeployHours []float64 `json:"commit_to_deploy_hours" jsonschema:"required,hours from commit to deployment for each change"`
}

type leadTimeOutput struct {
	Metric           string  `json:"metric"`
	SampleSize       int     `json:"sample_size"`
	AverageHours     float64 `json:"average_hours"`
	AverageDays      float64 `json:"average_days"`
	MinHours         float64 `json:"min_hours"`
	MaxHours         float64 `json:"max_hours"`
	PerformanceLevel string  `json:"performance_level"`
	Description      string  `json:"description"`
	CalculatedAt     string  `json:"calculated_at"`
}

type changeFailureRateInput struct {
	TotalDeployments  int `json:"total_deployments" jsonschema:"required,total number of deployments"`
	FailedDeployments int `json:"failed_deployments" jsonschema:"required,number of deployments that caused failures"`
}

type changeFailureRateOutput struct {
	Metric             string  `json:"metric"`
	TotalDeployments   int     `json:"total_deployments"`
	FailedDeployments  int     `json:"failed_deployments"`
	FailureRatePercent float64 `json:"failure_rate_percent"`
	PerformanceLevel   string  `json:"performance_level"`
	Description        string  `json:"description"`
	CalculatedAt       string  `json:"calculated_at"`
}

type recoveryTimeInput struct {
	RecoveryTimesHours []float64 `json:"recovery_times_hours" jsonschema:"required,recovery time in hours for each incident"`
}

type recoveryTimeOutput struct {
	Metric           string  `json:"metric"`
	SampleSize       int     `json:"sample_size"`
	AverageHours     float64 `json:"average_hours"`
	MinHours         float64 `json:"min_hours"`
	MaxHours         float64 `json:"max_hours"`
	PerformanceLevel string  `json:"performance_level"`
	Description      string  `json:"description"`
	CalculatedAt     string  `json:"calculated_at"`
}

type summaryInput struct {
	DeploymentFrequencyPerDay float64 `json:"deployment_frequency_per_day" jsonschema:"required,average deployments per day"`
	LeadTimeDays              float64 `json:"lead_time_days" jsonschema:"required,average lead time in days"`
	ChangeFailureRatePercent  float64 `json:"change_failure_rate_percent" jsonschema:"required,failure rate as a percentage (0-100)"`
	MTTRHours                 float64 `json:"mttr_hours" jsonschema:"required,mean time to recovery in hours"`
}

type metricScoreOutput struct {
	Level string `json:"level"`
	Score int    `json:"score"`
}

type summaryOutput struct {
	Metrics            map[string]metricScoreOutput `json:"metrics"`
	TotalScore         int                          `json:"total_score"`
	AverageScore       float64                      `json:"average_score"`
	OverallPerformance string                       `json:"overall_performance"`
	CalculatedAt       string                       `json:"calculated_at"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_deployment_frequency",
		Description: "Calculate the deployment frequency metric from a deployment count and measurement period, classified against the DORA benchmarks.",
	}, s.handleDeploymentFrequency)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_lead_time_for_changes",
		Description: "Calculate the lead time for changes metric from per-change commit-to-deploy durations in hours.",
	}, s.handleLeadTime)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_change_failure_rate",
		Description: "Calculate the change failure rate metric from total and failed deployment counts.",
	}, s.handleChangeFailureRate)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_mean_time_to_recovery",
		Description: "Calculate the mean time to recovery (MTTR) metric from per-incident recovery times in hours.",
	}, s.handleRecoveryTime)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_dora_summary",
		Description: "Classify four pre-computed DORA rates and aggregate them into an overall software delivery performance assessment.",
	}, s.handleSummary)
}

// --- Tool handlers ---

func (s *Server) handleDeploymentFrequency(_ context.Context, _ *gomcp.CallToolRequest, input deploymentFrequencyInput) (*gomcp.CallToolResult, deploymentFrequencyOutput, error) {
	days := s.defaultPeriodDays
	if input.Days != nil {
		days = *input.Days
	}

	result, err := dora.DeploymentFrequency(input.Deployments, days)
	if err != nil {
		s.audit("get_deployment_frequency", err, nil)
		return errorResult(err.Error()), deploymentFrequencyOutput{}, nil
	}
	s.audit("get_deployment_frequency", nil, map[string]any{
		"deployments": result.Deployments,
		"days":        result.Days,
		"level":       string(result.PerformanceLevel),
	})

	out := deploymentFrequencyOutput{
		Metric:           result.Metric,
		Deployments:      result.Deployments,
		Days:             result.Days,
		FrequencyPerDay:  result.FrequencyPerDay,
		PerformanceLevel: string(result.PerformanceLevel),
		Description:      result.Description,
		CalculatedAt:     result.CalculatedAt.Format(time.RFC3339),
	}
	return nil, out, nil
}

func (s *Server) handleLeadTime(_ context.Context, _ *gomcp.CallToolRequest, input leadTimeInput) (*gomcp.CallToolResult, leadTimeOutput, error) {
	result, err := dora.LeadTimeForChanges(input.CommitToDeployHours)
	if err != nil {
		s.audit("get_lead_time_for_changes", err, nil)
		return errorResult(err.Error()), leadTimeOutput{}, nil
	}
	s.audit("get_lead_time_for_changes", nil, map[string]any{
		"sample_size": result.SampleSize,
		"level":       string(result.PerformanceLevel),
	})

	out := leadTimeOutput{
		Metric:           result.Metric,
		SampleSize:       result.SampleSize,
		AverageHours:     result.AverageHours,
		AverageDays:      result.AverageDays,
		MinHours:         result.MinHours,
		MaxHours:         result.MaxHours,
		PerformanceLevel: string(result.PerformanceLevel),
		Description:      result.Description,
		CalculatedAt:     result.CalculatedAt.Format(time.RFC3339),
	}
	return nil, out, nil
}

func (s *Server) handleChangeFailureRate(_ context.Context, _ *gomcp.CallToolRequest, input changeFailureRateInput) (*gomcp.CallToolResult, changeFailureRateOutput, error) {
	result, err := dora.ChangeFailureRate(input.TotalDeployments, input.FailedDeployments)
	if err != nil {
		s.audit("get_change_failure_rate", err, nil)
		return errorResult(err.Error()), changeFailureRateOutput{}, nil
	}
	s.audit("get_change_failure_rate", nil, map[string]any{
		"total_deployments":  result.TotalDeployments,
		"failed_deployments": result.FailedDeployments,
		"level":              string(result.PerformanceLevel),
	})

	out := changeFailureRateOutput{
		Metric:             result.Metric,
		TotalDeployments:   result.TotalDeployments,
		FailedDeployments:  result.FailedDeployments,
		FailureRatePercent: result.FailureRatePercent,
		PerformanceLevel:   string(result.PerformanceLevel),
		Description:        result.Description,
		CalculatedAt:       result.CalculatedAt.Format(time.RFC3339),
	}
	return nil, out, nil
}

func (s *Server) handleRecoveryTime(_ context.Context, _ *gomcp.CallToolRequest, input recoveryTimeInput) (*gomcp.CallToolResult, recoveryTimeOutput, error) {
	result, err := dora.MeanTimeToRecovery(input.RecoveryTimesHours)
	if err != nil {
		s.audit("get_mean_time_to_recovery", err, nil)
		return errorResult(err.Error()), recoveryTimeOutput{}, nil
	}
	s.audit("get_mean_time_to_recovery", nil, map[string]any{
		"sample_size": result.SampleSize,
		"level":       string(result.PerformanceLevel),
	})

	out := recoveryTimeOutput{
		Metric:           result.Metric,
		SampleSize:       result.SampleSize,
		AverageHours:     result.AverageHours,
		MinHours:         result.MinHours,
		MaxHours:         result.MaxHours,
		PerformanceLevel: string(result.PerformanceLevel),
		Description:      result.Description,
		CalculatedAt:     result.CalculatedAt.Format(time.RFC3339),
	}
	return nil, out, nil
}

func (s *Server) handleSummary(_ context.Context, _ *gomcp.CallToolRequest, input summaryInput) (*gomcp.CallToolResult, summaryOutput, error) {
	result, err := dora.Summary(
		input.DeploymentFrequencyPerDay,
		input.LeadTimeDays,
		input.ChangeFailureRatePercent,
		input.MTTRHours,
	)
	if err != nil {
		s.audit("get_dora_summary", err, nil)
		return errorResult(err.Error()), summaryOutput{}, nil
	}
	s.audit("get_dora_summary", nil, map[string]any{
		"total_score": result.TotalScore,
		"overall":     string(result.OverallPerformance),
	})

	out := summaryOutput{
		Metrics:            make(map[string]metricScoreOutput, len(result.Metrics)),
		TotalScore:         result.TotalScore,
		AverageScore:       result.AverageScore,
		OverallPerformance: string(result.OverallPerformance),
		CalculatedAt:       result.CalculatedAt.Format(time.RFC3339),
	}
	for name, ms := range result.Metrics {
		out.Metrics[name] = metricScoreOutput{Level: string(ms.Level), Score: ms.Score}
	}
	return nil, out, nil
}

// --- Helpers ---

// audit records a tool invocation in the event log when one is
// configured. A failed write never fails the tool call.
func (s *Server) audit(tool string, callErr error, data map[string]any) {
	if s.eventLog == nil {
		return
	}

	event := observability.Event{
		Time:    time.Now().UTC(),
		Tool:    tool,
		Outcome: observability.OutcomeOK,
		Data:    data,
	}
	if callErr != nil {
		event.Outcome = observability.OutcomeError
		event.Message = callErr.Error()
	}

	_ = s.eventLog.Write(event)
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
