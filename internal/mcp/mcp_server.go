// Package mcp provides the Model Context Protocol (MCP) server implementation.
// It is the summary interface the canned-response collaborator consumes: the
// engine hands over statistics, the collaborator produces the narrative.
package mcp

import (
	"context"

	"github.com/finsight/finsight/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the FinSight MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"FinSight Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: get_dataset_summary ---
	s.AddTool(mcp.NewTool("get_dataset_summary",
		mcp.WithDescription("Merge spreadsheet exports and return the dataset summary: row count, column roles, per-measure statistics and the top anomalies."),
		mcp.WithString("sources", mcp.Description("Comma-separated paths to CSV/XLSX source files."), mcp.Required()),
		mcp.WithString("measure", mcp.Description("Target measure column (defaults to the first numeric column).")),
	), h.handleGetDatasetSummary)

	// --- 2. Tool: get_health_scores ---
	s.AddTool(mcp.NewTool("get_health_scores",
		mcp.WithDescription("Compute the four financial health indicators (0-100) over the merged dataset."),
		mcp.WithString("sources", mcp.Description("Comma-separated paths to CSV/XLSX source files."), mcp.Required()),
		mcp.WithNumber("seed", mcp.Description("Seed for the placeholder indicators (omit for a time-based seed).")),
	), h.handleGetHealthScores)

	// --- 3. Tool: get_anomalies ---
	s.AddTool(mcp.NewTool("get_anomalies",
		mcp.WithDescription("Detect per-category statistical outliers (2-sigma rule) in one measure."),
		mcp.WithString("sources", mcp.Description("Comma-separated paths to CSV/XLSX source files."), mcp.Required()),
		mcp.WithString("measure", mcp.Description("Target measure column (defaults to the first numeric column).")),
	), h.handleGetAnomalies)

	// --- 4. Tool: get_forecast ---
	s.AddTool(mcp.NewTool("get_forecast",
		mcp.WithDescription("Project a 6-period, 30-day-step forecast for one measure from its smoothed trend."),
		mcp.WithString("sources", mcp.Description("Comma-separated paths to CSV/XLSX source files."), mcp.Required()),
		mcp.WithString("measure", mcp.Description("Target measure column (defaults to the first numeric column).")),
	), h.handleGetForecast)

	return s
}

// StartMCPServer starts the FinSight MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
