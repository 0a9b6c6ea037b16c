package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/finsight/finsight/core"
	"github.com/finsight/finsight/internal/contract"
	"github.com/finsight/finsight/internal/iocache"
	"github.com/finsight/finsight/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// runAnalysisForRequest ingests the requested sources through the cache and
// runs one analysis pass. All tools funnel through here.
func (h *toolHandler) runAnalysisForRequest(request mcp.CallToolRequest) (*core.Result, error) {
	raw := request.GetString("sources", "")
	var paths []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one source path is required")
	}

	sources, err := iocache.LoadSources(paths)
	if err != nil {
		return nil, err
	}
	ds, err := core.Merge(sources)
	if err != nil {
		return nil, err
	}

	opts := core.Options{
		Measure:     request.GetString("measure", h.baseCfg.Measure),
		Rand:        h.baseCfg.Rand(),
		AnomalyHead: h.baseCfg.AnomalyHead,
	}
	if seed := request.GetInt("seed", 0); seed != 0 {
		opts.Rand = rand.New(rand.NewSource(int64(seed)))
	}
	return core.RunAnalysis(ds, opts)
}

func toolJSON(data any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(data, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetDatasetSummary(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.runAnalysisForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return toolJSON(result.Summary), nil
}

func (h *toolHandler) handleGetHealthScores(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.runAnalysisForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if result.Health == nil {
		return mcp.NewToolResultError("health scores unavailable: the dataset has no measure columns"), nil
	}
	return toolJSON(result.Health), nil
}

func (h *toolHandler) handleGetAnomalies(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.runAnalysisForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if result.Roles.CategoryColumn == "" {
		return mcp.NewToolResultError("anomaly detection unavailable: the dataset has no category column"), nil
	}
	// An empty list is a valid result: nothing crossed the threshold.
	if result.Anomalies == nil {
		result.Anomalies = []schema.Anomaly{}
	}
	return toolJSON(result.Anomalies), nil
}

func (h *toolHandler) handleGetForecast(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.runAnalysisForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if result.Forecast == nil {
		reason := "no time column or not enough data"
		if len(result.Notes) > 0 {
			reason = strings.Join(result.Notes, "; ")
		}
		return mcp.NewToolResultError(fmt.Sprintf("forecast unavailable: %s", reason)), nil
	}
	return toolJSON(result.Forecast), nil
}
