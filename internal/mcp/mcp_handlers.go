package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chingu-voyage/heartbeat/core"
	"github.com/chingu-voyage/heartbeat/internal/contract"
	"github.com/chingu-voyage/heartbeat/internal/feed"
	"github.com/chingu-voyage/heartbeat/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// runMetricsFromRequest resolves the input files from the request with the
// base configuration as fallback, then runs the aggregation.
func (h *toolHandler) runMetricsFromRequest(request mcp.CallToolRequest) ([]*schema.MemberResult, core.RunStats, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("events_file", ""); p != "" {
		cfg.EventsFile = p
	}
	if p := request.GetString("admins_file", ""); p != "" {
		cfg.AdminsFile = p
	}
	if cfg.EventsFile == "" {
		return nil, core.RunStats{}, fmt.Errorf("events_file is required")
	}

	eventFeed, err := feed.LoadEventFeed(cfg.EventsFile)
	if err != nil {
		return nil, core.RunStats{}, err
	}
	admins, err := feed.LoadAdminList(cfg.AdminsFile)
	if err != nil {
		return nil, core.RunStats{}, err
	}

	results, stats := core.RunMetrics(eventFeed, admins)
	return results, stats, nil
}

func (h *toolHandler) handleGetMemberMetrics(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	results, _, err := h.runMetricsFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("aggregation failed: %v", err)), nil
	}

	if l := request.GetInt("limit", 0); l > 0 && l < len(results) {
		results = results[:l]
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetMemberSummary(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	results, _, err := h.runMetricsFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("aggregation failed: %v", err)), nil
	}

	rows := core.BuildMemberSummary(results)
	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTeamSummary(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	results, _, err := h.runMetricsFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("aggregation failed: %v", err)), nil
	}

	rows := core.BuildTeamSummary(results)
	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyScore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	score, err := request.RequireFloat("score")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid score: %v", err)), nil
	}

	bands := h.baseCfg.Thresholds
	if len(bands) == 0 {
		bands = schema.DefaultThresholds
	}

	response := map[string]any{
		"score": score,
		"label": contract.GetPlainLabel(score, bands),
	}
	jsonData, _ := json.MarshalIndent(response, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
