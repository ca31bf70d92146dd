// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/chingu-voyage/heartbeat/internal/contract"
)

// NewMCPServer initializes and configures the Heartbeat MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Heartbeat Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: get_member_metrics ---
	s.AddTool(mcp.NewTool("get_member_metrics",
		mcp.WithDescription("Aggregate a GitHub event feed into scored, ranked per-member activity metrics."),
		mcp.WithString("events_file", mcp.Description("Path to the event feed JSON file (defaults to the configured feed).")),
		mcp.WithString("admins_file", mcp.Description("Path to the admin accounts JSON file.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetMemberMetrics)

	// --- 2. Tool: get_member_summary ---
	s.AddTool(mcp.NewTool("get_member_summary",
		mcp.WithDescription("Roll member metrics up by account name, re-ranked across all teams."),
		mcp.WithString("events_file", mcp.Description("Path to the event feed JSON file.")),
		mcp.WithString("admins_file", mcp.Description("Path to the admin accounts JSON file.")),
	), h.handleGetMemberSummary)

	// --- 3. Tool: get_team_summary ---
	s.AddTool(mcp.NewTool("get_team_summary",
		mcp.WithDescription("Roll member metrics up by team, re-ranked across all teams."),
		mcp.WithString("events_file", mcp.Description("Path to the event feed JSON file.")),
		mcp.WithString("admins_file", mcp.Description("Path to the admin accounts JSON file.")),
	), h.handleGetTeamSummary)

	// --- 4. Tool: classify_score ---
	s.AddTool(mcp.NewTool("classify_score",
		mcp.WithDescription("Classify a percentile rank against the configured threshold bands."),
		mcp.WithNumber("score", mcp.Description("The percentile rank to classify."), mcp.Required()),
	), h.handleClassifyScore)

	return s
}

// StartMCPServer starts the Heartbeat MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
