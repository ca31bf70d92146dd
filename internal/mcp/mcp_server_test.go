package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chingu-voyage/heartbeat/internal/contract"
	mcp_internal "github.com/chingu-voyage/heartbeat/internal/mcp"
	"github.com/chingu-voyage/heartbeat/schema"
)

const feedFixture = `{
	"0": {
		"repo": {
			"name": "bears-1",
			"html_url": "https://github.com/chingu-voyage4/bears-1",
			"events": {
				"0": {"actor": "alice", "type": "PushEvent", "created_at": "2025-03-02T12:00:00Z"},
				"1": {"actor": "alice", "type": "IssuesEvent", "created_at": "2025-03-01T09:00:00Z"}
			}
		}
	}
}`

func writeFeedFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte(feedFixture), 0o600))
	return path
}

func TestMCPServerHandlers(t *testing.T) {
	baseCfg := &contract.Config{
		Thresholds: schema.DefaultThresholds,
	}
	s := mcp_internal.NewMCPServer(baseCfg)

	ctx := context.Background()

	t.Run("get_member_metrics returns ranked results", func(t *testing.T) {
		tool := s.GetTool("get_member_metrics")
		require.NotNil(t, tool, "Tool get_member_metrics should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_member_metrics",
				Arguments: map[string]any{
					"events_file": writeFeedFixture(t),
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"name": "alice"`)
		assert.Contains(t, text, `"team": "bears-01"`)
		assert.Contains(t, text, `"percentile_rank"`)
	})

	t.Run("get_member_metrics missing events file", func(t *testing.T) {
		tool := s.GetTool("get_member_metrics")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_member_metrics",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "events_file is required")
	})

	t.Run("get_team_summary returns team rollup", func(t *testing.T) {
		tool := s.GetTool("get_team_summary")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_team_summary",
				Arguments: map[string]any{
					"events_file": writeFeedFixture(t),
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"team": "bears-01"`)
		assert.Contains(t, text, `"member_count": 1`)
	})

	t.Run("classify_score labels a rank", func(t *testing.T) {
		tool := s.GetTool("classify_score")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "classify_score",
				Arguments: map[string]any{
					"score": 85.0,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `"label": "Green"`)
	})

	t.Run("classify_score missing score", func(t *testing.T) {
		tool := s.GetTool("classify_score")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "classify_score",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid score")
	})
}
