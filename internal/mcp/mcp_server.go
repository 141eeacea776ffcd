// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/atlas/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Atlas MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Atlas Risk Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_team_risk ---
	s.AddTool(mcp.NewTool("analyze_team_risk",
		mcp.WithDescription("Compute the delivery risk of a team for one sprint without saving it."),
		mcp.WithString("team_id", mcp.Description("Team identifier."), mcp.Required()),
		mcp.WithString("sprint", mcp.Description("Sprint identifier."), mcp.Required()),
	), h.handleAnalyzeTeamRisk)

	// --- 2. Tool: save_team_risk ---
	s.AddTool(mcp.NewTool("save_team_risk",
		mcp.WithDescription("Compute the delivery risk of a team for one sprint and persist it as a risk score record."),
		mcp.WithString("team_id", mcp.Description("Team identifier."), mcp.Required()),
		mcp.WithString("sprint", mcp.Description("Sprint identifier."), mcp.Required()),
	), h.handleSaveTeamRisk)

	// --- 3. Tool: get_risk_history ---
	s.AddTool(mcp.NewTool("get_risk_history",
		mcp.WithDescription("List the latest persisted risk scores of a team, newest first."),
		mcp.WithString("team_id", mcp.Description("Team identifier."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Maximum number of records (defaults to the configured limit).")),
	), h.handleGetRiskHistory)

	// --- 4. Tool: get_risk_color ---
	s.AddTool(mcp.NewTool("get_risk_color",
		mcp.WithDescription("Return the presentation colors for a risk level."),
		mcp.WithString("level", mcp.Description("Risk level."), mcp.Required(), mcp.Enum("LOW", "MODERATE", "HIGH", "CRITICAL")),
	), h.handleGetRiskColor)

	return s
}

// StartMCPServer starts the Atlas MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
