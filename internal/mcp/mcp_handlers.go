package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/atlas/core"
	"github.com/huangsam/atlas/core/algo"
	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

var errNoStore = errors.New("store is not initialized")

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) riskStore() (contract.RiskStore, error) {
	if h.mgr == nil {
		return nil, errNoStore
	}
	rs := h.mgr.GetRiskStore()
	if rs == nil {
		return nil, errNoStore
	}
	return rs, nil
}

// identifiers reads team_id and sprint from the request.
func identifiers(request mcp.CallToolRequest) (string, string, error) {
	teamID := strings.TrimSpace(request.GetString("team_id", ""))
	sprint := strings.TrimSpace(request.GetString("sprint", ""))
	if teamID == "" || sprint == "" {
		return "", "", fmt.Errorf("team_id and sprint are required: %w", core.ErrEmptyIdentifier)
	}
	return teamID, sprint, nil
}

func toolJSON(v any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleAnalyzeTeamRisk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	teamID, sprint, err := identifiers(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rs, err := h.riskStore()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := core.NewAnalyzer(rs).AnalyzeTeamRisk(ctx, teamID, sprint)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return toolJSON(result), nil
}

func (h *toolHandler) handleSaveTeamRisk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	teamID, sprint, err := identifiers(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rs, err := h.riskStore()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	record, err := core.NewAnalyzer(rs).CalculateAndSaveRiskScore(ctx, teamID, sprint)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("save failed: %v", err)), nil
	}
	return toolJSON(record), nil
}

func (h *toolHandler) handleGetRiskHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	teamID := strings.TrimSpace(request.GetString("team_id", ""))
	if teamID == "" {
		return mcp.NewToolResultError("team_id is required"), nil
	}
	limit := h.baseCfg.Limit
	if l := request.GetInt("limit", 0); l > 0 {
		limit = l
	}
	if limit < 1 || limit > contract.MaxHistoryLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d", contract.MaxHistoryLimit)), nil
	}
	rs, err := h.riskStore()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records, err := rs.ListRiskScores(ctx, teamID, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history failed: %v", err)), nil
	}
	return toolJSON(algo.RankRiskScores(records, limit)), nil
}

func (h *toolHandler) handleGetRiskColor(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	level := schema.RiskLevel(strings.ToUpper(strings.TrimSpace(request.GetString("level", ""))))
	if _, ok := schema.ValidRiskLevels[level]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid risk level %q", level)), nil
	}
	return toolJSON(algo.GetRiskColor(level)), nil
}
