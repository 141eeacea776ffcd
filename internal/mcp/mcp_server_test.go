package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/atlas/internal/contract"
	mcp_internal "github.com/huangsam/atlas/internal/mcp"
	"github.com/huangsam/atlas/internal/store"
	"github.com/huangsam/atlas/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, baseCfg *contract.Config, mgr contract.StoreManager, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(baseCfg, mgr)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func resultText(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func newManager(rs *store.MockRiskStore) *store.MockStoreManager {
	mgr := &store.MockStoreManager{}
	mgr.On("GetRiskStore").Return(rs)
	return mgr
}

func mockEmptyTeam(rs *store.MockRiskStore) {
	rs.On("ListConfidenceVotes", mock.Anything, "payments", "S20").Return(nil, nil)
	rs.On("ListMetrics", mock.Anything, "payments", "S20").Return(nil, nil)
	rs.On("ListObjectives", mock.Anything, "payments", "S20").Return(nil, nil)
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{Limit: 10}

	// No manager: validation must fail before any store access
	var mgr contract.StoreManager

	t.Run("analyze_team_risk missing sprint", func(t *testing.T) {
		res := callTool(t, baseCfg, mgr, "analyze_team_risk", map[string]any{"team_id": "payments"})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(res), "team_id and sprint are required")
	})

	t.Run("save_team_risk blank team", func(t *testing.T) {
		res := callTool(t, baseCfg, mgr, "save_team_risk", map[string]any{"team_id": "  ", "sprint": "S20"})
		assert.True(t, res.IsError)
	})

	t.Run("get_risk_history missing team", func(t *testing.T) {
		res := callTool(t, baseCfg, mgr, "get_risk_history", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "team_id is required")
	})

	t.Run("get_risk_history limit too large", func(t *testing.T) {
		res := callTool(t, baseCfg, mgr, "get_risk_history", map[string]any{"team_id": "payments", "limit": 5000.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "limit must be between 1 and 1000")
	})

	t.Run("get_risk_color unknown level", func(t *testing.T) {
		res := callTool(t, baseCfg, mgr, "get_risk_color", map[string]any{"level": "SEVERE"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "invalid risk level")
	})

	t.Run("analyze_team_risk without store", func(t *testing.T) {
		res := callTool(t, baseCfg, mgr, "analyze_team_risk", map[string]any{"team_id": "payments", "sprint": "S20"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "store is not initialized")
	})
}

func TestMCPServerHandlers_AnalyzeTeamRisk(t *testing.T) {
	rs := &store.MockRiskStore{}
	mockEmptyTeam(rs)

	res := callTool(t, &contract.Config{}, newManager(rs), "analyze_team_risk", map[string]any{"team_id": "payments", "sprint": "S20"})
	require.False(t, res.IsError, resultText(res))

	var got schema.RiskAnalysisResult
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
	assert.Equal(t, 28, got.OverallRiskScore)
	assert.Equal(t, schema.ModerateRisk, got.RiskLevel)
	rs.AssertNotCalled(t, "SaveRiskScore", mock.Anything, mock.Anything)
}

func TestMCPServerHandlers_SaveTeamRisk(t *testing.T) {
	rs := &store.MockRiskStore{}
	mockEmptyTeam(rs)
	rs.On("SaveRiskScore", mock.Anything, mock.Anything).Return(&schema.RiskScoreRecord{ID: "rec-1", TeamID: "payments", OverallRiskScore: 28}, nil)

	res := callTool(t, &contract.Config{}, newManager(rs), "save_team_risk", map[string]any{"team_id": "payments", "sprint": "S20"})
	require.False(t, res.IsError, resultText(res))

	var got schema.RiskScoreRecord
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
	assert.Equal(t, "rec-1", got.ID)
	rs.AssertExpectations(t)
}

func TestMCPServerHandlers_GetRiskHistory(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	rs := &store.MockRiskStore{}
	rs.On("ListRiskScores", mock.Anything, "payments", 2).Return([]schema.RiskScoreRecord{
		{ID: "old", CreatedAt: now.Add(-time.Hour)},
		{ID: "new", CreatedAt: now},
	}, nil)

	res := callTool(t, &contract.Config{Limit: 10}, newManager(rs), "get_risk_history", map[string]any{"team_id": "payments", "limit": 2.0})
	require.False(t, res.IsError, resultText(res))

	var got []schema.RiskScoreRecord
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
}

func TestMCPServerHandlers_GetRiskColor(t *testing.T) {
	res := callTool(t, &contract.Config{}, nil, "get_risk_color", map[string]any{"level": "high"})
	require.False(t, res.IsError, resultText(res))

	var got schema.RiskColor
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &got))
	assert.NotEmpty(t, got.BG)
	assert.NotEmpty(t, got.Text)
	assert.NotEmpty(t, got.Border)
}
