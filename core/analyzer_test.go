package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/atlas/internal/store"
	"github.com/huangsam/atlas/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// mockTeamData sets up the three reads of one analysis.
func mockTeamData(rs *store.MockRiskStore, votes []schema.ConfidenceVote, metrics []schema.Metric, objectives []schema.Objective) {
	rs.On("ListConfidenceVotes", mock.Anything, "payments", "S20").Return(votes, nil)
	rs.On("ListMetrics", mock.Anything, "payments", "S20").Return(metrics, nil)
	rs.On("ListObjectives", mock.Anything, "payments", "S20").Return(objectives, nil)
}

func fiveVotes(level int) []schema.ConfidenceVote {
	votes := make([]schema.ConfidenceVote, 5)
	for i := range votes {
		votes[i] = schema.ConfidenceVote{TeamID: "payments", Sprint: "S20", ConfidenceLevel: level}
	}
	return votes
}

func TestAnalyzeTeamRisk_NoData(t *testing.T) {
	rs := &store.MockRiskStore{}
	mockTeamData(rs, nil, nil, nil)

	result, err := NewAnalyzer(rs, WithClock(fixedClock)).AnalyzeTeamRisk(context.Background(), "payments", "S20")
	require.NoError(t, err)

	assert.Equal(t, 28, result.OverallRiskScore)
	assert.Equal(t, schema.ModerateRisk, result.RiskLevel)
	assert.Equal(t, "payments", result.TeamID)
	assert.Equal(t, "S20", result.Sprint)
	assert.Equal(t, fixedNow, result.AnalyzedAt)
	assert.NotEmpty(t, result.Recommendations)
	rs.AssertExpectations(t)
}

func TestAnalyzeTeamRisk_FullConfidence(t *testing.T) {
	rs := &store.MockRiskStore{}
	mockTeamData(rs, fiveVotes(5), nil, nil)

	result, err := NewAnalyzer(rs).AnalyzeTeamRisk(context.Background(), "payments", "S20")
	require.NoError(t, err)
	assert.Equal(t, 14, result.OverallRiskScore)
	assert.Equal(t, schema.LowRisk, result.RiskLevel)
	assert.InDelta(t, 5.0, result.ConfidenceScore, 1e-9)
}

func TestAnalyzeTeamRisk_EmptyIdentifiers(t *testing.T) {
	rs := &store.MockRiskStore{}
	analyzer := NewAnalyzer(rs)

	for _, ids := range [][2]string{{"", "S20"}, {"payments", ""}, {"  ", "S20"}} {
		_, err := analyzer.AnalyzeTeamRisk(context.Background(), ids[0], ids[1])
		assert.ErrorIs(t, err, ErrEmptyIdentifier)
	}
	rs.AssertNotCalled(t, "ListConfidenceVotes", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeTeamRisk_ReadError(t *testing.T) {
	boom := errors.New("connection reset")
	rs := &store.MockRiskStore{}
	rs.On("ListConfidenceVotes", mock.Anything, "payments", "S20").Return(nil, nil).Maybe()
	rs.On("ListMetrics", mock.Anything, "payments", "S20").Return(nil, boom)
	rs.On("ListObjectives", mock.Anything, "payments", "S20").Return(nil, nil).Maybe()

	_, err := NewAnalyzer(rs).AnalyzeTeamRisk(context.Background(), "payments", "S20")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to load metrics")
}

func TestAnalyzeTeamRisk_DoesNotMutateInputs(t *testing.T) {
	metrics := []schema.Metric{
		{MetricType: schema.VelocityMetric, Value: 30, RecordedAt: fixedNow.Add(-48 * time.Hour)},
		{MetricType: schema.VelocityMetric, Value: 20, RecordedAt: fixedNow},
		{MetricType: schema.VelocityMetric, Value: 25, RecordedAt: fixedNow.Add(-24 * time.Hour)},
	}
	snapshot := append([]schema.Metric(nil), metrics...)

	rs := &store.MockRiskStore{}
	mockTeamData(rs, nil, metrics, nil)

	_, err := NewAnalyzer(rs).AnalyzeTeamRisk(context.Background(), "payments", "S20")
	require.NoError(t, err)
	assert.Equal(t, snapshot, metrics)
}

func TestCalculateAndSaveRiskScore(t *testing.T) {
	rs := &store.MockRiskStore{}
	mockTeamData(rs, nil, nil, []schema.Objective{
		{Status: schema.CompletedStatus},
		{Status: schema.BlockedStatus},
	})
	rs.On("SaveRiskScore", mock.Anything, mock.MatchedBy(func(r *schema.RiskAnalysisResult) bool {
		return r.TeamID == "payments" && r.ObjectiveHealthScore == 60
	})).Return(&schema.RiskScoreRecord{ID: "rec-1", TeamID: "payments"}, nil)

	record, err := NewAnalyzer(rs, WithClock(fixedClock)).CalculateAndSaveRiskScore(context.Background(), "payments", "S20")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", record.ID)
	rs.AssertExpectations(t)
}

func TestCalculateAndSaveRiskScore_SaveError(t *testing.T) {
	rs := &store.MockRiskStore{}
	mockTeamData(rs, nil, nil, nil)
	rs.On("SaveRiskScore", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	_, err := NewAnalyzer(rs).CalculateAndSaveRiskScore(context.Background(), "payments", "S20")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestAnalyzeTeamRisk_SQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, err := store.NewSQLStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	for _, v := range fiveVotes(5) {
		require.NoError(t, s.AddConfidenceVote(ctx, &v))
	}

	analyzer := NewAnalyzer(s, WithClock(fixedClock))
	record, err := analyzer.CalculateAndSaveRiskScore(ctx, "payments", "S20")
	require.NoError(t, err)
	assert.Equal(t, 14, record.OverallRiskScore)

	history, err := s.ListRiskScores(ctx, "payments", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, record.ID, history[0].ID)
}

func TestAnalyzeTeamRisk_TrimsIdentifiers(t *testing.T) {
	rs := &store.MockRiskStore{}
	mockTeamData(rs, fiveVotes(5), nil, nil)

	result, err := NewAnalyzer(rs).AnalyzeTeamRisk(context.Background(), " payments ", "S20\t")
	require.NoError(t, err)
	assert.Equal(t, "payments", result.TeamID)
	assert.Equal(t, "S20", result.Sprint)
	assert.Equal(t, 14, result.OverallRiskScore)
	rs.AssertExpectations(t)
}
