package store

import (
	"context"

	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetRiskStore implements the StoreManager interface.
func (m *MockStoreManager) GetRiskStore() contract.RiskStore {
	ret := m.Called()
	rs, _ := ret.Get(0).(contract.RiskStore)
	return rs
}

// MockRiskStore is a mock implementation of RiskStore for testing.
type MockRiskStore struct {
	mock.Mock
}

var _ contract.RiskStore = &MockRiskStore{} // Compile-time check

// ListConfidenceVotes implements the RiskStore interface.
func (m *MockRiskStore) ListConfidenceVotes(ctx context.Context, teamID, sprint string) ([]schema.ConfidenceVote, error) {
	args := m.Called(ctx, teamID, sprint)
	votes, _ := args.Get(0).([]schema.ConfidenceVote)
	return votes, args.Error(1)
}

// ListMetrics implements the RiskStore interface.
func (m *MockRiskStore) ListMetrics(ctx context.Context, teamID, sprint string) ([]schema.Metric, error) {
	args := m.Called(ctx, teamID, sprint)
	metrics, _ := args.Get(0).([]schema.Metric)
	return metrics, args.Error(1)
}

// ListObjectives implements the RiskStore interface.
func (m *MockRiskStore) ListObjectives(ctx context.Context, teamID, sprint string) ([]schema.Objective, error) {
	args := m.Called(ctx, teamID, sprint)
	objectives, _ := args.Get(0).([]schema.Objective)
	return objectives, args.Error(1)
}

// SaveRiskScore implements the RiskStore interface.
func (m *MockRiskStore) SaveRiskScore(ctx context.Context, result *schema.RiskAnalysisResult) (*schema.RiskScoreRecord, error) {
	args := m.Called(ctx, result)
	record, _ := args.Get(0).(*schema.RiskScoreRecord)
	return record, args.Error(1)
}

// AddConfidenceVote implements the RiskStore interface.
func (m *MockRiskStore) AddConfidenceVote(ctx context.Context, vote *schema.ConfidenceVote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

// AddMetric implements the RiskStore interface.
func (m *MockRiskStore) AddMetric(ctx context.Context, metric *schema.Metric) error {
	args := m.Called(ctx, metric)
	return args.Error(0)
}

// AddObjective implements the RiskStore interface.
func (m *MockRiskStore) AddObjective(ctx context.Context, objective *schema.Objective) error {
	args := m.Called(ctx, objective)
	return args.Error(0)
}

// ListRiskScores implements the RiskStore interface.
func (m *MockRiskStore) ListRiskScores(ctx context.Context, teamID string, limit int) ([]schema.RiskScoreRecord, error) {
	args := m.Called(ctx, teamID, limit)
	records, _ := args.Get(0).([]schema.RiskScoreRecord)
	return records, args.Error(1)
}

// GetAllRiskScores implements the RiskStore interface.
func (m *MockRiskStore) GetAllRiskScores(ctx context.Context) ([]schema.RiskScoreRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.RiskScoreRecord)
	return records, args.Error(1)
}

// GetStatus implements the RiskStore interface.
func (m *MockRiskStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the RiskStore interface.
func (m *MockRiskStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
