// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/atlas/schema"
)

// TeamDataStore is the storage collaborator of the risk engine.
// It exposes the three reads needed for one analysis and the write that
// persists its result. Implementations must be safe for concurrent reads.
type TeamDataStore interface {
	// ListConfidenceVotes returns every vote cast for the team and sprint.
	ListConfidenceVotes(ctx context.Context, teamID, sprint string) ([]schema.ConfidenceVote, error)

	// ListMetrics returns every metric recorded for the team and sprint, in any order.
	ListMetrics(ctx context.Context, teamID, sprint string) ([]schema.Metric, error)

	// ListObjectives returns every objective tracked for the team and sprint.
	ListObjectives(ctx context.Context, teamID, sprint string) ([]schema.Objective, error)

	// SaveRiskScore inserts a new immutable record for the result.
	SaveRiskScore(ctx context.Context, result *schema.RiskAnalysisResult) (*schema.RiskScoreRecord, error)
}

// RiskStore extends TeamDataStore with the ingestion and admin operations used by the CLI.
type RiskStore interface {
	TeamDataStore

	// --- Ingestion ---

	AddConfidenceVote(ctx context.Context, vote *schema.ConfidenceVote) error
	AddMetric(ctx context.Context, metric *schema.Metric) error
	AddObjective(ctx context.Context, objective *schema.Objective) error

	// --- History ---

	// ListRiskScores returns up to limit records for a team, newest first.
	// A non-positive limit returns all records.
	ListRiskScores(ctx context.Context, teamID string, limit int) ([]schema.RiskScoreRecord, error)

	// GetAllRiskScores returns every persisted record, for export.
	GetAllRiskScores(ctx context.Context) ([]schema.RiskScoreRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager gives commands access to the configured store.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetRiskStore() RiskStore
}
