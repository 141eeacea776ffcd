package schema

import "time"

// StoreStatus represents the status of the team data store.
type StoreStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalRiskScores int              `json:"total_risk_scores"`
	LastScoreTime   time.Time        `json:"last_score_time"`
	OldestScoreTime time.Time        `json:"oldest_score_time"`
	TableSizes      map[string]int64 `json:"table_sizes"`
}

// CheckResult represents the outcome of a risk threshold check.
type CheckResult struct {
	TeamID    string    `json:"team_id"`
	Sprint    string    `json:"sprint"`
	Score     int       `json:"score"`
	Level     RiskLevel `json:"level"`
	Threshold int       `json:"threshold"`
	MaxLevel  RiskLevel `json:"max_level,omitempty"`
	Passed    bool      `json:"passed"`
	Reasons   []string  `json:"reasons,omitempty"`
}
