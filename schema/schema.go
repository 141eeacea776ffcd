// Package schema has models, enums and constants for all parts of atlas.
package schema

import "time"

// ConfidenceVote is one team member's 1-5 confidence in meeting the sprint goals.
type ConfidenceVote struct {
	ID              string    `json:"id" yaml:"id"`
	TeamID          string    `json:"team_id" yaml:"team_id"`
	Sprint          string    `json:"sprint" yaml:"sprint"`
	ConfidenceLevel int       `json:"confidence_level" yaml:"confidence_level"`
	VotedAt         time.Time `json:"voted_at" yaml:"voted_at"`
}

// Metric is a periodic measurement recorded for a team and sprint.
type Metric struct {
	ID         string     `json:"id" yaml:"id"`
	TeamID     string     `json:"team_id" yaml:"team_id"`
	Sprint     string     `json:"sprint" yaml:"sprint"`
	MetricType MetricType `json:"metric_type" yaml:"metric_type"`
	Value      float64    `json:"value" yaml:"value"`
	Target     *float64   `json:"target,omitempty" yaml:"target,omitempty"` // Optional goal value
	RecordedAt time.Time  `json:"recorded_at" yaml:"recorded_at"`
}

// Objective is a goal tracked for a team within a sprint.
type Objective struct {
	ID     string          `json:"id" yaml:"id"`
	TeamID string          `json:"team_id" yaml:"team_id"`
	Sprint string          `json:"sprint" yaml:"sprint"`
	Title  string          `json:"title,omitempty" yaml:"title,omitempty"`
	Status ObjectiveStatus `json:"status" yaml:"status"`
}

// RiskFactors holds the four normalized [0,1] risk contributions and their diagnostic notes.
type RiskFactors struct {
	Confidence  float64  `json:"confidence"`
	Velocity    float64  `json:"velocity"`
	Throughput  float64  `json:"throughput"`
	Objective   float64  `json:"objective"`
	Description []string `json:"description"`
}

// Get returns the factor value for a key, or 0 for an unknown key.
func (f RiskFactors) Get(key FactorKey) float64 {
	switch key {
	case FactorConfidence:
		return f.Confidence
	case FactorVelocity:
		return f.Velocity
	case FactorThroughput:
		return f.Throughput
	case FactorObjective:
		return f.Objective
	default:
		return 0
	}
}

// RiskAnalysisResult is the output of a single team risk analysis.
type RiskAnalysisResult struct {
	TeamID               string      `json:"team_id"`
	Sprint               string      `json:"sprint"`
	OverallRiskScore     int         `json:"overall_risk_score"`
	RiskLevel            RiskLevel   `json:"risk_level"`
	ConfidenceScore      float64     `json:"confidence_score"`
	VelocityScore        float64     `json:"velocity_score"`
	ThroughputScore      float64     `json:"throughput_score"`
	ObjectiveHealthScore float64     `json:"objective_health_score"`
	Factors              RiskFactors `json:"factors"`
	Recommendations      []string    `json:"recommendations"`
	AnalyzedAt           time.Time   `json:"analyzed_at"`
}

// Rank returns the position of a level in AllRiskLevels, or -1 when unknown.
func (l RiskLevel) Rank() int {
	for i, level := range AllRiskLevels {
		if level == l {
			return i
		}
	}
	return -1
}

// RiskColor holds the presentation tokens for a risk level.
type RiskColor struct {
	BG     string `json:"bg"`
	Text   string `json:"text"`
	Border string `json:"border"`
}

// TeamData is the full input set for one (team, sprint) analysis.
type TeamData struct {
	Votes      []ConfidenceVote
	Metrics    []Metric
	Objectives []Objective
}
