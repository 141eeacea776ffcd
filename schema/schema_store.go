package schema

import "time"

// RiskScoreRecord represents a row from the atlas_risk_scores table.
// Records are immutable; each save inserts a new row.
type RiskScoreRecord struct {
	ID                   string      `json:"id"`
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
	CreatedAt            time.Time   `json:"created_at"`
}

// NewRiskScoreRecord copies an analysis result into a record with the given identity.
func NewRiskScoreRecord(id string, createdAt time.Time, result *RiskAnalysisResult) *RiskScoreRecord {
	recs := make([]string, len(result.Recommendations))
	copy(recs, result.Recommendations)
	factors := result.Factors
	factors.Description = append([]string(nil), result.Factors.Description...)
	return &RiskScoreRecord{
		ID:                   id,
		TeamID:               result.TeamID,
		Sprint:               result.Sprint,
		OverallRiskScore:     result.OverallRiskScore,
		RiskLevel:            result.RiskLevel,
		ConfidenceScore:      result.ConfidenceScore,
		VelocityScore:        result.VelocityScore,
		ThroughputScore:      result.ThroughputScore,
		ObjectiveHealthScore: result.ObjectiveHealthScore,
		Factors:              factors,
		Recommendations:      recs,
		CreatedAt:            createdAt,
	}
}

// Dataset is a bulk import document of team data.
type Dataset struct {
	Votes      []ConfidenceVote `json:"votes" yaml:"votes"`
	Metrics    []Metric         `json:"metrics" yaml:"metrics"`
	Objectives []Objective      `json:"objectives" yaml:"objectives"`
}

// ImportSummary reports how many records an import wrote.
type ImportSummary struct {
	Votes      int `json:"votes"`
	Metrics    int `json:"metrics"`
	Objectives int `json:"objectives"`
}

// Total returns the number of records written.
func (s ImportSummary) Total() int {
	return s.Votes + s.Metrics + s.Objectives
}
