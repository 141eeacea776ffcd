// Package parquet provides data structures and functions for exporting atlas
// risk data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/atlas/schema"
	"github.com/parquet-go/parquet-go"
)

// RiskScore represents a single persisted risk assessment.
// This struct maps to the atlas_risk_scores database table.
type RiskScore struct {
	// ID is the unique identifier of the record (empty for unsaved results)
	ID string `parquet:"id,snappy"`

	TeamID string `parquet:"team_id,snappy,dict"`
	Sprint string `parquet:"sprint,snappy,dict"`

	// OverallRiskScore is the weighted 0-100 score
	OverallRiskScore int32 `parquet:"overall_risk_score,snappy"`

	// RiskLevel is LOW, MODERATE, HIGH or CRITICAL
	RiskLevel string `parquet:"risk_level,snappy,dict"`

	ConfidenceScore      float64 `parquet:"confidence_score,snappy"`
	VelocityScore        float64 `parquet:"velocity_score,snappy"`
	ThroughputScore      float64 `parquet:"throughput_score,snappy"`
	ObjectiveHealthScore float64 `parquet:"objective_health_score,snappy"`

	// The four normalized risk factors in [0,1]
	ConfidenceFactor float64 `parquet:"confidence_factor,snappy"`
	VelocityFactor   float64 `parquet:"velocity_factor,snappy"`
	ThroughputFactor float64 `parquet:"throughput_factor,snappy"`
	ObjectiveFactor  float64 `parquet:"objective_factor,snappy"`

	// Descriptions are the diagnostic notes for factors above 0.3
	Descriptions []string `parquet:"descriptions,snappy"`

	// Recommendations are kept in their generated order
	Recommendations []string `parquet:"recommendations,snappy"`

	// CreatedAt is when the record was saved (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// ConvertRiskScoreRecords converts schema.RiskScoreRecord to RiskScore for Parquet export.
func ConvertRiskScoreRecords(records []schema.RiskScoreRecord) []RiskScore {
	result := make([]RiskScore, len(records))
	for i, r := range records {
		result[i] = RiskScore{
			ID:                   r.ID,
			TeamID:               r.TeamID,
			Sprint:               r.Sprint,
			OverallRiskScore:     int32(r.OverallRiskScore),
			RiskLevel:            string(r.RiskLevel),
			ConfidenceScore:      r.ConfidenceScore,
			VelocityScore:        r.VelocityScore,
			ThroughputScore:      r.ThroughputScore,
			ObjectiveHealthScore: r.ObjectiveHealthScore,
			ConfidenceFactor:     r.Factors.Confidence,
			VelocityFactor:       r.Factors.Velocity,
			ThroughputFactor:     r.Factors.Throughput,
			ObjectiveFactor:      r.Factors.Objective,
			Descriptions:         r.Factors.Description,
			Recommendations:      r.Recommendations,
			CreatedAt:            r.CreatedAt,
		}
	}
	return result
}

// ConvertAnalysisResult converts a single unsaved result into a RiskScore row.
func ConvertAnalysisResult(result *schema.RiskAnalysisResult) RiskScore {
	return ConvertRiskScoreRecords([]schema.RiskScoreRecord{*schema.NewRiskScoreRecord("", result.AnalyzedAt, result)})[0]
}

// WriteRiskScores writes RiskScore rows as a Parquet file to w.
func WriteRiskScores(w io.Writer, data []RiskScore) error {
	// The schema is automatically derived from the RiskScore struct tags
	writer := parquet.NewGenericWriter[RiskScore](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the footer
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteRiskScoresParquet writes a slice of RiskScore structs to a Parquet file.
func WriteRiskScoresParquet(data []RiskScore, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return WriteRiskScores(file, data)
}
