package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/atlas/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []schema.RiskScoreRecord {
	now := time.Date(2026, 5, 1, 9, 30, 0, 123456789, time.UTC)
	return []schema.RiskScoreRecord{
		{
			ID:                   "a1",
			TeamID:               "payments",
			Sprint:               "S20",
			OverallRiskScore:     84,
			RiskLevel:            schema.CriticalRisk,
			ConfidenceScore:      1,
			VelocityScore:        20,
			ThroughputScore:      50,
			ObjectiveHealthScore: 20,
			Factors: schema.RiskFactors{
				Confidence:  0.8,
				Velocity:    0.96,
				Throughput:  0.8,
				Objective:   0.8,
				Description: []string{"Low team confidence (average 1.0/5)", "Objective health at 20%"},
			},
			Recommendations: []string{"first", "second"},
			CreatedAt:       now,
		},
		{
			ID:                   "b2",
			TeamID:               "search",
			Sprint:               "S20",
			OverallRiskScore:     14,
			RiskLevel:            schema.LowRisk,
			ConfidenceScore:      5,
			VelocityScore:        50,
			ThroughputScore:      50,
			ObjectiveHealthScore: 100,
			Factors:              schema.RiskFactors{Velocity: 0.3, Throughput: 0.3, Description: []string{}},
			Recommendations:      []string{"only"},
			CreatedAt:            now.Add(time.Hour),
		},
	}
}

func readRows(t *testing.T, r io.ReaderAt, size int64) []RiskScore {
	t.Helper()
	reader := parquet.NewGenericReader[RiskScore](io.NewSectionReader(r, 0, size))
	defer func() { _ = reader.Close() }()

	rows := make([]RiskScore, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestRiskScoreStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(RiskScore))
	require.NotNil(t, s)

	expectedColumns := []string{
		"id", "team_id", "sprint", "overall_risk_score", "risk_level",
		"confidence_score", "velocity_score", "throughput_score", "objective_health_score",
		"confidence_factor", "velocity_factor", "throughput_factor", "objective_factor",
		"descriptions", "recommendations", "created_at",
	}
	for _, colName := range expectedColumns {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestConvertRiskScoreRecords(t *testing.T) {
	records := sampleRecords()
	rows := ConvertRiskScoreRecords(records)
	require.Len(t, rows, 2)

	assert.Equal(t, "a1", rows[0].ID)
	assert.Equal(t, int32(84), rows[0].OverallRiskScore)
	assert.Equal(t, "CRITICAL", rows[0].RiskLevel)
	assert.InDelta(t, 0.96, rows[0].VelocityFactor, 1e-9)
	assert.Equal(t, records[0].Factors.Description, rows[0].Descriptions)
	assert.Equal(t, records[0].Recommendations, rows[0].Recommendations)
	assert.Equal(t, records[1].CreatedAt, rows[1].CreatedAt)
}

func TestConvertAnalysisResult(t *testing.T) {
	at := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	row := ConvertAnalysisResult(&schema.RiskAnalysisResult{
		TeamID:           "payments",
		Sprint:           "S21",
		OverallRiskScore: 28,
		RiskLevel:        schema.ModerateRisk,
		Factors:          schema.RiskFactors{Confidence: 0.4},
		Recommendations:  []string{"watch"},
		AnalyzedAt:       at,
	})
	assert.Empty(t, row.ID)
	assert.Equal(t, "MODERATE", row.RiskLevel)
	assert.InDelta(t, 0.4, row.ConfidenceFactor, 1e-9)
	assert.Equal(t, at, row.CreatedAt)
}

func TestWriteRiskScoresRoundTrip(t *testing.T) {
	data := ConvertRiskScoreRecords(sampleRecords())

	var buf bytes.Buffer
	require.NoError(t, WriteRiskScores(&buf, data))

	got := readRows(t, bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.Len(t, got, len(data))
	for i := range data {
		assert.Equal(t, data[i].ID, got[i].ID)
		assert.Equal(t, data[i].TeamID, got[i].TeamID)
		assert.Equal(t, data[i].OverallRiskScore, got[i].OverallRiskScore)
		assert.Equal(t, data[i].RiskLevel, got[i].RiskLevel)
		assert.InDelta(t, data[i].ObjectiveFactor, got[i].ObjectiveFactor, 1e-9)
		assert.Equal(t, data[i].Recommendations, got[i].Recommendations)
		assert.WithinDuration(t, data[i].CreatedAt, got[i].CreatedAt, time.Nanosecond)
	}
	assert.Len(t, got[0].Descriptions, 2)
	assert.Empty(t, got[1].Descriptions)
}

func TestWriteRiskScoresParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "risk_scores.parquet")
	data := ConvertRiskScoreRecords(sampleRecords())

	require.NoError(t, WriteRiskScoresParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()
	info, err := file.Stat()
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Len(t, readRows(t, file, info.Size()), 2)
}

func TestWriteRiskScoresParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteRiskScoresParquet([]RiskScore{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteRiskScoresParquet_InvalidPath(t *testing.T) {
	err := WriteRiskScoresParquet(nil, "/nonexistent/directory/output.parquet")
	require.Error(t, err)
}
