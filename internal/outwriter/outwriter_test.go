package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var analyzedAt = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func sampleAnalysis() *schema.RiskAnalysisResult {
	return &schema.RiskAnalysisResult{
		TeamID:               "payments",
		Sprint:               "S20",
		OverallRiskScore:     62,
		RiskLevel:            schema.HighRisk,
		ConfidenceScore:      2,
		VelocityScore:        30,
		ThroughputScore:      45,
		ObjectiveHealthScore: 40,
		Factors: schema.RiskFactors{
			Confidence:  0.6,
			Velocity:    0.72,
			Throughput:  0.8,
			Objective:   0.6,
			Description: []string{"Low team confidence (average 2.0/5)", "Objective health at 40%"},
		},
		Recommendations: []string{"Hold a confidence retro", "Re-scope blocked objectives"},
		AnalyzedAt:      analyzedAt,
	}
}

func sampleHistory() []schema.RiskScoreRecord {
	newer := schema.NewRiskScoreRecord("r2", analyzedAt, sampleAnalysis())
	older := schema.NewRiskScoreRecord("r1", analyzedAt.Add(-24*time.Hour), &schema.RiskAnalysisResult{
		TeamID:           "payments",
		Sprint:           "S19",
		OverallRiskScore: 14,
		RiskLevel:        schema.LowRisk,
		Recommendations:  []string{"Team is performing well"},
	})
	return []schema.RiskScoreRecord{*newer, *older}
}

func textConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{Output: output, Precision: 1, Width: 160}
}

func TestWriteAnalysisResultText(t *testing.T) {
	var buf bytes.Buffer
	out := AnalysisOutput{Result: sampleAnalysis(), Backend: schema.SQLiteBackend, Duration: time.Millisecond}
	require.NoError(t, WriteAnalysisResult(&buf, out, textConfig(schema.TextOut)))

	output := buf.String()
	assert.Contains(t, output, "Team payments, sprint S20")
	assert.Contains(t, output, "Overall risk: 62/100 (High)")
	assert.Contains(t, output, "Confidence")
	assert.Contains(t, output, "2.0/5")
	assert.Contains(t, output, "21.0") // 100 * 0.35 * 0.6
	assert.Contains(t, output, "  - Objective health at 40%")
	assert.Contains(t, output, "  1. Hold a confidence retro")
	assert.Contains(t, output, "Store backend: sqlite")
	assert.NotContains(t, output, "Saved as")
}

func TestWriteAnalysisResultTextWithRecord(t *testing.T) {
	var buf bytes.Buffer
	result := sampleAnalysis()
	out := AnalysisOutput{Result: result, Record: schema.NewRiskScoreRecord("rec-1", analyzedAt, result)}
	require.NoError(t, WriteAnalysisResult(&buf, out, textConfig(schema.TextOut)))
	assert.Contains(t, buf.String(), "Saved as rec-1 at 2026-05-04T10:00:00Z")
}

func TestWriteAnalysisResultJSON(t *testing.T) {
	var buf bytes.Buffer
	result := sampleAnalysis()
	out := AnalysisOutput{Result: result, Record: schema.NewRiskScoreRecord("rec-1", analyzedAt, result)}
	require.NoError(t, WriteAnalysisResult(&buf, out, textConfig(schema.JSONOut)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "payments", decoded["team_id"])
	assert.Equal(t, float64(62), decoded["overall_risk_score"])
	assert.Equal(t, "HIGH", decoded["risk_level"])
	assert.Equal(t, "High", decoded["label"])
	assert.Equal(t, "rec-1", decoded["record_id"])

	colorTokens, ok := decoded["color"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, colorTokens, "bg")
}

func TestWriteAnalysisResultCSV(t *testing.T) {
	var buf bytes.Buffer
	cfg := textConfig(schema.CSVOut)
	cfg.Precision = 2
	require.NoError(t, WriteAnalysisResult(&buf, AnalysisOutput{Result: sampleAnalysis()}, cfg))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, analysisHeader, records[0])

	row := records[1]
	assert.Equal(t, "62", row[2])
	assert.Equal(t, "High", row[4])
	assert.Equal(t, "0.72", row[10])
	assert.Equal(t, "Hold a confidence retro|Re-scope blocked objectives", row[14])
	assert.Equal(t, "", row[16])
}

func TestWriteAnalysisResultParquet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAnalysisResult(&buf, AnalysisOutput{Result: sampleAnalysis()}, textConfig(schema.ParquetOut)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PAR1")))
}

func TestWriteAnalysisResultNil(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteAnalysisResult(&buf, AnalysisOutput{}, textConfig(schema.TextOut)))
}

func TestWriteRiskHistoryText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRiskHistory(&buf, "payments", sampleHistory(), textConfig(schema.TextOut)))

	output := buf.String()
	assert.Contains(t, output, "S20")
	assert.Contains(t, output, "S19")
	assert.Contains(t, output, "High")
	assert.Contains(t, output, "Team is performing well")
	assert.Contains(t, output, "Showing 2 risk score(s) for team payments, newest first")
	assert.Less(t, strings.Index(output, "S20"), strings.Index(output, "S19"))
}

func TestWriteRiskHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRiskHistory(&buf, "ghost", nil, textConfig(schema.TextOut)))
	assert.Equal(t, "No risk scores recorded for team ghost\n", buf.String())
}

func TestWriteRiskHistoryJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRiskHistory(&buf, "payments", sampleHistory(), textConfig(schema.JSONOut)))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, float64(1), decoded[0]["rank"])
	assert.Equal(t, "r2", decoded[0]["id"])
	assert.Equal(t, "Low", decoded[1]["label"])
}

func TestWriteRiskHistoryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRiskHistory(&buf, "payments", sampleHistory(), textConfig(schema.CSVOut)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, historyHeader, records[0])
	assert.Equal(t, "2", records[2][0])
	assert.Equal(t, "r1", records[2][1])
	assert.Equal(t, "LOW", records[2][5])
}

func TestWriteCheckResult(t *testing.T) {
	passed := &schema.CheckResult{TeamID: "payments", Sprint: "S20", Score: 30, Level: schema.ModerateRisk, Threshold: 50, Passed: true}
	failed := &schema.CheckResult{
		TeamID: "payments", Sprint: "S20", Score: 62, Level: schema.HighRisk, Threshold: 50, MaxLevel: schema.ModerateRisk,
		Reasons: []string{"score 62 is at or above threshold 50", "level HIGH is above MODERATE"},
	}

	t.Run("text passed", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCheckResult(&buf, passed, textConfig(schema.TextOut)))
		output := buf.String()
		assert.Contains(t, output, "Risk Check Results:")
		assert.Contains(t, output, "Max Level:  -")
		assert.Contains(t, output, "Score 30/100 (Moderate)")
		assert.Contains(t, output, "✅")
	})

	t.Run("text failed", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCheckResult(&buf, failed, textConfig(schema.TextOut)))
		output := buf.String()
		assert.Contains(t, output, "Max Level:  Moderate")
		assert.Contains(t, output, "❌")
		assert.Contains(t, output, "  - level HIGH is above MODERATE")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCheckResult(&buf, failed, textConfig(schema.JSONOut)))
		var decoded schema.CheckResult
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, *failed, decoded)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCheckResult(&buf, passed, textConfig(schema.CSVOut)))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "true", records[1][6])
	})

	t.Run("parquet unsupported", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, WriteCheckResult(&buf, passed, textConfig(schema.ParquetOut)))
	})
}

func sampleWeights() *schema.WeightsRenderModel {
	return &schema.WeightsRenderModel{
		Title:       "Atlas Risk Weights",
		Description: "Overall score = weighted sum of four risk factors",
		Formula:     "score = 100*(0.35*confidence+0.25*velocity+0.20*throughput+0.20*objective)",
		Factors: []schema.FactorDefinition{
			{Key: schema.FactorConfidence, Name: "Confidence", Purpose: "Team belief", Weight: 0.35, Default: "neutral 3/5"},
			{Key: schema.FactorVelocity, Name: "Velocity", Purpose: "Delivery trend", Weight: 0.25, Default: "0.3"},
		},
		Bands: schema.LevelBands(),
	}
}

func TestWriteWeights(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteWeights(&buf, sampleWeights(), textConfig(schema.TextOut)))
		output := buf.String()
		assert.Contains(t, output, "Atlas Risk Weights")
		assert.Contains(t, output, "Confidence (weight 0.35): Team belief")
		assert.Contains(t, output, "Without data: neutral 3/5")
		assert.Contains(t, output, " 75-100 Critical")
		assert.Contains(t, output, "  0-24  Low")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteWeights(&buf, sampleWeights(), textConfig(schema.JSONOut)))
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "Atlas Risk Weights", decoded["title"])
		assert.Len(t, decoded["bands"], 4)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteWeights(&buf, sampleWeights(), textConfig(schema.CSVOut)))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, []string{"velocity", "Velocity", "0.25", "Delivery trend", "0.3"}, records[2])
	})
}

func TestWriteRiskColor(t *testing.T) {
	c := schema.RiskColor{BG: "bg-red-100", Text: "text-red-800", Border: "border-red-300"}

	var buf bytes.Buffer
	require.NoError(t, WriteRiskColor(&buf, schema.CriticalRisk, c, textConfig(schema.TextOut)))
	assert.Equal(t, "Critical\n  bg:     bg-red-100\n  text:   text-red-800\n  border: border-red-300\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteRiskColor(&buf, schema.CriticalRisk, c, textConfig(schema.JSONOut)))
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, map[string]string{"level": "CRITICAL", "bg": "bg-red-100", "text": "text-red-800", "border": "border-red-300"}, decoded)
}

func TestPrintToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "history.json")
	cfg := textConfig(schema.JSONOut)
	cfg.OutputFile = outputFile

	require.NoError(t, PrintRiskHistory("payments", sampleHistory(), cfg))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestGetMaxTableTextWidth(t *testing.T) {
	assert.Equal(t, 15, GetMaxTableTextWidth(&contract.Config{Width: 40}, 90))
	assert.Equal(t, 50, GetMaxTableTextWidth(&contract.Config{Width: 150}, 90))
	assert.Equal(t, 80, GetMaxTableTextWidth(&contract.Config{Width: 400}, 90))
}

func TestLevelLabel(t *testing.T) {
	assert.Equal(t, "High", levelLabel(schema.HighRisk, false))
	assert.Contains(t, levelLabel(schema.HighRisk, true), "High")
	assert.Equal(t, "Unknown", levelLabel("BOGUS", false))
}
