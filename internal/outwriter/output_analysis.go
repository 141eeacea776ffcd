package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/atlas/core/algo"
	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/internal/parquet"
	"github.com/huangsam/atlas/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// AnalysisOutput is one analysis result plus the record it was saved as, if any.
type AnalysisOutput struct {
	Result   *schema.RiskAnalysisResult
	Record   *schema.RiskScoreRecord // nil unless --save was used
	Backend  schema.DatabaseBackend
	Duration time.Duration
}

// PrintAnalysisResult outputs an analysis result, dispatching based on the output format configured.
func PrintAnalysisResult(out AnalysisOutput, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteAnalysisResult(w, out, cfg)
	}, successMessage(cfg.Output))
}

// WriteAnalysisResult writes an analysis result to w in the configured format.
func WriteAnalysisResult(w io.Writer, out AnalysisOutput, cfg *contract.Config) error {
	if out.Result == nil {
		return fmt.Errorf("no analysis result to write")
	}
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeAnalysisJSON(w, out)
	case schema.CSVOut:
		return writeAnalysisCSV(w, out, fmtFloat)
	case schema.ParquetOut:
		return writeAnalysisParquet(w, out)
	default:
		return writeAnalysisTable(w, out, cfg, fmtFloat)
	}
}

// factorRow describes one line of the factor breakdown table.
type factorRow struct {
	name  string
	key   schema.FactorKey
	input string
}

// writeAnalysisTable generates and writes the human-readable report.
func writeAnalysisTable(w io.Writer, out AnalysisOutput, cfg *contract.Config, fmtFloat func(float64) string) error {
	r := out.Result
	if _, err := fmt.Fprintf(w, "Team %s, sprint %s\n", r.TeamID, r.Sprint); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Overall risk: %d/100 (%s)\n\n", r.OverallRiskScore, levelLabel(r.RiskLevel, cfg.UseColors)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Factor", "Input", "Risk", "Weight", "Points"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	rows := []factorRow{
		{"Confidence", schema.FactorConfidence, fmtFloat(r.ConfidenceScore) + "/5"},
		{"Velocity", schema.FactorVelocity, fmtFloat(r.VelocityScore)},
		{"Throughput", schema.FactorThroughput, fmtFloat(r.ThroughputScore)},
		{"Objectives", schema.FactorObjective, fmtFloat(r.ObjectiveHealthScore) + "%"},
	}
	var data [][]string
	for _, row := range rows {
		factor := r.Factors.Get(row.key)
		weight := schema.FactorWeights[row.key]
		data = append(data, []string{
			row.name,
			row.input,
			fmtFloat(factor),
			fmt.Sprintf("%.2f", weight),
			fmtFloat(100 * weight * factor),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(r.Factors.Description) > 0 {
		if _, err := fmt.Fprintln(w, "\nRisk factors:"); err != nil {
			return err
		}
		for _, d := range r.Factors.Description {
			if _, err := fmt.Fprintf(w, "  - %s\n", d); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w, "\nRecommendations:"); err != nil {
		return err
	}
	for i, rec := range r.Recommendations {
		if _, err := fmt.Fprintf(w, "  %d. %s\n", i+1, rec); err != nil {
			return err
		}
	}

	if out.Record != nil {
		if _, err := fmt.Fprintf(w, "\nSaved as %s at %s\n", out.Record.ID, out.Record.CreatedAt.Format(contract.DateTimeFormat)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v. Store backend: %s\n", out.Duration, out.Backend); err != nil {
		return err
	}
	return nil
}

// analysisHeader is the CSV header for analysis rows.
var analysisHeader = []string{
	"team_id",
	"sprint",
	"overall_risk_score",
	"risk_level",
	"label",
	"confidence_score",
	"velocity_score",
	"throughput_score",
	"objective_health_score",
	"confidence_factor",
	"velocity_factor",
	"throughput_factor",
	"objective_factor",
	"descriptions",
	"recommendations",
	"analyzed_at",
	"record_id",
}

// writeAnalysisCSV writes the analysis result as a single CSV row.
func writeAnalysisCSV(w io.Writer, out AnalysisOutput, fmtFloat func(float64) string) error {
	r := out.Result
	return writeCSVWithHeader(w, analysisHeader, func(cw *csv.Writer) error {
		recordID := ""
		if out.Record != nil {
			recordID = out.Record.ID
		}
		return cw.Write([]string{
			r.TeamID,
			r.Sprint,
			fmt.Sprintf("%d", r.OverallRiskScore),
			string(r.RiskLevel),
			contract.GetPlainLabel(r.RiskLevel),
			fmtFloat(r.ConfidenceScore),
			fmtFloat(r.VelocityScore),
			fmtFloat(r.ThroughputScore),
			fmtFloat(r.ObjectiveHealthScore),
			fmtFloat(r.Factors.Confidence),
			fmtFloat(r.Factors.Velocity),
			fmtFloat(r.Factors.Throughput),
			fmtFloat(r.Factors.Objective),
			joinList(r.Factors.Description),
			joinList(r.Recommendations),
			r.AnalyzedAt.Format(contract.DateTimeFormat),
			recordID,
		})
	})
}

// writeAnalysisJSON writes the analysis result with its label and colors.
func writeAnalysisJSON(w io.Writer, out AnalysisOutput) error {
	type JSONAnalysisResult struct {
		*schema.RiskAnalysisResult
		Label    string           `json:"label"`
		Color    schema.RiskColor `json:"color"`
		RecordID string           `json:"record_id,omitempty"`
	}

	output := JSONAnalysisResult{
		RiskAnalysisResult: out.Result,
		Label:              contract.GetPlainLabel(out.Result.RiskLevel),
		Color:              algo.GetRiskColor(out.Result.RiskLevel),
	}
	if out.Record != nil {
		output.RecordID = out.Record.ID
	}
	return writeJSON(w, output)
}

// writeAnalysisParquet writes the analysis result as a one-row Parquet file.
func writeAnalysisParquet(w io.Writer, out AnalysisOutput) error {
	if out.Record != nil {
		return parquet.WriteRiskScores(w, parquet.ConvertRiskScoreRecords([]schema.RiskScoreRecord{*out.Record}))
	}
	return parquet.WriteRiskScores(w, []parquet.RiskScore{parquet.ConvertAnalysisResult(out.Result)})
}
