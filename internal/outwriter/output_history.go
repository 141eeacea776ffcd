package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/internal/parquet"
	"github.com/huangsam/atlas/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// historyFixedWidth is the table space taken by every column except the recommendation.
const historyFixedWidth = 90

// PrintRiskHistory outputs persisted risk scores, dispatching based on the output format configured.
func PrintRiskHistory(teamID string, records []schema.RiskScoreRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteRiskHistory(w, teamID, records, cfg)
	}, successMessage(cfg.Output))
}

// WriteRiskHistory writes persisted risk scores to w in the configured format.
func WriteRiskHistory(w io.Writer, teamID string, records []schema.RiskScoreRecord, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeHistoryJSON(w, records)
	case schema.CSVOut:
		return writeHistoryCSV(w, records, fmtFloat)
	case schema.ParquetOut:
		return parquet.WriteRiskScores(w, parquet.ConvertRiskScoreRecords(records))
	default:
		return writeHistoryTable(w, teamID, records, cfg, fmtFloat)
	}
}

// writeHistoryTable generates and writes the human-readable history table.
func writeHistoryTable(w io.Writer, teamID string, records []schema.RiskScoreRecord, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(records) == 0 {
		_, err := fmt.Fprintf(w, "No risk scores recorded for team %s\n", teamID)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Created", "Sprint", "Score", "Level", "Conf", "Vel", "Thru", "Obj", "Top Recommendation"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := GetMaxTableTextWidth(cfg, historyFixedWidth)
	var data [][]string
	for i, r := range records {
		top := ""
		if len(r.Recommendations) > 0 {
			top = contract.TruncateText(r.Recommendations[0], maxWidth)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Sprint,
			strconv.Itoa(r.OverallRiskScore),
			levelLabel(r.RiskLevel, cfg.UseColors),
			fmtFloat(r.Factors.Confidence),
			fmtFloat(r.Factors.Velocity),
			fmtFloat(r.Factors.Throughput),
			fmtFloat(r.Factors.Objective),
			top,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d risk score(s) for team %s, newest first\n", len(records), teamID)
	return err
}

// historyHeader is the CSV header for history rows.
var historyHeader = []string{
	"rank",
	"id",
	"team_id",
	"sprint",
	"overall_risk_score",
	"risk_level",
	"label",
	"confidence_factor",
	"velocity_factor",
	"throughput_factor",
	"objective_factor",
	"recommendations",
	"created_at",
}

// writeHistoryCSV writes persisted risk scores in CSV format.
func writeHistoryCSV(w io.Writer, records []schema.RiskScoreRecord, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, historyHeader, func(cw *csv.Writer) error {
		for i, r := range records {
			rec := []string{
				strconv.Itoa(i + 1),
				r.ID,
				r.TeamID,
				r.Sprint,
				strconv.Itoa(r.OverallRiskScore),
				string(r.RiskLevel),
				contract.GetPlainLabel(r.RiskLevel),
				fmtFloat(r.Factors.Confidence),
				fmtFloat(r.Factors.Velocity),
				fmtFloat(r.Factors.Throughput),
				fmtFloat(r.Factors.Objective),
				joinList(r.Recommendations),
				r.CreatedAt.Format(contract.DateTimeFormat),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeHistoryJSON writes persisted risk scores with rank and label added.
func writeHistoryJSON(w io.Writer, records []schema.RiskScoreRecord) error {
	type JSONRiskScore struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.RiskScoreRecord
	}

	output := make([]JSONRiskScore, len(records))
	for i, r := range records {
		output[i] = JSONRiskScore{
			Rank:            i + 1,
			Label:           contract.GetPlainLabel(r.RiskLevel),
			RiskScoreRecord: r,
		}
	}
	return writeJSON(w, output)
}
