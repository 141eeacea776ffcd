package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/schema"
)

// PrintCheckResult outputs a check result in a concise format suitable for CI/CD.
func PrintCheckResult(result *schema.CheckResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteCheckResult(w, result, cfg)
	}, successMessage(cfg.Output))
}

// WriteCheckResult writes a check result to w in the configured format.
func WriteCheckResult(w io.Writer, result *schema.CheckResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, result)
	case schema.CSVOut:
		return writeCheckCSV(w, result)
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for check results")
	default:
		return writeCheckText(w, result, cfg)
	}
}

// writeCheckText prints the header, then the pass or fail block.
func writeCheckText(w io.Writer, result *schema.CheckResult, cfg *contract.Config) error {
	if _, err := fmt.Fprintln(w, "Risk Check Results:"); err != nil {
		return err
	}

	maxLevel := "-"
	if result.MaxLevel != "" {
		maxLevel = contract.GetPlainLabel(result.MaxLevel)
	}
	labels := []string{"Team:", "Sprint:", "Threshold:", "Max Level:"}
	values := []any{result.TeamID, result.Sprint, result.Threshold, maxLevel}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}
	for i, label := range labels {
		if _, err := fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Score %d/100 (%s)\n", result.Score, levelLabel(result.Level, cfg.UseColors)); err != nil {
		return err
	}
	if result.Passed {
		_, err := fmt.Fprintln(w, "✅ Risk is within the allowed limits")
		return err
	}

	if _, err := fmt.Fprintln(w, "❌ Risk exceeds the allowed limits:"); err != nil {
		return err
	}
	for _, reason := range result.Reasons {
		if _, err := fmt.Fprintf(w, "  - %s\n", reason); err != nil {
			return err
		}
	}
	return nil
}

// writeCheckCSV writes the check result as a single CSV row.
func writeCheckCSV(w io.Writer, result *schema.CheckResult) error {
	header := []string{"team_id", "sprint", "score", "level", "threshold", "max_level", "passed", "reasons"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.Write([]string{
			result.TeamID,
			result.Sprint,
			strconv.Itoa(result.Score),
			string(result.Level),
			strconv.Itoa(result.Threshold),
			string(result.MaxLevel),
			strconv.FormatBool(result.Passed),
			joinList(result.Reasons),
		})
	})
}
