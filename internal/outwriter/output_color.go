package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/schema"
)

// PrintRiskColor outputs the presentation tokens of a risk level.
func PrintRiskColor(level schema.RiskLevel, c schema.RiskColor, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteRiskColor(w, level, c, cfg)
	}, successMessage(cfg.Output))
}

// WriteRiskColor writes the presentation tokens of a risk level to w.
func WriteRiskColor(w io.Writer, level schema.RiskLevel, c schema.RiskColor, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, struct {
			Level schema.RiskLevel `json:"level"`
			schema.RiskColor
		}{level, c})
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"level", "bg", "text", "border"}, func(cw *csv.Writer) error {
			return cw.Write([]string{string(level), c.BG, c.Text, c.Border})
		})
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for colors")
	default:
		_, err := fmt.Fprintf(w, "%s\n  bg:     %s\n  text:   %s\n  border: %s\n", levelLabel(level, cfg.UseColors), c.BG, c.Text, c.Border)
		return err
	}
}
