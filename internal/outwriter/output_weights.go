package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/schema"
)

// PrintWeights displays the scoring weights and level bands.
// This is a static display that does not require stored data.
func PrintWeights(model *schema.WeightsRenderModel, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteWeights(w, model, cfg)
	}, successMessage(cfg.Output))
}

// WriteWeights writes the weights model to w in the configured format.
func WriteWeights(w io.Writer, model *schema.WeightsRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, model)
	case schema.CSVOut:
		return writeWeightsCSV(w, model)
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for weights")
	default:
		return writeWeightsText(w, model, cfg)
	}
}

// writeWeightsText displays the weights in human-readable text format.
func writeWeightsText(w io.Writer, model *schema.WeightsRenderModel, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "📊 %s\n========================\n\n%s\n", model.Title, model.Description); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Formula: %s\n\n", model.Formula); err != nil {
		return err
	}

	for _, f := range model.Factors {
		if _, err := fmt.Fprintf(w, "%s (weight %.2f): %s\n", f.Name, f.Weight, f.Purpose); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Without data: %s\n", f.Default); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\nRisk levels:"); err != nil {
		return err
	}
	for _, band := range model.Bands {
		if _, err := fmt.Fprintf(w, "   %3d-%-3d %s\n", band.Min, band.Max, levelLabel(band.Level, cfg.UseColors)); err != nil {
			return err
		}
	}
	return nil
}

// writeWeightsCSV writes one row per factor.
func writeWeightsCSV(w io.Writer, model *schema.WeightsRenderModel) error {
	header := []string{"factor", "name", "weight", "purpose", "default"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, f := range model.Factors {
			record := []string{
				string(f.Key),
				f.Name,
				strconv.FormatFloat(f.Weight, 'f', 2, 64),
				f.Purpose,
				f.Default,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
