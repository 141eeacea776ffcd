package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/internal/parquet"
)

// ExecuteExport writes every persisted risk score to a Parquet file.
func ExecuteExport(ctx context.Context, rs contract.RiskStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := rs.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalRiskScores == 0 {
		return errors.New("no risk scores found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total risk scores: %d\n", status.TotalRiskScores)

	records, err := rs.GetAllRiskScores(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve risk scores: %w", err)
	}

	rows := parquet.ConvertRiskScoreRecords(records)
	if err := parquet.WriteRiskScoresParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write risk scores: %w", err)
	}
	fmt.Printf("Exported %d risk scores to: %s\n", len(rows), outputFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	return nil
}
