// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAnalysis prints an analysis result using the configured output format.
func (ow *OutWriter) WriteAnalysis(out AnalysisOutput, cfg *contract.Config) error {
	return PrintAnalysisResult(out, cfg)
}

// WriteHistory prints persisted risk scores using the configured output format.
func (ow *OutWriter) WriteHistory(teamID string, records []schema.RiskScoreRecord, cfg *contract.Config) error {
	return PrintRiskHistory(teamID, records, cfg)
}

// WriteCheck prints a check result using the configured output format.
func (ow *OutWriter) WriteCheck(result *schema.CheckResult, cfg *contract.Config) error {
	return PrintCheckResult(result, cfg)
}

// WriteWeights prints the scoring weights using the configured output format.
func (ow *OutWriter) WriteWeights(model *schema.WeightsRenderModel, cfg *contract.Config) error {
	return PrintWeights(model, cfg)
}

// WriteColor prints the presentation tokens of a risk level using the configured output format.
func (ow *OutWriter) WriteColor(level schema.RiskLevel, c schema.RiskColor, cfg *contract.Config) error {
	return PrintRiskColor(level, c, cfg)
}
