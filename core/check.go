package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/schema"
)

// ErrThresholdExceeded is returned by the check command when the team's risk
// is above the allowed limits.
var ErrThresholdExceeded = errors.New("risk threshold exceeded")

// CheckResultBuilder builds the check result using a builder pattern.
type CheckResultBuilder struct {
	ctx      context.Context
	cfg      *contract.Config
	analyzer *Analyzer
	analysis *schema.RiskAnalysisResult
	reasons  []string
	result   *schema.CheckResult
}

// NewCheckResultBuilder creates a new builder for check results.
func NewCheckResultBuilder(ctx context.Context, cfg *contract.Config, analyzer *Analyzer) *CheckResultBuilder {
	return &CheckResultBuilder{ctx: ctx, cfg: cfg, analyzer: analyzer}
}

// ValidatePrerequisites checks the identifiers and limits of the check.
func (b *CheckResultBuilder) ValidatePrerequisites() (*CheckResultBuilder, error) {
	if err := b.cfg.RequireTeamAndSprint(); err != nil {
		return nil, fmt.Errorf("check command needs a team and sprint: %w. Example: atlas check --team payments --sprint S20", err)
	}
	if b.cfg.Threshold < 0 || b.cfg.Threshold > 100 {
		return nil, fmt.Errorf("threshold must be between 0 and 100 (received %d)", b.cfg.Threshold)
	}
	if b.cfg.MaxLevel != "" && b.cfg.MaxLevel.Rank() < 0 {
		return nil, fmt.Errorf("invalid max level '%s'", b.cfg.MaxLevel)
	}
	return b, nil
}

// RunAnalysis computes the current risk of the team.
func (b *CheckResultBuilder) RunAnalysis() (*CheckResultBuilder, error) {
	analysis, err := b.analyzer.AnalyzeTeamRisk(b.ctx, b.cfg.TeamID, b.cfg.Sprint)
	if err != nil {
		return nil, err
	}
	b.analysis = analysis
	return b, nil
}

// EvaluateLimits records a reason for every limit the analysis breaks.
// The score fails at or above the threshold; the level fails above MaxLevel.
func (b *CheckResultBuilder) EvaluateLimits() *CheckResultBuilder {
	if b.analysis.OverallRiskScore >= b.cfg.Threshold {
		b.reasons = append(b.reasons, fmt.Sprintf("score %d is at or above threshold %d", b.analysis.OverallRiskScore, b.cfg.Threshold))
	}
	if b.cfg.MaxLevel != "" && b.analysis.RiskLevel.Rank() > b.cfg.MaxLevel.Rank() {
		b.reasons = append(b.reasons, fmt.Sprintf("level %s is above %s", b.analysis.RiskLevel, b.cfg.MaxLevel))
	}
	return b
}

// BuildResult assembles the final check result.
func (b *CheckResultBuilder) BuildResult() *CheckResultBuilder {
	b.result = &schema.CheckResult{
		TeamID:    b.analysis.TeamID,
		Sprint:    b.analysis.Sprint,
		Score:     b.analysis.OverallRiskScore,
		Level:     b.analysis.RiskLevel,
		Threshold: b.cfg.Threshold,
		MaxLevel:  b.cfg.MaxLevel,
		Passed:    len(b.reasons) == 0,
		Reasons:   b.reasons,
	}
	return b
}

// GetResult returns the built check result, or nil before BuildResult.
func (b *CheckResultBuilder) GetResult() *schema.CheckResult {
	return b.result
}

// RunCheck runs every builder step and returns the check result.
func RunCheck(ctx context.Context, cfg *contract.Config, analyzer *Analyzer) (*schema.CheckResult, error) {
	builder := NewCheckResultBuilder(ctx, cfg, analyzer)
	if _, err := builder.ValidatePrerequisites(); err != nil {
		return nil, err
	}
	if _, err := builder.RunAnalysis(); err != nil {
		return nil, err
	}
	return builder.EvaluateLimits().BuildResult().GetResult(), nil
}
