// Package core has core logic for risk analysis, checks and team data ingestion.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huangsam/atlas/core/algo"
	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/internal/outwriter"
	"github.com/huangsam/atlas/schema"
)

// ExecutorFunc defines the function signature for executing store-backed commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// errNoStore is returned when a command runs before the store is initialized.
var errNoStore = errors.New("store is not initialized")

// riskStore returns the manager's store or errNoStore.
func riskStore(mgr contract.StoreManager) (contract.RiskStore, error) {
	if mgr == nil {
		return nil, errNoStore
	}
	rs := mgr.GetRiskStore()
	if rs == nil {
		return nil, errNoStore
	}
	return rs, nil
}

// ErrUnsupportedOutput is returned before any output file is touched when a
// command cannot render the requested output mode.
var ErrUnsupportedOutput = errors.New("output mode not supported")

// rejectParquet rejects parquet for commands that do not produce risk score rows.
func rejectParquet(cfg *contract.Config, subject string) error {
	if cfg.Output == schema.ParquetOut {
		return fmt.Errorf("%w: parquet output is not supported for %s", ErrUnsupportedOutput, subject)
	}
	return nil
}

// ExecuteAnalyze runs the risk analysis for one team and sprint and prints the result.
// With --save the result is also persisted as a new risk score record.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	if err := cfg.RequireTeamAndSprint(); err != nil {
		return err
	}
	rs, err := riskStore(mgr)
	if err != nil {
		return err
	}

	result, err := NewAnalyzer(rs).AnalyzeTeamRisk(ctx, cfg.TeamID, cfg.Sprint)
	if err != nil {
		return err
	}

	out := outwriter.AnalysisOutput{Result: result, Backend: cfg.StoreBackend}
	if cfg.Save {
		record, err := rs.SaveRiskScore(ctx, result)
		if err != nil {
			return fmt.Errorf("failed to save risk score: %w", err)
		}
		out.Record = record
	}
	out.Duration = time.Since(start)
	return outwriter.NewOutWriter().WriteAnalysis(out, cfg)
}

// ExecuteCheck runs the check command for CI/CD gating.
// It returns an error wrapping ErrThresholdExceeded when the check fails.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if err := rejectParquet(cfg, "check results"); err != nil {
		return err
	}
	rs, err := riskStore(mgr)
	if err != nil {
		return err
	}

	result, err := RunCheck(ctx, cfg, NewAnalyzer(rs))
	if err != nil {
		return err
	}
	if err := outwriter.NewOutWriter().WriteCheck(result, cfg); err != nil {
		return err
	}
	if !result.Passed {
		return fmt.Errorf("%w: %s", ErrThresholdExceeded, strings.Join(result.Reasons, "; "))
	}
	return nil
}

// ExecuteHistory prints the latest persisted risk scores of a team.
func ExecuteHistory(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if strings.TrimSpace(cfg.TeamID) == "" {
		return fmt.Errorf("--team is required")
	}
	rs, err := riskStore(mgr)
	if err != nil {
		return err
	}

	records, err := rs.ListRiskScores(ctx, cfg.TeamID, cfg.Limit)
	if err != nil {
		return fmt.Errorf("failed to list risk scores for team %s: %w", cfg.TeamID, err)
	}
	ranked := algo.RankRiskScores(records, cfg.Limit)
	return outwriter.NewOutWriter().WriteHistory(cfg.TeamID, ranked, cfg)
}

// ExecuteWeights prints the fixed scoring weights and level bands.
func ExecuteWeights(_ context.Context, cfg *contract.Config) error {
	if err := rejectParquet(cfg, "weights"); err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteWeights(BuildWeightsModel(), cfg)
}

// ExecuteColor prints the presentation tokens for a risk level.
// Unknown levels print the neutral fallback.
func ExecuteColor(_ context.Context, cfg *contract.Config, levelArg string) error {
	if err := rejectParquet(cfg, "colors"); err != nil {
		return err
	}
	level := schema.RiskLevel(strings.ToUpper(strings.TrimSpace(levelArg)))
	return outwriter.NewOutWriter().WriteColor(level, algo.GetRiskColor(level), cfg)
}

// ExecuteRecordVote stores one confidence vote for the configured team and sprint.
func ExecuteRecordVote(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, vote *schema.ConfidenceVote) error {
	rs, err := riskStore(mgr)
	if err != nil {
		return err
	}
	vote.TeamID, vote.Sprint = cfg.TeamID, cfg.Sprint
	if err := ValidateConfidenceVote(vote); err != nil {
		return err
	}
	if err := rs.AddConfidenceVote(ctx, vote); err != nil {
		return err
	}
	fmt.Printf("Recorded confidence vote %s (%d/5) for team %s sprint %s\n", vote.ID, vote.ConfidenceLevel, vote.TeamID, vote.Sprint)
	return nil
}

// ExecuteRecordMetric stores one metric for the configured team and sprint.
func ExecuteRecordMetric(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, metric *schema.Metric) error {
	rs, err := riskStore(mgr)
	if err != nil {
		return err
	}
	metric.TeamID, metric.Sprint = cfg.TeamID, cfg.Sprint
	metric.MetricType = schema.MetricType(strings.ToUpper(strings.TrimSpace(string(metric.MetricType))))
	if err := ValidateMetric(metric); err != nil {
		return err
	}
	if err := rs.AddMetric(ctx, metric); err != nil {
		return err
	}
	fmt.Printf("Recorded %s metric %s for team %s sprint %s\n", metric.MetricType, metric.ID, metric.TeamID, metric.Sprint)
	return nil
}

// ExecuteRecordObjective stores one objective for the configured team and sprint.
func ExecuteRecordObjective(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, objective *schema.Objective) error {
	rs, err := riskStore(mgr)
	if err != nil {
		return err
	}
	objective.TeamID, objective.Sprint = cfg.TeamID, cfg.Sprint
	objective.Status = schema.ObjectiveStatus(strings.ToUpper(strings.TrimSpace(string(objective.Status))))
	if err := ValidateObjective(objective); err != nil {
		return err
	}
	if err := rs.AddObjective(ctx, objective); err != nil {
		return err
	}
	fmt.Printf("Recorded %s objective %s for team %s sprint %s\n", objective.Status, objective.ID, objective.TeamID, objective.Sprint)
	return nil
}

// ExecuteImport loads a YAML or JSON dataset into the store.
// Records without a team or sprint take the configured ones.
func ExecuteImport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, path string) error {
	rs, err := riskStore(mgr)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}
	ds, err := ParseDataset(path, data)
	if err != nil {
		return err
	}
	normalizeDataset(ds, cfg.TeamID, cfg.Sprint)

	summary, err := ImportDataset(ctx, rs, ds)
	if err != nil {
		return fmt.Errorf("import stopped after %d record(s): %w", summary.Total(), err)
	}
	fmt.Printf("Imported %d record(s) from %s: %d vote(s), %d metric(s), %d objective(s)\n",
		summary.Total(), path, summary.Votes, summary.Metrics, summary.Objectives)
	return nil
}
