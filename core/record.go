package core

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/schema"
	"gopkg.in/yaml.v3"
)

// requireIdentifiers checks that a record names its team and sprint.
func requireIdentifiers(teamID, sprint string) error {
	if strings.TrimSpace(teamID) == "" || strings.TrimSpace(sprint) == "" {
		return ErrEmptyIdentifier
	}
	return nil
}

// ValidateConfidenceVote checks a vote before it is stored.
func ValidateConfidenceVote(v *schema.ConfidenceVote) error {
	if err := requireIdentifiers(v.TeamID, v.Sprint); err != nil {
		return err
	}
	if v.ConfidenceLevel < 1 || v.ConfidenceLevel > int(schema.MaxConfidence) {
		return fmt.Errorf("confidence level must be between 1 and 5 (received %d)", v.ConfidenceLevel)
	}
	return nil
}

// ValidateMetric checks a metric before it is stored.
func ValidateMetric(m *schema.Metric) error {
	if err := requireIdentifiers(m.TeamID, m.Sprint); err != nil {
		return err
	}
	if _, ok := schema.ValidMetricTypes[m.MetricType]; !ok {
		return fmt.Errorf("invalid metric type '%s'", m.MetricType)
	}
	if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
		return fmt.Errorf("metric value must be a finite number")
	}
	if m.Target != nil && (math.IsNaN(*m.Target) || math.IsInf(*m.Target, 0)) {
		return fmt.Errorf("metric target must be a finite number")
	}
	return nil
}

// ValidateObjective checks an objective before it is stored.
func ValidateObjective(o *schema.Objective) error {
	if err := requireIdentifiers(o.TeamID, o.Sprint); err != nil {
		return err
	}
	if _, ok := schema.ValidObjectiveStatuses[o.Status]; !ok {
		return fmt.Errorf("invalid objective status '%s'", o.Status)
	}
	return nil
}

// ParseDataset decodes a bulk import document. Files ending in .json are read
// as JSON and everything else as YAML.
func ParseDataset(path string, data []byte) (*schema.Dataset, error) {
	var ds schema.Dataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("failed to parse JSON dataset %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("failed to parse YAML dataset %s: %w", path, err)
		}
	}
	return &ds, nil
}

// normalizeDataset upper-cases enum fields and fills team and sprint defaults.
func normalizeDataset(ds *schema.Dataset, teamID, sprint string) {
	fill := func(team, spr *string) {
		if *team == "" {
			*team = teamID
		}
		if *spr == "" {
			*spr = sprint
		}
	}
	for i := range ds.Votes {
		fill(&ds.Votes[i].TeamID, &ds.Votes[i].Sprint)
	}
	for i := range ds.Metrics {
		fill(&ds.Metrics[i].TeamID, &ds.Metrics[i].Sprint)
		ds.Metrics[i].MetricType = schema.MetricType(strings.ToUpper(string(ds.Metrics[i].MetricType)))
	}
	for i := range ds.Objectives {
		fill(&ds.Objectives[i].TeamID, &ds.Objectives[i].Sprint)
		ds.Objectives[i].Status = schema.ObjectiveStatus(strings.ToUpper(string(ds.Objectives[i].Status)))
	}
}

// ValidateDataset checks every record of a dataset and reports the first failure.
func ValidateDataset(ds *schema.Dataset) error {
	for i := range ds.Votes {
		if err := ValidateConfidenceVote(&ds.Votes[i]); err != nil {
			return fmt.Errorf("vote %d: %w", i, err)
		}
	}
	for i := range ds.Metrics {
		if err := ValidateMetric(&ds.Metrics[i]); err != nil {
			return fmt.Errorf("metric %d: %w", i, err)
		}
	}
	for i := range ds.Objectives {
		if err := ValidateObjective(&ds.Objectives[i]); err != nil {
			return fmt.Errorf("objective %d: %w", i, err)
		}
	}
	return nil
}

// ImportDataset validates the whole dataset, then stores every record.
// Nothing is written when validation fails.
func ImportDataset(ctx context.Context, rs contract.RiskStore, ds *schema.Dataset) (schema.ImportSummary, error) {
	var summary schema.ImportSummary
	if err := ValidateDataset(ds); err != nil {
		return summary, err
	}

	for i := range ds.Votes {
		if err := rs.AddConfidenceVote(ctx, &ds.Votes[i]); err != nil {
			return summary, fmt.Errorf("vote %d: %w", i, err)
		}
		summary.Votes++
	}
	for i := range ds.Metrics {
		if err := rs.AddMetric(ctx, &ds.Metrics[i]); err != nil {
			return summary, fmt.Errorf("metric %d: %w", i, err)
		}
		summary.Metrics++
	}
	for i := range ds.Objectives {
		if err := rs.AddObjective(ctx, &ds.Objectives[i]); err != nil {
			return summary, fmt.Errorf("objective %d: %w", i, err)
		}
		summary.Objectives++
	}
	return summary, nil
}
