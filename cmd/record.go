package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/huangsam/atlas/core"
	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/schema"
	"github.com/spf13/cobra"
)

// recordCmd groups the single-record inserts.
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a confidence vote, metric or objective for a team sprint",
	Long: `Insert one piece of team data for --team and --sprint.

Subcommands:
  vote      - a 1-5 confidence vote
  metric    - a delivery metric such as velocity or throughput
  objective - a sprint objective and its status

Examples:
  atlas record vote --team payments --sprint S20 --level 4
  atlas record metric --team payments --sprint S20 --type velocity --value 32 --target 40
  atlas record objective --team payments --sprint S20 --status at_risk --title "Ship refunds"`,
}

// recordFlags reads the flags shared by every record subcommand.
func recordFlags(cmd *cobra.Command) (string, time.Time, error) {
	id, err := cmd.Flags().GetString("id")
	if err != nil {
		return "", time.Time{}, err
	}
	at, err := cmd.Flags().GetString("at")
	if err != nil {
		return "", time.Time{}, err
	}
	// A zero time lets the store stamp the record
	ts, err := contract.ParseTimestamp(at, time.Time{})
	if err != nil {
		return "", time.Time{}, err
	}
	return id, ts, nil
}

// voteFromFlags builds a confidence vote from the vote subcommand flags.
func voteFromFlags(cmd *cobra.Command) (*schema.ConfidenceVote, error) {
	id, ts, err := recordFlags(cmd)
	if err != nil {
		return nil, err
	}
	level, err := cmd.Flags().GetInt("level")
	if err != nil {
		return nil, err
	}
	return &schema.ConfidenceVote{ID: id, ConfidenceLevel: level, VotedAt: ts}, nil
}

// metricFromFlags builds a metric from the metric subcommand flags.
// An empty --target leaves the metric without a target.
func metricFromFlags(cmd *cobra.Command) (*schema.Metric, error) {
	id, ts, err := recordFlags(cmd)
	if err != nil {
		return nil, err
	}
	metricType, err := cmd.Flags().GetString("type")
	if err != nil {
		return nil, err
	}
	value, err := cmd.Flags().GetFloat64("value")
	if err != nil {
		return nil, err
	}
	targetStr, err := cmd.Flags().GetString("target")
	if err != nil {
		return nil, err
	}

	metric := &schema.Metric{ID: id, MetricType: schema.MetricType(metricType), Value: value, RecordedAt: ts}
	if targetStr != "" {
		target, err := strconv.ParseFloat(targetStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --target '%s': %w", targetStr, err)
		}
		metric.Target = &target
	}
	return metric, nil
}

// objectiveFromFlags builds an objective from the objective subcommand flags.
func objectiveFromFlags(cmd *cobra.Command) (*schema.Objective, error) {
	id, _, err := recordFlags(cmd)
	if err != nil {
		return nil, err
	}
	status, err := cmd.Flags().GetString("status")
	if err != nil {
		return nil, err
	}
	title, err := cmd.Flags().GetString("title")
	if err != nil {
		return nil, err
	}
	return &schema.Objective{ID: id, Title: title, Status: schema.ObjectiveStatus(status)}, nil
}

// recordVoteCmd stores one confidence vote.
var recordVoteCmd = &cobra.Command{
	Use:     "vote",
	Short:   "Record a 1-5 confidence vote",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		vote, err := voteFromFlags(cmd)
		if err != nil {
			contract.LogFatal("Invalid record flags", err)
		}
		if err := core.ExecuteRecordVote(rootCtx, cfg, storeManager, vote); err != nil {
			contract.LogFatal("Failed to record vote", err)
		}
	},
}

// recordMetricCmd stores one metric.
var recordMetricCmd = &cobra.Command{
	Use:     "metric",
	Short:   "Record a delivery metric",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		metric, err := metricFromFlags(cmd)
		if err != nil {
			contract.LogFatal("Invalid record flags", err)
		}
		if err := core.ExecuteRecordMetric(rootCtx, cfg, storeManager, metric); err != nil {
			contract.LogFatal("Failed to record metric", err)
		}
	},
}

// recordObjectiveCmd stores one objective.
var recordObjectiveCmd = &cobra.Command{
	Use:     "objective",
	Short:   "Record a sprint objective and its status",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		objective, err := objectiveFromFlags(cmd)
		if err != nil {
			contract.LogFatal("Invalid record flags", err)
		}
		if err := core.ExecuteRecordObjective(rootCtx, cfg, storeManager, objective); err != nil {
			contract.LogFatal("Failed to record objective", err)
		}
	},
}
