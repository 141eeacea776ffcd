package cmd

import (
	"testing"
	"time"

	"github.com/huangsam/atlas/schema"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRecordTestCmd returns a command carrying the shared record flags plus the given setup.
func newRecordTestCmd(t *testing.T, setup func(*cobra.Command), args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().String("id", "", "")
	c.Flags().String("at", "", "")
	if setup != nil {
		setup(c)
	}
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestVoteFromFlags(t *testing.T) {
	c := newRecordTestCmd(t, func(c *cobra.Command) {
		c.Flags().Int("level", 0, "")
	}, "--level", "4", "--id", "v-1", "--at", "2026-05-01T10:00:00Z")

	vote, err := voteFromFlags(c)
	require.NoError(t, err)
	assert.Equal(t, "v-1", vote.ID)
	assert.Equal(t, 4, vote.ConfidenceLevel)
	assert.Equal(t, time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC), vote.VotedAt.UTC())

	_, err = voteFromFlags(newRecordTestCmd(t, nil))
	assert.Error(t, err, "missing --level flag must surface")
}

func TestMetricFromFlags(t *testing.T) {
	setup := func(c *cobra.Command) {
		c.Flags().String("type", "", "")
		c.Flags().Float64("value", 0, "")
		c.Flags().String("target", "", "")
	}

	metric, err := metricFromFlags(newRecordTestCmd(t, setup, "--type", "velocity", "--value", "32", "--target", "40"))
	require.NoError(t, err)
	assert.Equal(t, schema.MetricType("velocity"), metric.MetricType)
	assert.InDelta(t, 32.0, metric.Value, 1e-9)
	require.NotNil(t, metric.Target)
	assert.InDelta(t, 40.0, *metric.Target, 1e-9)
	assert.True(t, metric.RecordedAt.IsZero())

	metric, err = metricFromFlags(newRecordTestCmd(t, setup, "--type", "throughput", "--value", "80"))
	require.NoError(t, err)
	assert.Nil(t, metric.Target)

	_, err = metricFromFlags(newRecordTestCmd(t, setup, "--type", "velocity", "--target", "lots"))
	assert.ErrorContains(t, err, "invalid --target 'lots'")

	_, err = metricFromFlags(newRecordTestCmd(t, func(c *cobra.Command) {
		c.Flags().String("type", "", "")
	}, "--type", "velocity"))
	assert.Error(t, err, "missing --value flag must surface")
}

func TestObjectiveFromFlags(t *testing.T) {
	setup := func(c *cobra.Command) {
		c.Flags().String("status", "", "")
		c.Flags().String("title", "", "")
	}

	objective, err := objectiveFromFlags(newRecordTestCmd(t, setup, "--status", "at_risk", "--title", "Ship refunds"))
	require.NoError(t, err)
	assert.Equal(t, schema.ObjectiveStatus("at_risk"), objective.Status)
	assert.Equal(t, "Ship refunds", objective.Title)

	_, err = objectiveFromFlags(newRecordTestCmd(t, func(c *cobra.Command) {
		c.Flags().String("status", "", "")
	}))
	assert.Error(t, err, "missing --title flag must surface")

	_, err = objectiveFromFlags(newRecordTestCmd(t, setup, "--at", "yesterday"))
	assert.Error(t, err)
}
