// Package algo has the pure scoring math behind team risk analysis.
package algo

import (
	"fmt"
	"math"

	"github.com/huangsam/atlas/schema"
)

// roundingEpsilon absorbs float error so that weighted sums landing on an
// exact .5 boundary (e.g. 27.5 computed as 27.499999999999996) round up.
const roundingEpsilon = 1e-9

// Velocity factor blend.
const (
	trendWeight  = 0.6
	targetWeight = 0.4
)

// exceeds reports whether factor is above threshold, ignoring float drift
// such as 1-3.5/5 landing just over 0.3.
func exceeds(factor, threshold float64) bool {
	return factor > threshold+roundingEpsilon
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// mean returns the arithmetic mean of values, or fallback when there are none.
func mean(values []float64, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// metricValues collects the values of metrics whose type is one of types.
func metricValues(metrics []schema.Metric, types ...schema.MetricType) []float64 {
	var values []float64
	for _, m := range metrics {
		for _, t := range types {
			if m.MetricType == t {
				values = append(values, m.Value)
				break
			}
		}
	}
	return values
}

// ConfidenceScore is the mean vote level, or the neutral midpoint with no votes.
func ConfidenceScore(votes []schema.ConfidenceVote) float64 {
	levels := make([]float64, len(votes))
	for i, v := range votes {
		levels[i] = float64(v.ConfidenceLevel)
	}
	return mean(levels, schema.NeutralConfidence)
}

// ConfidenceFactor maps a mean confidence on the 1-5 scale to risk in [0,1].
func ConfidenceFactor(confidenceScore float64) float64 {
	return clamp01(1 - confidenceScore/schema.MaxConfidence)
}

// VelocityScore is the mean of all velocity and completed story point metrics.
func VelocityScore(metrics []schema.Metric) float64 {
	return mean(metricValues(metrics, schema.VelocityMetric, schema.StoryPointsCompletedMetric), schema.DefaultMetricScore)
}

// VelocityFactor blends the recent downward trend with the shortfall against
// target of the newest velocity metric.
func VelocityFactor(metrics []schema.Metric) float64 {
	recent := MostRecent(metrics, schema.RecentMetricWindow, schema.VelocityMetric)
	if len(recent) < 2 {
		return schema.InsufficientDataFactor
	}

	// recent is newest first; a pair declines when the newer value is below the older one.
	pairs := len(recent) - 1
	declines := 0
	for i := range pairs {
		if recent[i].Value < recent[i+1].Value {
			declines++
		}
	}
	trend := float64(declines) / float64(pairs)

	var target float64
	if latest := recent[0]; latest.Target != nil && *latest.Target > 0 {
		goal := *latest.Target
		target = math.Max(0, 1-latest.Value/goal)
	}

	return clamp01(trendWeight*trend + targetWeight*target)
}

// ThroughputScore is the mean of all throughput metrics.
func ThroughputScore(metrics []schema.Metric) float64 {
	return mean(metricValues(metrics, schema.ThroughputMetric), schema.DefaultMetricScore)
}

// ThroughputFactor maps the mean of the most recent throughput and completion
// rate metrics onto a step function; lower throughput means higher risk.
func ThroughputFactor(metrics []schema.Metric) float64 {
	recent := MostRecent(metrics, schema.RecentMetricWindow, schema.ThroughputMetric, schema.CompletionRateMetric)
	if len(recent) == 0 {
		return schema.InsufficientDataFactor
	}
	values := make([]float64, len(recent))
	for i, m := range recent {
		values[i] = m.Value
	}
	avg := mean(values, schema.DefaultMetricScore)

	switch {
	case avg < 50:
		return 0.8
	case avg < 70:
		return 0.5
	case avg < 85:
		return 0.3
	default:
		return 0.1
	}
}

// StatusScore returns the health contribution of a single objective status.
func StatusScore(status schema.ObjectiveStatus) float64 {
	if score, ok := schema.ObjectiveStatusScores[status]; ok {
		return score
	}
	return schema.UnknownStatusScore
}

// ObjectiveHealth is the mean status score on a 0-100 scale.
// No objectives is treated as fully healthy.
func ObjectiveHealth(objectives []schema.Objective) float64 {
	scores := make([]float64, len(objectives))
	for i, o := range objectives {
		scores[i] = StatusScore(o.Status)
	}
	return mean(scores, schema.EmptyObjectiveHealth)
}

// ObjectiveFactor maps objective health to risk in [0,1].
func ObjectiveFactor(health float64) float64 {
	return clamp01(1 - health/100)
}

// OverallScore combines the four factors into an integer score in [0,100].
func OverallScore(f schema.RiskFactors) int {
	raw := schema.ConfidenceWeight*clamp01(f.Confidence) +
		schema.VelocityWeight*clamp01(f.Velocity) +
		schema.ThroughputWeight*clamp01(f.Throughput) +
		schema.ObjectiveWeight*clamp01(f.Objective)
	score := int(math.Round(raw*100 + roundingEpsilon))
	return max(0, min(100, score))
}

// ClassifyRisk maps an overall score to its risk level.
// Each band includes its lower bound.
func ClassifyRisk(score int) schema.RiskLevel {
	switch {
	case score >= schema.CriticalThreshold:
		return schema.CriticalRisk
	case score >= schema.HighThreshold:
		return schema.HighRisk
	case score >= schema.ModerateThreshold:
		return schema.ModerateRisk
	default:
		return schema.LowRisk
	}
}

// DescribeFactors returns one diagnostic note per factor above the
// description threshold, in the order confidence, velocity, throughput, objective.
func DescribeFactors(f schema.RiskFactors, confidenceScore, objectiveHealth float64) []string {
	description := []string{}
	if exceeds(f.Confidence, schema.DescriptionThreshold) {
		description = append(description, fmt.Sprintf("Low team confidence (average %.1f/5)", confidenceScore))
	}
	if exceeds(f.Velocity, schema.DescriptionThreshold) {
		description = append(description, "Velocity is declining or below target")
	}
	if exceeds(f.Throughput, schema.DescriptionThreshold) {
		description = append(description, "Throughput or completion rate is below expectations")
	}
	if exceeds(f.Objective, schema.DescriptionThreshold) {
		description = append(description, fmt.Sprintf("Objective health at %.0f%%", objectiveHealth))
	}
	return description
}

// Score runs the full computation over one team's data.
// It never fails; missing dimensions fall back to their defaults.
func Score(teamID, sprint string, data schema.TeamData) schema.RiskAnalysisResult {
	confidenceScore := ConfidenceScore(data.Votes)
	health := ObjectiveHealth(data.Objectives)

	factors := schema.RiskFactors{
		Confidence: ConfidenceFactor(confidenceScore),
		Velocity:   VelocityFactor(data.Metrics),
		Throughput: ThroughputFactor(data.Metrics),
		Objective:  ObjectiveFactor(health),
	}
	factors.Description = DescribeFactors(factors, confidenceScore, health)

	score := OverallScore(factors)
	level := ClassifyRisk(score)

	return schema.RiskAnalysisResult{
		TeamID:               teamID,
		Sprint:               sprint,
		OverallRiskScore:     score,
		RiskLevel:            level,
		ConfidenceScore:      confidenceScore,
		VelocityScore:        VelocityScore(data.Metrics),
		ThroughputScore:      ThroughputScore(data.Metrics),
		ObjectiveHealthScore: health,
		Factors:              factors,
		Recommendations:      Recommend(factors, level),
	}
}
