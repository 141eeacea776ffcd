package algo

import "github.com/huangsam/atlas/schema"

// Recommendation texts, grouped by the rule that emits them.
var (
	severeConfidenceRecs = []string{
		"Hold a focused retrospective to surface what is driving low team confidence",
		"Break sprint goals into smaller, more achievable increments",
	}
	moderateConfidenceRecs = []string{
		"Monitor team confidence closely during daily stand-ups",
	}
	severeVelocityRecs = []string{
		"Review sprint capacity and reduce committed scope to match recent velocity",
		"Identify and remove impediments that are slowing delivery",
	}
	moderateVelocityRecs = []string{
		"Track the velocity trend over the next sprint before adjusting commitments",
	}
	severeThroughputRecs = []string{
		"Limit work in progress to improve flow and completion rate",
		"Analyze cycle time to find bottlenecks in the delivery pipeline",
	}
	severeObjectiveRecs = []string{
		"Escalate blocked objectives to stakeholders for immediate resolution",
		"Re-prioritize objectives and consider descoping at-risk items",
	}
	moderateObjectiveRecs = []string{
		"Review objective progress and dependencies in the next sprint review",
	}
	criticalLevelRecs = []string{
		"URGENT: Schedule an immediate risk review with team leads and stakeholders",
		"URGENT: Consider re-planning the sprint to protect critical commitments",
	}
	highLevelRecs = []string{
		"Increase oversight with twice-weekly risk check-ins until the score improves",
		"Share this risk assessment with the product owner and adjust expectations",
	}
	defaultRecs = []string{
		"Team is performing well - maintain current practices",
		"Continue monitoring metrics to sustain healthy delivery",
	}
)

// Recommend evaluates the recommendation rules in fixed order: confidence,
// velocity, throughput, objective, then risk level escalation.
// The result is never empty.
func Recommend(f schema.RiskFactors, level schema.RiskLevel) []string {
	var recs []string

	switch {
	case exceeds(f.Confidence, schema.SevereFactorThreshold):
		recs = append(recs, severeConfidenceRecs...)
	case exceeds(f.Confidence, schema.DescriptionThreshold):
		recs = append(recs, moderateConfidenceRecs...)
	}

	switch {
	case exceeds(f.Velocity, schema.SevereFactorThreshold):
		recs = append(recs, severeVelocityRecs...)
	case exceeds(f.Velocity, schema.DescriptionThreshold):
		recs = append(recs, moderateVelocityRecs...)
	}

	// Throughput has no lesser tier.
	if exceeds(f.Throughput, schema.SevereFactorThreshold) {
		recs = append(recs, severeThroughputRecs...)
	}

	switch {
	case exceeds(f.Objective, schema.SevereFactorThreshold):
		recs = append(recs, severeObjectiveRecs...)
	case exceeds(f.Objective, schema.DescriptionThreshold):
		recs = append(recs, moderateObjectiveRecs...)
	}

	switch level {
	case schema.CriticalRisk:
		recs = append(recs, criticalLevelRecs...)
	case schema.HighRisk:
		recs = append(recs, highLevelRecs...)
	}

	if len(recs) == 0 {
		recs = append(recs, defaultRecs...)
	}
	return recs
}
