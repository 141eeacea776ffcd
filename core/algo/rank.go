package algo

import (
	"cmp"
	"slices"

	"github.com/huangsam/atlas/schema"
)

// MostRecent returns up to limit metrics whose type is one of types,
// ordered by RecordedAt descending. The input slice is not modified.
// Metrics recorded at the same instant keep their input order.
func MostRecent(metrics []schema.Metric, limit int, types ...schema.MetricType) []schema.Metric {
	filtered := make([]schema.Metric, 0, len(metrics))
	for _, m := range metrics {
		if slices.Contains(types, m.MetricType) {
			filtered = append(filtered, m)
		}
	}
	slices.SortStableFunc(filtered, func(a, b schema.Metric) int {
		return b.RecordedAt.Compare(a.RecordedAt)
	})
	if limit >= 0 && len(filtered) > limit {
		return filtered[:limit]
	}
	return filtered
}

// RankRiskScores sorts records newest first and returns the top 'limit'
// records. A non-positive limit returns all records.
func RankRiskScores(records []schema.RiskScoreRecord, limit int) []schema.RiskScoreRecord {
	slices.SortStableFunc(records, func(a, b schema.RiskScoreRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.OverallRiskScore, a.OverallRiskScore)
	})
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}
