package schema

// Custom string types for type safety.
type (
	// MetricType represents the kind of periodic team metric.
	MetricType string

	// ObjectiveStatus represents the lifecycle state of a sprint objective.
	ObjectiveStatus string

	// RiskLevel represents the discrete risk classification.
	RiskLevel string

	// FactorKey represents keys used in factor breakdowns.
	FactorKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for team data.
	DatabaseBackend string
)

// All metric types known to the scorer. Other values are stored but ignored.
const (
	VelocityMetric             MetricType = "VELOCITY"
	StoryPointsCompletedMetric MetricType = "STORY_POINTS_COMPLETED"
	ThroughputMetric           MetricType = "THROUGHPUT"
	CompletionRateMetric       MetricType = "COMPLETION_RATE"
	CycleTimeMetric            MetricType = "CYCLE_TIME"
	LeadTimeMetric             MetricType = "LEAD_TIME"
	DefectRateMetric           MetricType = "DEFECT_RATE"
)

// All objective statuses supported.
const (
	CompletedStatus  ObjectiveStatus = "COMPLETED"
	InProgressStatus ObjectiveStatus = "IN_PROGRESS"
	PlannedStatus    ObjectiveStatus = "PLANNED"
	AtRiskStatus     ObjectiveStatus = "AT_RISK"
	BlockedStatus    ObjectiveStatus = "BLOCKED"
	AbandonedStatus  ObjectiveStatus = "ABANDONED"
)

// All risk levels, lowest first.
const (
	LowRisk      RiskLevel = "LOW"
	ModerateRisk RiskLevel = "MODERATE"
	HighRisk     RiskLevel = "HIGH"
	CriticalRisk RiskLevel = "CRITICAL"
)

// Factor keys used in the weighted sum.
const (
	FactorConfidence FactorKey = "confidence"
	FactorVelocity   FactorKey = "velocity"
	FactorThroughput FactorKey = "throughput"
	FactorObjective  FactorKey = "objective"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All storage backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Factor weights for the overall score. They sum to 1.0.
const (
	ConfidenceWeight = 0.35
	VelocityWeight   = 0.25
	ThroughputWeight = 0.20
	ObjectiveWeight  = 0.20
)

// Lower bounds (inclusive) of each risk band on the 0-100 scale.
const (
	CriticalThreshold = 75
	HighThreshold     = 50
	ModerateThreshold = 25
)

// Defaults used when a dimension has no data.
const (
	NeutralConfidence      = 3.0 // midpoint of the 1-5 vote scale
	MaxConfidence          = 5.0
	DefaultMetricScore     = 50.0
	InsufficientDataFactor = 0.3
	EmptyObjectiveHealth   = 100.0
	UnknownStatusScore     = 50.0
	RecentMetricWindow     = 3
	DescriptionThreshold   = 0.3
	SevereFactorThreshold  = 0.5
)

// AllRiskLevels returns every risk level, lowest first.
var AllRiskLevels = []RiskLevel{LowRisk, ModerateRisk, HighRisk, CriticalRisk}

// AllFactorKeys returns the factor keys in their fixed reporting order.
var AllFactorKeys = []FactorKey{FactorConfidence, FactorVelocity, FactorThroughput, FactorObjective}

// FactorWeights maps each factor to its weight in the overall score.
var FactorWeights = map[FactorKey]float64{
	FactorConfidence: ConfidenceWeight,
	FactorVelocity:   VelocityWeight,
	FactorThroughput: ThroughputWeight,
	FactorObjective:  ObjectiveWeight,
}

// ObjectiveStatusScores maps each objective status to its health contribution.
var ObjectiveStatusScores = map[ObjectiveStatus]float64{
	CompletedStatus:  100,
	InProgressStatus: 70,
	PlannedStatus:    60,
	AtRiskStatus:     40,
	BlockedStatus:    20,
	AbandonedStatus:  0,
}

// ValidObjectiveStatuses lists all objective statuses accepted on input.
var ValidObjectiveStatuses = map[ObjectiveStatus]struct{}{
	CompletedStatus:  {},
	InProgressStatus: {},
	PlannedStatus:    {},
	AtRiskStatus:     {},
	BlockedStatus:    {},
	AbandonedStatus:  {},
}

// ValidMetricTypes lists all metric types accepted on input.
var ValidMetricTypes = map[MetricType]struct{}{
	VelocityMetric:             {},
	StoryPointsCompletedMetric: {},
	ThroughputMetric:           {},
	CompletionRateMetric:       {},
	CycleTimeMetric:            {},
	LeadTimeMetric:             {},
	DefectRateMetric:           {},
}

// ValidRiskLevels lists all risk levels.
var ValidRiskLevels = map[RiskLevel]struct{}{
	LowRisk:      {},
	ModerateRisk: {},
	HighRisk:     {},
	CriticalRisk: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid storage backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
