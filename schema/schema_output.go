package schema

// FactorDefinition describes one weighted factor of the overall score.
type FactorDefinition struct {
	Key     FactorKey `json:"key"`
	Name    string    `json:"name"`
	Purpose string    `json:"purpose"`
	Weight  float64   `json:"weight"`
	Default string    `json:"default"` // behavior when the dimension has no data
}

// LevelBand is the inclusive score range of a risk level.
type LevelBand struct {
	Level RiskLevel `json:"level"`
	Min   int       `json:"min"`
	Max   int       `json:"max"`
}

// WeightsRenderModel is everything the weights command prints.
type WeightsRenderModel struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Formula     string             `json:"formula"`
	Factors     []FactorDefinition `json:"factors"`
	Bands       []LevelBand        `json:"bands"`
}

// LevelBands returns the score band of every risk level, lowest first.
func LevelBands() []LevelBand {
	return []LevelBand{
		{Level: LowRisk, Min: 0, Max: ModerateThreshold - 1},
		{Level: ModerateRisk, Min: ModerateThreshold, Max: HighThreshold - 1},
		{Level: HighRisk, Min: HighThreshold, Max: CriticalThreshold - 1},
		{Level: CriticalRisk, Min: CriticalThreshold, Max: 100},
	}
}
